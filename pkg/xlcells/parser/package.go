// Package parser reads the parts of an .xlsx package that cell decoding
// needs: the sheet list, the shared string table, the style sheet, and each
// worksheet with its comments.
package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrMissingPart indicates a part the package must contain is absent.
var ErrMissingPart = errors.New("missing package part")

const (
	workbookPath     = "xl/workbook.xml"
	workbookRelsPath = "xl/_rels/workbook.xml.rels"
)

// SheetPart locates one worksheet inside the package.
type SheetPart struct {
	// Name is the sheet name shown on its tab.
	Name string
	// Path is the zip entry of the worksheet XML.
	Path string
	// CommentsPath is the zip entry of the sheet's comments, if any.
	CommentsPath string
}

// Package is an opened .xlsx file.
type Package struct {
	// Sheets lists the worksheets in workbook order.
	Sheets []SheetPart
	// Date1904 is set when the workbook counts dates from 1904.
	Date1904 bool

	sharedStringsPath string
	stylesPath        string
	files             map[string]*zip.File
	closer            io.Closer
}

// Open opens an .xlsx file and reads its workbook structure.
func Open(xlsxPath string) (*Package, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	p, err := NewPackage(&r.Reader)
	if err != nil {
		r.Close()
		return nil, err
	}
	p.closer = r
	return p, nil
}

// NewPackage reads the workbook structure from an open zip archive.
func NewPackage(r *zip.Reader) (*Package, error) {
	p := &Package{files: make(map[string]*zip.File, len(r.File))}
	for _, f := range r.File {
		p.files[f.Name] = f
	}

	workbookXML, err := p.ReadPart(workbookPath)
	if err != nil {
		return nil, err
	}
	if workbookXML == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, workbookPath)
	}
	sheets, date1904, err := parseWorkbook(workbookXML)
	if err != nil {
		return nil, err
	}
	p.Date1904 = date1904

	relsXML, err := p.ReadPart(workbookRelsPath)
	if err != nil {
		return nil, err
	}
	rels, err := parseRelationships(relsXML)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		target := resolveRelativePath(rel.Target, "xl")
		switch relKind(rel.Type) {
		case "sharedStrings":
			p.sharedStringsPath = target
		case "styles":
			p.stylesPath = target
		case "worksheet":
			targets[rel.ID] = target
		}
	}

	for _, s := range sheets {
		target, ok := targets[s.rID]
		if !ok {
			// Chart sheets and dialog sheets have no cells.
			continue
		}
		part := SheetPart{Name: s.name, Path: target}
		part.CommentsPath, err = p.findComments(target)
		if err != nil {
			return nil, err
		}
		p.Sheets = append(p.Sheets, part)
	}
	return p, nil
}

// Close releases the underlying file when the package was opened by Open.
func (p *Package) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// ReadPart returns the contents of a zip entry, or nil when it does not exist.
func (p *Package) ReadPart(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// SharedStrings returns the shared string table part, or nil if the
// workbook has none.
func (p *Package) SharedStrings() ([]byte, error) {
	if p.sharedStringsPath == "" {
		return nil, nil
	}
	return p.ReadPart(p.sharedStringsPath)
}

// Styles returns the style sheet part, or nil if the workbook has none.
func (p *Package) Styles() ([]byte, error) {
	if p.stylesPath == "" {
		return nil, nil
	}
	return p.ReadPart(p.stylesPath)
}

// Worksheet returns a sheet's XML.
func (p *Package) Worksheet(s SheetPart) ([]byte, error) {
	data, err := p.ReadPart(s.Path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, s.Path)
	}
	return data, nil
}

// Comments returns a sheet's comments part, or nil if it has none.
func (p *Package) Comments(s SheetPart) ([]byte, error) {
	if s.CommentsPath == "" {
		return nil, nil
	}
	return p.ReadPart(s.CommentsPath)
}

// findComments follows a worksheet's relationships to its comments part.
func (p *Package) findComments(sheetPath string) (string, error) {
	relsXML, err := p.ReadPart(relsPathFor(sheetPath))
	if err != nil || relsXML == nil {
		return "", err
	}
	rels, err := parseRelationships(relsXML)
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if relKind(rel.Type) == "comments" {
			return resolveRelativePath(rel.Target, path.Dir(sheetPath)), nil
		}
	}
	return "", nil
}

// relsPathFor returns the relationships part of a part, e.g.
// xl/worksheets/_rels/sheet1.xml.rels for xl/worksheets/sheet1.xml.
func relsPathFor(partPath string) string {
	return path.Join(path.Dir(partPath), "_rels", path.Base(partPath)+".rels")
}

// relKind returns the last segment of a relationship type URI.
func relKind(relType string) string {
	return relType[strings.LastIndex(relType, "/")+1:]
}

// resolveRelativePath turns a relationship target into a zip entry name.
// Targets starting with "/" are relative to the package root; others are
// relative to baseDir.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(baseDir, target)
}

type workbookSheet struct {
	name string
	rID  string
}

// parseWorkbook returns the sheets of workbook.xml in order and the date1904 flag.
func parseWorkbook(data []byte) ([]workbookSheet, bool, error) {
	var (
		sheets   []workbookSheet
		date1904 bool
	)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", workbookPath, err)
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "workbookPr":
			for _, attr := range se.Attr {
				if attr.Name.Local == "date1904" {
					date1904 = attr.Value == "1" || attr.Value == "true"
				}
			}
		case "sheet":
			var s workbookSheet
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					s.name = attr.Value
				case "id":
					s.rID = attr.Value
				}
			}
			if s.name != "" && s.rID != "" {
				sheets = append(sheets, s)
			}
		}
	}

	return sheets, date1904, nil
}

type relationship struct {
	ID     string
	Type   string
	Target string
}

func parseRelationships(data []byte) ([]relationship, error) {
	var rels []relationship
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("relationships: %w", err)
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rel relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rel.ID = attr.Value
				case "Type":
					rel.Type = attr.Value
				case "Target":
					rel.Target = attr.Value
				}
			}
			if mode := targetMode(se); mode != "External" {
				rels = append(rels, rel)
			}
		}
	}

	return rels, nil
}

func targetMode(se xml.StartElement) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == "TargetMode" {
			return attr.Value
		}
	}
	return ""
}
