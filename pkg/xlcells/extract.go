package xlcells

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/comments"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/parser"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/sharedstrings"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/sheet"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/styles"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xldate"
	"golang.org/x/sync/errgroup"
)

// SheetInput holds the raw parts of one worksheet.
type SheetInput struct {
	Name      string
	Worksheet []byte
	// Comments is the sheet's comments part, or nil.
	Comments []byte
}

// Extract decodes the cells of every selected worksheet of an .xlsx file.
//
// Every sheet is counted before any is decoded, so all cells land in one
// output slice; the returned sheets' Cells are windows onto it. Sheets then
// decode in parallel.
func Extract(ctx context.Context, path string, opts Options) (*models.WorkbookCells, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	pkg, err := parser.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer pkg.Close()

	book, err := LoadBook(pkg)
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	var inputs []SheetInput
	found := make(map[string]bool)
	for _, part := range pkg.Sheets {
		if !opts.ShouldIncludeSheet(part.Name) {
			logger.Printf("skipping sheet %q", part.Name)
			continue
		}
		found[part.Name] = true

		ws, err := pkg.Worksheet(part)
		if err != nil {
			return nil, NewExtractionError(part.Name, "cells", err)
		}
		notes, err := pkg.Comments(part)
		if err != nil {
			return nil, NewExtractionError(part.Name, "comments", err)
		}
		if notes == nil && part.CommentsPath != "" {
			logger.Printf("sheet %q: comments part %s is missing", part.Name, part.CommentsPath)
		}
		inputs = append(inputs, SheetInput{Name: part.Name, Worksheet: ws, Comments: notes})
	}
	for _, name := range opts.Sheets {
		if !found[name] {
			logger.Printf("requested sheet %q not found", name)
		}
	}

	sheets, err := decodeSheets(ctx, book, inputs, opts)
	if err != nil {
		return nil, err
	}
	return &models.WorkbookCells{
		BookName: filepath.Base(path),
		Date1904: book.DateSystem == xldate.System1904,
		Sheets:   sheets,
	}, nil
}

// LoadBook reads the workbook-wide tables a sheet decode needs.
func LoadBook(pkg *parser.Package) (sheet.Book, error) {
	data, err := pkg.SharedStrings()
	if err != nil {
		return sheet.Book{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	strs, err := sharedstrings.Load(data)
	if err != nil {
		return sheet.Book{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	data, err = pkg.Styles()
	if err != nil {
		return sheet.Book{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	st, err := styles.Load(data)
	if err != nil {
		return sheet.Book{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	book := sheet.Book{
		Styles:     st,
		Strings:    strs,
		DateSystem: xldate.System1900,
	}
	if pkg.Date1904 {
		book.DateSystem = xldate.System1904
	}
	return book, nil
}

// ExtractSheet decodes a single worksheet from its raw parts.
func ExtractSheet(ctx context.Context, in SheetInput, book sheet.Book, opts Options) (*models.SheetCells, error) {
	sheets, err := decodeSheets(ctx, book, []SheetInput{in}, opts)
	if err != nil {
		return nil, err
	}
	return &sheets[0], nil
}

// preparedSheet is a counted sheet and its window of the output slice.
type preparedSheet struct {
	sheet  *sheet.Sheet
	offset int
	count  int
}

func decodeSheets(ctx context.Context, book sheet.Book, inputs []SheetInput, opts Options) ([]models.SheetCells, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prepared := make([]preparedSheet, len(inputs))
	total := 0
	for i, in := range inputs {
		notes, err := comments.Load(in.Comments)
		if err != nil {
			return nil, NewExtractionError(in.Name, "comments", err)
		}
		s, err := sheet.New(in.Name, in.Worksheet,
			sheet.WithComments(notes),
			sheet.WithBlankCells(opts.IncludeBlankCells))
		if err != nil {
			return nil, NewExtractionError(in.Name, "cells", err)
		}
		n, err := s.Count(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, NewExtractionError(in.Name, "count", err)
		}
		prepared[i] = preparedSheet{sheet: s, offset: total, count: n}
		total += n
	}

	out := make([]models.DecodedCell, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.WorkerLimit())
	for _, p := range prepared {
		g.Go(func() error {
			window := out[p.offset : p.offset+p.count : p.offset+p.count]
			n, err := p.sheet.Decode(gctx, book, window)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
					return err
				}
				return NewExtractionError(p.sheet.Name(), "cells", err)
			}
			if n != p.count {
				return NewExtractionError(p.sheet.Name(), "count",
					fmt.Errorf("%w: counted %d, decoded %d", ErrCountMismatch, p.count, n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	sheets := make([]models.SheetCells, len(prepared))
	for i, p := range prepared {
		cells := out[p.offset : p.offset+p.count : p.offset+p.count]
		sheets[i] = models.SheetCells{
			Name:      p.sheet.Name(),
			Dimension: parser.DetectBounds(cells),
			Cells:     cells,
		}
	}
	return sheets, nil
}
