// Package richtext reads the string containers shared by inline strings,
// the shared string table and comments: a plain <t> and/or formatted <r> runs.
package richtext

import (
	"strconv"
	"strings"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"github.com/ukaji3/xlcells-go/pkg/xlcells/xmltree"
)

// Plain concatenates the text of a string container, skipping phonetic runs.
func Plain(container *xmltree.Node) string {
	if container == nil {
		return ""
	}
	var sb strings.Builder
	for _, child := range container.Children {
		switch child.Name {
		case "t":
			sb.WriteString(child.Text())
		case "r":
			sb.WriteString(child.FirstChild("t").Text())
		}
	}
	return sb.String()
}

// Runs returns the container as formatted runs. A plain <t> becomes a single
// run without formatting. It returns nil for an empty container.
func Runs(container *xmltree.Node) []models.TextRun {
	if container == nil {
		return nil
	}
	var runs []models.TextRun
	for _, child := range container.Children {
		switch child.Name {
		case "t":
			runs = append(runs, models.TextRun{Text: child.Text()})
		case "r":
			run := models.TextRun{Text: child.FirstChild("t").Text()}
			applyRunProperties(&run, child.FirstChild("rPr"))
			runs = append(runs, run)
		}
	}
	return runs
}

func applyRunProperties(run *models.TextRun, rPr *xmltree.Node) {
	if rPr == nil {
		return
	}
	for _, p := range rPr.Children {
		val, hasVal := p.Attr("val")
		switch p.Name {
		case "b":
			run.Bold = toggle(val, hasVal)
		case "i":
			run.Italic = toggle(val, hasVal)
		case "strike":
			run.Strike = toggle(val, hasVal)
		case "u":
			if !hasVal {
				val = "single"
			}
			if val != "none" {
				run.Underline = val
			}
		case "vertAlign":
			run.VertAlign = val
		case "sz":
			run.Size = parseFloat(val)
		case "rFont":
			run.Font = val
		case "family":
			run.Family = parseInt(val)
		case "scheme":
			run.Scheme = val
		case "color":
			if rgb, ok := p.Attr("rgb"); ok {
				run.ColorRGB = rgb
			}
			if theme, ok := p.Attr("theme"); ok {
				run.ColorTheme = parseInt(theme)
			}
			if indexed, ok := p.Attr("indexed"); ok {
				run.ColorIndexed = parseInt(indexed)
			}
			if tint, ok := p.Attr("tint"); ok {
				run.ColorTint = parseFloat(tint)
			}
		}
	}
}

// toggle reads a boolean property element such as <b/> or <b val="0"/>.
func toggle(val string, hasVal bool) bool {
	if !hasVal {
		return true
	}
	return val != "0" && val != "false"
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseInt(s string) *int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &i
}
