package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/ukaji3/xlcells-go/pkg/xlcells/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVHeader lists the CSV columns in output order. character_formatted is
// DecodedCell.IsFormatted: true for any inline or shared string, including
// plain ones, and false for "str" formula results.
var CSVHeader = []string{
	"sheet", "address", "row", "col", "is_blank", "data_type", "content",
	"numeric", "date", "logical", "character", "character_formatted", "error",
	"formula", "is_array", "formula_ref", "formula_group", "comment",
	"height", "width", "row_outline_level", "col_outline_level",
	"style_format", "local_format_id",
}

// CSVOptions configures WriteCSV.
type CSVOptions struct {
	// BOM prefixes the output with a UTF-8 byte-order mark, which some
	// spreadsheet applications need to detect the encoding.
	BOM bool
}

// WriteCSV writes one record per cell after a header record. Missing values
// are written as empty fields and dates as RFC 3339.
func WriteCSV(w io.Writer, cells []models.DecodedCell, opts CSVOptions) (err error) {
	if opts.BOM {
		tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
		defer func() {
			if cerr := tw.Close(); err == nil {
				err = cerr
			}
		}()
		w = tw
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	record := make([]string, len(CSVHeader))
	for i := range cells {
		fillRecord(record, &cells[i])
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fillRecord(record []string, c *models.DecodedCell) {
	record[0] = c.Sheet
	record[1] = c.Address
	record[2] = strconv.Itoa(c.Row)
	record[3] = strconv.Itoa(c.Col)
	record[4] = strconv.FormatBool(c.IsBlank)
	record[5] = string(c.DataType)
	record[6] = optString(c.Content)
	record[7] = optFloat(c.Numeric)
	record[8] = ""
	if c.Date != nil {
		record[8] = c.Date.Format(time.RFC3339)
	}
	record[9] = ""
	if c.Logical != nil {
		record[9] = strconv.FormatBool(*c.Logical)
	}
	record[10] = optString(c.Character)
	record[11] = strconv.FormatBool(c.IsFormatted())
	record[12] = optString(c.Error)
	record[13] = optString(c.Formula)
	record[14] = strconv.FormatBool(c.IsArray)
	record[15] = optString(c.FormulaRef)
	record[16] = ""
	if c.FormulaGroup != nil {
		record[16] = strconv.Itoa(*c.FormulaGroup)
	}
	record[17] = optString(c.Comment)
	record[18] = strconv.FormatFloat(c.Height, 'g', -1, 64)
	record[19] = strconv.FormatFloat(c.Width, 'g', -1, 64)
	record[20] = strconv.Itoa(c.RowOutlineLevel)
	record[21] = strconv.Itoa(c.ColOutlineLevel)
	record[22] = c.StyleFormat
	record[23] = strconv.Itoa(c.LocalFormatID)
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
