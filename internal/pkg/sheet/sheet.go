package sheet

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// Sheet is one worksheet as a ragged matrix of display strings.
type Sheet struct {
	Name string
	Rows [][]string
}

// Open reads a workbook by file extension: legacy .xls goes through ReadXLS and
// everything else through Read.
func Open(data []byte, filename string) ([]Sheet, error) {
	if strings.ToLower(filepath.Ext(filename)) == ".xls" {
		return ReadXLS(bytes.NewReader(data))
	}
	return Read(bytes.NewReader(data))
}

// Read loads every worksheet of an .xlsx workbook. Cell values are the formatted
// strings the spreadsheet would display, normalized with Normalize.
func Read(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		for i := range rows {
			for j := range rows[i] {
				rows[i][j] = Normalize(rows[i][j])
			}
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}

	return sheets, nil
}

// ReadXLS loads every worksheet of a BIFF (.xls) workbook, the format older
// punch clocks export.
func ReadXLS(r io.ReadSeeker) (sheets []Sheet, err error) {
	// the BIFF parser panics on some truncated streams
	defer func() {
		if rec := recover(); rec != nil {
			sheets, err = nil, fmt.Errorf("failed to open workbook: %v", rec)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}

	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for n := 0; n <= int(ws.MaxRow); n++ {
			row := ws.Row(n)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells[c] = Normalize(row.Col(c))
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, Sheet{Name: ws.Name, Rows: rows})
	}

	return sheets, nil
}

// Normalize folds full-width digits, non-breaking spaces and other compatibility
// characters (NFKC) and trims the result.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
