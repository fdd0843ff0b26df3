package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ilyaedelshtein/kornit-chat/pkg/dataset"
)

// WriteXLSX writes rows as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, sheetName string, rows []dataset.Row) error {
	if sheetName == "" {
		sheetName = "Data"
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return errors.Wrap(err, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return errors.Wrap(err, "failed to drop default sheet")
		}
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell name")
		}
		record := []interface{}{r.Date, r.Product, r.Units, r.Revenue, r.Country, r.Channel}
		if err := f.SetSheetRow(sheetName, cell, &record); err != nil {
			return errors.Wrap(err, "failed to write data row")
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write spreadsheet")
	}
	return nil
}
