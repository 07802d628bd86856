package db

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	studentsSheet = "Students"
	teachersSheet = "Teachers"
)

// --- Excel Import ---

// ImportRecipientsFromExcel reads a workbook and registers one student per row.
//
// The first sheet is used and its first row is treated as a header. Column A
// holds the student name and column B an optional instrument to enroll in.
// Rows without a name are skipped.
func ImportRecipientsFromExcel(w RosterWriter, file io.Reader, logger zerolog.Logger) (int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing excel file")
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	importedCount := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		var name, instrument string
		if len(row) > 0 {
			name = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			instrument = strings.TrimSpace(row[1])
		}

		if name == "" {
			logger.Info().Int("row", i+1).Msg("skipping row without a student name")
			continue
		}

		id := w.CreateRecipient(name)
		if instrument != "" {
			w.Enroll(id, instrument)
		}
		importedCount++
	}

	logger.Info().Int("count", importedCount).Str("sheet", sheetName).Msg("imported students from excel")
	return importedCount, nil
}

// --- Excel Export ---

// ExportRosterToExcel writes the roster as a workbook with a Students and a
// Teachers sheet, both in insertion order.
func ExportRosterToExcel(store *RosterStore, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			store.log.Warn().Err(err).Msg("closing excel file")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), studentsSheet); err != nil {
		return fmt.Errorf("failed to name sheet %s: %w", studentsSheet, err)
	}
	if _, err := f.NewSheet(teachersSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", teachersSheet, err)
	}

	if err := writeRow(f, studentsSheet, 1, []interface{}{"ID", "Name", "Instruments"}); err != nil {
		return err
	}
	for i, r := range store.ListRecipients() {
		row := []interface{}{r.ID, r.Name, strings.Join(r.EnrolledIn, ", ")}
		if err := writeRow(f, studentsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, teachersSheet, 1, []interface{}{"ID", "Name", "Speciality"}); err != nil {
		return err
	}
	for i, p := range store.ListProviders() {
		row := []interface{}{p.ID, p.Name, p.Speciality}
		if err := writeRow(f, teachersSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write excel file: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to resolve cell for row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of sheet %s: %w", rowNum, sheet, err)
	}
	return nil
}
