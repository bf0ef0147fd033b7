// Package export renders customer records as an .xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

// Workbook metadata served with the export
const (
	SheetName   = "Data Pelanggan"
	FileName    = "pelanggan.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type column struct {
	header string
	width  float64
	value  func(c *models.Customer) any
}

var columns = []column{
	{"ID", 10, func(c *models.Customer) any { return c.ID }},
	{"Nama", 30, func(c *models.Customer) any { return c.Name }},
	{"Telepon", 15, func(c *models.Customer) any { return deref(c.Phone) }},
	{"Email", 30, func(c *models.Customer) any { return deref(c.Email) }},
	{"Alamat", 40, func(c *models.Customer) any { return deref(c.Address) }},
	{"Tag", 20, func(c *models.Customer) any { return strings.Join(c.TagStrings(), ", ") }},
	{"Catatan", 40, func(c *models.Customer) any { return deref(c.Notes) }},
}

// Headers returns the fixed column headers in order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = col.header
	}
	return out
}

// WriteCustomers writes customers as a single-sheet workbook with a bold header row.
func WriteCustomers(w io.Writer, customers []*models.Customer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.header

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, col.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, c := range customers {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = col.value(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
