// Package export renders billing data as spreadsheets.
package export

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const registerSheet = "Invoices"

// ContentTypeXLSX is the MIME type of the files written here.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceRow is one line of the invoice register.
type InvoiceRow struct {
	InvoiceNo string
	Date      time.Time
	Kind      string
	Customer  string
	GSTIN     string
	Base      float64
	SGST      float64
	CGST      float64
	Payable   float64
	Paid      float64
	Due       float64
}

var registerHeadings = []interface{}{
	"Invoice No", "Date", "Type", "Customer", "GSTIN",
	"Taxable Value", "SGST", "CGST", "Payable", "Paid", "Due",
}

// WriteInvoiceRegister writes rows as a single-sheet workbook to w.
func WriteInvoiceRegister(w io.Writer, rows []InvoiceRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(registerSheet, "A1", &registerHeadings); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeading, err := excelize.CoordinatesToCellName(len(registerHeadings), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(registerSheet, "A1", lastHeading, bold); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.InvoiceNo, r.Date.Format("2006-01-02"), r.Kind, r.Customer, r.GSTIN,
			r.Base, r.SGST, r.CGST, r.Payable, r.Paid, r.Due,
		}
		if err := f.SetSheetRow(registerSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(registerSheet, "A", "E", 18); err != nil {
		return err
	}
	return f.Write(w)
}
