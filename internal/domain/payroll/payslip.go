package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

func (d PayslipData) Net() float64 {
	return d.Salary + d.Bonus - d.Deductions
}

// RenderPayslip writes the payslip PDF for one payroll row to w.
func RenderPayslip(w io.Writer, data PayslipData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", data.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", data.EmployeeEmail))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Payment date: %s", data.PaymentDate.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Salary: %.2f", data.Salary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Bonus: %.2f", data.Bonus))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", data.Deductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f", data.Net()))
	return pdf.Output(w)
}
