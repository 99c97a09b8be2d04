package payroll

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

const PDFContentType = "application/pdf"

type pdfRow struct {
	label string
	value string
}

// RenderPayslipPDF lays the payslip out on one A4 page.
func RenderPayslipPDF(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+p.Period.Label, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s (%s to %s)", p.Period.Label, p.Period.StartDate, p.Period.EndDate))
	pdf.Ln(10)

	writeSection(pdf, "Employee", []pdfRow{
		{"Name", p.Employee.Name},
		{"Employee Code", p.Employee.EmployeeCode},
		{"Department", p.Employee.Department},
		{"Designation", p.Employee.Designation},
	})
	writeSection(pdf, "Earnings", []pdfRow{
		{"Basic", money(p.Earnings.Basic)},
		{"HRA", money(p.Earnings.HRA)},
		{"Special Allowance", money(p.Earnings.SpecialAllowance)},
		{"Total", money(p.Earnings.Total)},
	})
	writeSection(pdf, "Deductions", []pdfRow{
		{"Provident Fund", money(p.Deductions.PF)},
		{"Professional Tax", money(p.Deductions.ProfessionalTax)},
		{"Unpaid Leave", money(p.Deductions.LeaveDeduction)},
		{"Total", money(p.Deductions.Total)},
	})
	writeSection(pdf, "Summary", []pdfRow{
		{"Gross Earning", money(p.Summary.GrossEarning)},
		{"Total Deduction", money(p.Summary.TotalDeduction)},
		{"Net Payable", money(p.Summary.NetPayable)},
	})
	writeSection(pdf, "Attendance", []pdfRow{
		{"Working Days", strconv.Itoa(p.Stats.TotalWorkingDays)},
		{"Unpaid Leave Days", strconv.Itoa(p.Stats.UnpaidLeaveDays)},
		{"Effective Working Days", strconv.Itoa(p.Stats.EffectiveWorkingDays)},
		{"Daily Wage", strconv.FormatFloat(p.Stats.DailyWage, 'f', 2, 64)},
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, title string, rows []pdfRow) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(90, 7, r.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, r.value, "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func money(v int64) string {
	return strconv.FormatInt(v, 10)
}
