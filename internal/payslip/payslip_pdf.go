package payslip

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/towet/payroll-processing-sys/internal/employee"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF lays out a one-page A4 payslip.
func RenderPDF(p Payslip, empl employee.Employee, generatedOn time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "PayrollPro - Payslip", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Payslip No: %s", p.PayslipNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", p.Month, p.Year))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Employee Name: %s", empl.FullName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", empl.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", empl.Position))
	pdf.Ln(12)

	pdf.Cell(0, 8, "Salary Breakdown:")
	pdf.Ln(8)
	pdf.SetX(20)
	pdf.Cell(0, 8, fmt.Sprintf("Basic Salary: %s", p.BasicSalary.Dollars()))
	pdf.Ln(7)
	pdf.SetX(20)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %s", p.Allowances.Dollars()))
	pdf.Ln(7)
	pdf.SetX(20)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", p.Deductions.Dollars()))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Net Salary: %s", p.NetSalary.Dollars()))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated on: %s", generatedOn.Format("January 2, 2006")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Filename(p Payslip, empl employee.Employee) string {
	return fmt.Sprintf("payslip-%s-%s-%s-%d.pdf", empl.FirstName, empl.LastName, p.Month, p.Year)
}

// Archive keeps a copy of generated payslips on local disk.
type Archive interface {
	Save(name string, data []byte) (string, error)
}

type dirArchive struct {
	dir string
}

func NewDirArchive(dir string) Archive {
	return &dirArchive{dir: dir}
}

func (a *dirArchive) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(a.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
