package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/motorhaus/garagego/internal/models"
)

// GenerateJobSheetPDF renders a printable work order: header, tool
// checklist, reference specs, and the step list split into its teardown and
// assembly passes with checkboxes.
func GenerateJobSheetPDF(job *models.Job, vehicle *models.Vehicle) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, job.Title, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, vehicle.Description(), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s    Plan: %s", job.Status, job.PlanStatus), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(job.Tools) > 0 {
		sectionHeader(pdf, "Tools")
		for _, tool := range job.Tools {
			line := tool.Name
			if tool.Note != "" {
				line += " (" + tool.Note + ")"
			}
			if !tool.Required {
				line += " [optional]"
			}
			checkboxLine(pdf, line, tool.IsAcquired)
		}
		pdf.Ln(2)
	}

	if len(job.Specs) > 0 {
		sectionHeader(pdf, "Specs")
		pdf.SetFont("Arial", "", 9)
		for _, spec := range job.Specs {
			pdf.CellFormat(70, 5, spec.Item, "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "B", 9)
			pdf.CellFormat(40, 5, spec.Value, "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 5, spec.Note, "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	// The same task list is printed twice: once per phase pass
	sectionHeader(pdf, "Teardown")
	for _, task := range job.Tasks {
		checkboxLine(pdf, task.Instruction, task.IsDoneTear)
	}
	pdf.Ln(2)

	sectionHeader(pdf, "Assembly")
	for _, task := range job.Tasks {
		checkboxLine(pdf, task.Instruction, task.IsDoneBuild)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func checkboxLine(pdf *gofpdf.Fpdf, text string, done bool) {
	pdf.SetFont("Arial", "", 9)
	y := pdf.GetY()
	pdf.Rect(16, y+0.8, 3.5, 3.5, "D")
	if done {
		pdf.SetXY(16, y)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(3.5, 5, "X", "", 0, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
	}
	pdf.SetXY(22, y)
	pdf.MultiCell(0, 5, text, "", "L", false)
}
