package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/worklog/internal/server/models"
	"github.com/dmitrijs2005/worklog/internal/server/report"
	"github.com/jung-kurt/gofpdf"
)

// DocumentInput is everything a report document shows besides the rows.
type DocumentInput struct {
	Rows        []models.Session
	Summary     report.Summary
	Period      string
	RequestedBy string
	// FunctionFilter is report.AllFunctionsLabel when no function filter is active.
	FunctionFilter string
	Currency       string
}

const (
	docTitle      = "Relatório de Atendimentos"
	docFooter     = "Pagina %d - Sistema de Gestão"
	pageWidth     = 297.0
	bottomMargin  = 15.0
	headerRowH    = 10.0
	rowH          = 8.0
	fontFamily    = "Arial"
	summaryBoxTop = 35.0
)

var (
	columnWidths  = []float64{15, 45, 45, 80, 40, 50}
	columnHeaders = []string{"ID", "Início", "Término", "Função", "Valor Total", "Responsável"}
)

// Document renders an A4 landscape PDF: a title band on every page, a
// subtitle and summary box on the first page, and the session table with
// its header repeated after each page break.
func Document(in DocumentInput) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, bottomMargin)

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(77, 166, 255)
		pdf.Rect(0, 0, pageWidth, 25, "F")
		pdf.SetFont(fontFamily, "B", 15)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(0, 10, Latin1(docTitle), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, Latin1(fmt.Sprintf(docFooter, pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, Latin1(subtitle(in)), "", 1, "L", false, 0, "")

	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(10, summaryBoxTop, pageWidth-20, 20, "F")
	pdf.SetY(summaryBoxTop + 5)
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(0, 10, Latin1(summaryLine(in)), "", 1, "C", false, 0, "")
	pdf.Ln(15)

	tableHeader(pdf)

	_, pageHeight := pdf.GetPageSize()
	fill := false
	for _, r := range in.Rows {
		if pdf.GetY()+rowH > pageHeight-bottomMargin {
			pdf.AddPage()
			tableHeader(pdf)
		}
		pdf.SetFont(fontFamily, "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(columnWidths[0], rowH, strconv.FormatInt(r.ID, 10), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(columnWidths[1], rowH, FormatTimestamp(r.Start), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(columnWidths[2], rowH, FormatTimestamp(r.End), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(columnWidths[3], rowH, Latin1(r.FunctionName), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(columnWidths[4], rowH, Latin1(FormatCurrency(in.Currency, r.TotalAmount)), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(columnWidths[5], rowH, Latin1(r.Owner), "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
		fill = !fill
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return buf.Bytes(), nil
}

func tableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(200, 220, 255)
	for i, h := range columnHeaders {
		pdf.CellFormat(columnWidths[i], headerRowH, Latin1(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func subtitle(in DocumentInput) string {
	s := fmt.Sprintf("Periodo: %s - Usuario Solicitante: %s", in.Period, in.RequestedBy)
	if in.FunctionFilter != "" && in.FunctionFilter != report.AllFunctionsLabel {
		s += " - Filtro Funcao: " + in.FunctionFilter
	}
	return s
}

func summaryLine(in DocumentInput) string {
	return fmt.Sprintf("Faturamento: %s          Horas Trabalhadas: %s          Atendimentos: %d",
		FormatCurrency(in.Currency, in.Summary.TotalAmount), FormatHours(in.Summary.TotalHours), in.Summary.Count)
}
