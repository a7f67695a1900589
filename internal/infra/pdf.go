package infra

// pdf.go — daily sales report rendering using go-pdf/fpdf.
// Layout: business header, report date, per-payment-method totals table,
// bold grand total, then one row per invoice with its payment breakdown.
// The output file is saved to storagePath/reporte_{fecha}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Epaval/factura-con-api-facdin/internal/dto"

	"github.com/go-pdf/fpdf"
)

// Display labels for payment kinds, in fixed display order.
var etiquetasMetodo = []struct{ clave, etiqueta string }{
	{"efectivo", "Efectivo"},
	{"pago_movil", "Pago Móvil"},
	{"transferencia", "Transferencia"},
	{"tarjeta", "Tarjeta"},
}

// GenerateReporteDiarioPDF renders a daily report to a PDF file and returns
// its absolute path. storagePath is created if needed.
func GenerateReporteDiarioPDF(reporte *dto.ReporteDiarioResponse, storagePath, nombreComercio string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_%s.pdf", reporte.Fecha)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, nombreComercio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Reporte Diario de Ventas", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, reporte.Fecha, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Per-method totals ─────────────────────────────────────────────────────
	col1 := contentW * 0.50
	col2 := contentW * 0.20
	col3 := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Método de Pago", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Operaciones", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, m := range etiquetasMetodo {
		totales, ok := reporte.PorMetodo[m.clave]
		if !ok {
			continue
		}
		pdf.CellFormat(col1, 6, m.etiqueta, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", totales.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "Bs. "+totales.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}
	// Kinds outside the fixed display list (defensive — tolerated historical data)
	var extras []string
	for clave := range reporte.PorMetodo {
		conocido := false
		for _, m := range etiquetasMetodo {
			if m.clave == clave {
				conocido = true
				break
			}
		}
		if !conocido {
			extras = append(extras, clave)
		}
	}
	sort.Strings(extras)
	for _, clave := range extras {
		totales := reporte.PorMetodo[clave]
		pdf.CellFormat(col1, 6, clave, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", totales.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "Bs. "+totales.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2, 8, "TOTAL GENERAL:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 8, "Bs. "+reporte.TotalGeneral.StringFixed(2), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	// ── Invoice detail ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("Facturas del día (%d)", len(reporte.Facturas)), "", 1, "L", false, 0, "")

	fcol1 := contentW * 0.25
	fcol2 := contentW * 0.30
	fcol3 := contentW * 0.25
	fcol4 := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(fcol1, 6, "Factura", "B", 0, "L", false, 0, "")
	pdf.CellFormat(fcol2, 6, "Hora", "B", 0, "L", false, 0, "")
	pdf.CellFormat(fcol3, 6, "Pagos", "B", 0, "L", false, 0, "")
	pdf.CellFormat(fcol4, 6, "Vuelto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, f := range reporte.Facturas {
		pdf.CellFormat(fcol1, 5, f.NumeroFactura, "", 0, "L", false, 0, "")
		pdf.CellFormat(fcol2, 5, f.Fecha, "", 0, "L", false, 0, "")
		pdf.CellFormat(fcol3, 5, fmt.Sprintf("%d", len(f.Pagos)), "", 0, "L", false, 0, "")
		pdf.CellFormat(fcol4, 5, "Bs. "+f.Vuelto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
