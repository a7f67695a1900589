package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/model"
	"github.com/Epaval/factura-con-api-facdin/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubEnqueuer struct {
	encolados []worker.EmailPayload
}

func (e *stubEnqueuer) EnqueueEmail(_ context.Context, payload worker.EmailPayload) error {
	e.encolados = append(e.encolados, payload)
	return nil
}

var _ EmailEnqueuer = (*stubEnqueuer)(nil)

func registrarPagoDia(t *testing.T, svc PagoService, numero string, lineas ...dto.PagoLinea) {
	t.Helper()
	_, err := svc.Registrar(context.Background(), dto.RegistrarPagoRequest{
		NumeroFactura: numero,
		Pagos:         lineas,
	})
	require.NoError(t, err)
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestReporteDiario_DiaSinVentas(t *testing.T) {
	svc := NewReporteService(&stubPagoRepo{}, &stubEnqueuer{}, t.TempDir(), "FACDIN")

	reporte, err := svc.ReporteDiario(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", reporte.Fecha)
	assert.True(t, reporte.TotalGeneral.IsZero())
	assert.Empty(t, reporte.PorMetodo)
	assert.Empty(t, reporte.Facturas)
}

func TestReporteDiario_FechaInvalida(t *testing.T) {
	svc := NewReporteService(&stubPagoRepo{}, &stubEnqueuer{}, t.TempDir(), "FACDIN")

	_, err := svc.ReporteDiario(context.Background(), "15/01/2024")
	assert.ErrorContains(t, err, "fecha invalida")
}

func TestReporteDiario_AgregacionPorMetodo(t *testing.T) {
	repo := &stubPagoRepo{}
	pagoSvc := pagoSvcConReloj(repo, time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local))
	svc := NewReporteService(repo, &stubEnqueuer{}, t.TempDir(), "FACDIN")

	registrarPagoDia(t, pagoSvc, "F001",
		dto.PagoLinea{Tipo: model.PagoEfectivo, Monto: decimal.RequireFromString("100.00")},
		dto.PagoLinea{Tipo: model.PagoMovil, Monto: decimal.RequireFromString("50.00"), Referencia: ref("1234")},
	)
	registrarPagoDia(t, pagoSvc, "F002",
		dto.PagoLinea{Tipo: model.PagoEfectivo, Monto: decimal.RequireFromString("30.50")},
	)

	reporte, err := svc.ReporteDiario(context.Background(), "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, "180.50", reporte.TotalGeneral.StringFixed(2))
	require.Len(t, reporte.PorMetodo, 2)

	efectivo := reporte.PorMetodo[model.PagoEfectivo]
	assert.Equal(t, "130.50", efectivo.Total.StringFixed(2))
	assert.Equal(t, 2, efectivo.Cantidad)

	movil := reporte.PorMetodo[model.PagoMovil]
	assert.Equal(t, "50.00", movil.Total.StringFixed(2))
	assert.Equal(t, 1, movil.Cantidad)

	// Grand total equals the sum over methods
	suma := decimal.Zero
	for _, totales := range reporte.PorMetodo {
		suma = suma.Add(totales.Total)
	}
	assert.True(t, suma.Equal(reporte.TotalGeneral))

	// Invoices newest first
	require.Len(t, reporte.Facturas, 2)
	assert.Equal(t, "F002", reporte.Facturas[0].NumeroFactura)
	assert.Equal(t, "F001", reporte.Facturas[1].NumeroFactura)
}

func TestReporteDiario_SoloElDiaPedido(t *testing.T) {
	repo := &stubPagoRepo{}
	svc := NewReporteService(repo, &stubEnqueuer{}, t.TempDir(), "FACDIN")

	dia15 := pagoSvcConReloj(repo, time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local))
	dia16 := pagoSvcConReloj(repo, time.Date(2024, 1, 16, 9, 0, 0, 0, time.Local))
	registrarPagoDia(t, dia15, "F001", dto.PagoLinea{Tipo: model.PagoEfectivo, Monto: decimal.NewFromInt(100)})
	registrarPagoDia(t, dia16, "F002", dto.PagoLinea{Tipo: model.PagoEfectivo, Monto: decimal.NewFromInt(999)})

	reporte, err := svc.ReporteDiario(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.Len(t, reporte.Facturas, 1)
	assert.Equal(t, "F001", reporte.Facturas[0].NumeroFactura)
	assert.Equal(t, "100.00", reporte.TotalGeneral.StringFixed(2))
}

func TestReporteDiarioPDF_GeneraArchivo(t *testing.T) {
	repo := &stubPagoRepo{}
	pagoSvc := pagoSvcConReloj(repo, time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local))
	dir := t.TempDir()
	svc := NewReporteService(repo, &stubEnqueuer{}, dir, "Comercio Demo")

	registrarPagoDia(t, pagoSvc, "F001", dto.PagoLinea{Tipo: model.PagoEfectivo, Monto: decimal.NewFromInt(100)})

	path, err := svc.ReporteDiarioPDF(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Contains(t, path, "reporte_2024-01-15.pdf")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEnviarReporteDiario_Encola(t *testing.T) {
	repo := &stubPagoRepo{}
	enq := &stubEnqueuer{}
	svc := NewReporteService(repo, enq, t.TempDir(), "FACDIN")

	err := svc.EnviarReporteDiario(context.Background(), dto.EnviarReporteRequest{
		Fecha:        "2024-01-15",
		Destinatario: "gerencia@comercio.com",
	})
	require.NoError(t, err)

	require.Len(t, enq.encolados, 1)
	assert.Equal(t, "gerencia@comercio.com", enq.encolados[0].Para)
	assert.Contains(t, enq.encolados[0].Asunto, "2024-01-15")
	assert.Contains(t, enq.encolados[0].AdjuntoPDF, "reporte_2024-01-15.pdf")
}
