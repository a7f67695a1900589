package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/infra"
	"github.com/Epaval/factura-con-api-facdin/internal/repository"
	"github.com/Epaval/factura-con-api-facdin/internal/worker"

	"github.com/shopspring/decimal"
)

// EmailEnqueuer pushes report-delivery jobs onto the async queue (satisfied
// by worker.Dispatcher; stubbed in tests).
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload worker.EmailPayload) error
}

// ReporteService is the read-side aggregation over locally recorded payments:
// one pass over the day's records, grouped by payment kind. It never talks to
// the remote API — the report reflects exactly what this terminal collected.
type ReporteService interface {
	// ReporteDiario aggregates every payment recorded on fecha (YYYY-MM-DD).
	// A day with no records yields zero totals, an empty mapping and an empty
	// invoice list — not an error.
	ReporteDiario(ctx context.Context, fecha string) (*dto.ReporteDiarioResponse, error)
	// ReporteDiarioPDF renders the summary to disk and returns the file path.
	ReporteDiarioPDF(ctx context.Context, fecha string) (string, error)
	// EnviarReporteDiario renders the PDF and enqueues its email delivery.
	EnviarReporteDiario(ctx context.Context, req dto.EnviarReporteRequest) error
}

type reporteService struct {
	repo           repository.PagoRepository
	enqueuer       EmailEnqueuer
	storagePath    string
	nombreComercio string
}

func NewReporteService(repo repository.PagoRepository, enqueuer EmailEnqueuer, storagePath, nombreComercio string) ReporteService {
	return &reporteService{
		repo:           repo,
		enqueuer:       enqueuer,
		storagePath:    storagePath,
		nombreComercio: nombreComercio,
	}
}

func (s *reporteService) ReporteDiario(ctx context.Context, fecha string) (*dto.ReporteDiarioResponse, error) {
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		return nil, fmt.Errorf("fecha invalida %q: se espera YYYY-MM-DD", fecha)
	}

	// Newest first from the store, so the facturas sequence is already in
	// non-increasing fecha order.
	pagos, err := s.repo.ListarPorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}

	reporte := &dto.ReporteDiarioResponse{
		Fecha:        fecha,
		TotalGeneral: decimal.Zero,
		PorMetodo:    map[string]dto.TotalesMetodo{},
		Facturas:     []dto.PagoFacturaResponse{},
	}

	for _, pago := range pagos {
		reporte.Facturas = append(reporte.Facturas, mapPago(pago))

		for _, item := range pago.Items {
			// Tolerate malformed historical rows: an unset monto is the
			// decimal zero value and simply contributes nothing.
			totales := reporte.PorMetodo[item.Tipo]
			totales.Total = totales.Total.Add(item.Monto)
			totales.Cantidad++
			reporte.PorMetodo[item.Tipo] = totales

			reporte.TotalGeneral = reporte.TotalGeneral.Add(item.Monto)
		}
	}

	return reporte, nil
}

func (s *reporteService) ReporteDiarioPDF(ctx context.Context, fecha string) (string, error) {
	reporte, err := s.ReporteDiario(ctx, fecha)
	if err != nil {
		return "", err
	}
	return infra.GenerateReporteDiarioPDF(reporte, s.storagePath, s.nombreComercio)
}

func (s *reporteService) EnviarReporteDiario(ctx context.Context, req dto.EnviarReporteRequest) error {
	pdfPath, err := s.ReporteDiarioPDF(ctx, req.Fecha)
	if err != nil {
		return err
	}
	return s.enqueuer.EnqueueEmail(ctx, worker.EmailPayload{
		Para:       req.Destinatario,
		Asunto:     fmt.Sprintf("Reporte diario de ventas — %s", req.Fecha),
		Cuerpo:     fmt.Sprintf("Adjunto el reporte de ventas del %s.", req.Fecha),
		AdjuntoPDF: pdfPath,
	})
}
