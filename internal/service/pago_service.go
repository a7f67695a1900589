package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/model"
	"github.com/Epaval/factura-con-api-facdin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PagoService records which payment instruments settled each remote invoice.
// The invoice itself is never stored locally; numeroFactura is taken on faith
// from the UI glue after a successful remote submission (local-first by
// design — reconciliation with the remote invoice is the caller's job).
//
// Several records may exist for one invoice (retried payments). Lookups
// return the most recent; ListarPorFactura exposes the full history.
type PagoService interface {
	Registrar(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.PagoFacturaResponse, error)
	// ObtenerPorFactura returns the latest payment record for an invoice
	// number, or nil when none exists.
	ObtenerPorFactura(ctx context.Context, numeroFactura string) (*dto.PagoFacturaResponse, error)
	ListarPorFactura(ctx context.Context, numeroFactura string) ([]dto.PagoFacturaResponse, error)
	// EliminarPorFactura removes every record for the invoice — the manual
	// reversal path when an invoice is voided remotely. Returns how many
	// records were deleted.
	EliminarPorFactura(ctx context.Context, numeroFactura string) (int64, error)
}

type pagoService struct {
	repo  repository.PagoRepository
	ahora func() time.Time
}

func NewPagoService(repo repository.PagoRepository) PagoService {
	return &pagoService{repo: repo, ahora: time.Now}
}

func mapPago(p model.PagoFactura) dto.PagoFacturaResponse {
	lineas := make([]dto.PagoLinea, 0, len(p.Items))
	for _, item := range p.Items {
		lineas = append(lineas, dto.PagoLinea{
			Tipo:       item.Tipo,
			Monto:      item.Monto,
			Referencia: item.Referencia,
		})
	}
	return dto.PagoFacturaResponse{
		ID:            p.ID,
		NumeroFactura: p.NumeroFactura,
		Fecha:         p.Fecha.Format(time.RFC3339),
		Pagos:         lineas,
		Vuelto:        p.Vuelto,
	}
}

func (s *pagoService) Registrar(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.PagoFacturaResponse, error) {
	numero := strings.TrimSpace(req.NumeroFactura)
	if numero == "" {
		return nil, errors.New("numero de factura requerido")
	}
	if req.Vuelto.IsNegative() {
		return nil, errors.New("el vuelto no puede ser negativo")
	}

	ahora := s.ahora()
	pago := &model.PagoFactura{
		// Creation timestamp in the id keeps retried payments for the same
		// invoice from colliding.
		ID:            fmt.Sprintf("pago_%s_%d", numero, ahora.UnixMilli()),
		NumeroFactura: numero,
		Fecha:         ahora,
		Vuelto:        req.Vuelto,
	}

	for i, linea := range req.Pagos {
		if !model.TipoPagoValido(linea.Tipo) {
			return nil, fmt.Errorf("pago %d: tipo %q desconocido", i+1, linea.Tipo)
		}
		if !linea.Monto.IsPositive() {
			return nil, fmt.Errorf("pago %d: el monto debe ser mayor que cero", i+1)
		}
		item := model.PagoItem{
			ID:            uuid.New(),
			PagoFacturaID: pago.ID,
			Tipo:          linea.Tipo,
			Monto:         linea.Monto,
		}
		if model.RequiereReferencia(linea.Tipo) {
			if linea.Referencia == nil || len(strings.TrimSpace(*linea.Referencia)) != 4 {
				return nil, fmt.Errorf("pago %d: referencia de 4 digitos requerida para %s", i+1, linea.Tipo)
			}
			ref := strings.TrimSpace(*linea.Referencia)
			item.Referencia = &ref
		} else if linea.Referencia != nil && strings.TrimSpace(*linea.Referencia) != "" {
			return nil, fmt.Errorf("pago %d: %s no lleva referencia", i+1, linea.Tipo)
		}
		pago.Items = append(pago.Items, item)
	}

	if err := s.repo.Crear(ctx, pago); err != nil {
		return nil, err
	}
	resp := mapPago(*pago)
	return &resp, nil
}

func (s *pagoService) ObtenerPorFactura(ctx context.Context, numeroFactura string) (*dto.PagoFacturaResponse, error) {
	pago, err := s.repo.UltimoPorFactura(ctx, strings.TrimSpace(numeroFactura))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapPago(*pago)
	return &resp, nil
}

func (s *pagoService) ListarPorFactura(ctx context.Context, numeroFactura string) ([]dto.PagoFacturaResponse, error) {
	pagos, err := s.repo.ListarPorFactura(ctx, strings.TrimSpace(numeroFactura))
	if err != nil {
		return nil, err
	}
	result := make([]dto.PagoFacturaResponse, 0, len(pagos))
	for _, p := range pagos {
		result = append(result, mapPago(p))
	}
	return result, nil
}

func (s *pagoService) EliminarPorFactura(ctx context.Context, numeroFactura string) (int64, error) {
	return s.repo.EliminarPorFactura(ctx, strings.TrimSpace(numeroFactura))
}
