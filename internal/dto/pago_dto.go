package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PagoLinea is one payment instrument applied to an invoice. Non-cash kinds
// carry a 4-digit operation reference; efectivo carries none.
type PagoLinea struct {
	Tipo       string          `json:"tipo"       validate:"required,oneof=efectivo pago_movil transferencia tarjeta"`
	Monto      decimal.Decimal `json:"monto"      validate:"required"`
	Referencia *string         `json:"referencia" validate:"omitempty,len=4,numeric"`
}

// RegistrarPagoRequest records the payment set for an already-submitted
// remote invoice. The sum of the lines must cover the invoice total — that
// check belongs to the invoicing flow, not to this local record.
type RegistrarPagoRequest struct {
	NumeroFactura string          `json:"numero_factura" validate:"required,min=1"`
	Pagos         []PagoLinea     `json:"pagos"          validate:"required,min=1,dive"`
	Vuelto        decimal.Decimal `json:"vuelto"         validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoFacturaResponse struct {
	ID            string          `json:"id"`
	NumeroFactura string          `json:"numero_factura"`
	Fecha         string          `json:"fecha"`
	Pagos         []PagoLinea     `json:"pagos"`
	Vuelto        decimal.Decimal `json:"vuelto"`
}
