package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type EnviarReporteRequest struct {
	Fecha        string `json:"fecha"        validate:"required,datetime=2006-01-02"`
	Destinatario string `json:"destinatario" validate:"required,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// TotalesMetodo accumulates amount and line count for one payment kind.
type TotalesMetodo struct {
	Total    decimal.Decimal `json:"total"`
	Cantidad int             `json:"cantidad"`
}

// ReporteDiarioResponse is the per-day sales summary computed from locally
// recorded payments. Facturas come newest first; PorMetodo carries no defined
// order (display layers sort as they see fit).
type ReporteDiarioResponse struct {
	Fecha        string                   `json:"fecha"`
	TotalGeneral decimal.Decimal          `json:"total_general"`
	PorMetodo    map[string]TotalesMetodo `json:"por_metodo"`
	Facturas     []PagoFacturaResponse    `json:"facturas"`
}
