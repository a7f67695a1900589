package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type GuardarProductoRequest struct {
	Codigo      string          `json:"codigo"      validate:"required,min=1"`
	Descripcion string          `json:"descripcion" validate:"required,min=2"`
	Precio      decimal.Decimal `json:"precio"      validate:"min=0"`
	Cantidad    int             `json:"cantidad"    validate:"min=0"`
	Estatus     string          `json:"estatus"     validate:"omitempty,oneof=vig bloq"`
}

type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"omitempty,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Cantidad    int             `json:"cantidad"`
	Estatus     string          `json:"estatus"`
}
