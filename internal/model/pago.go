package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment instrument kinds. Efectivo requires no reference; every other kind
// carries a 4-digit operation reference.
const (
	PagoEfectivo      = "efectivo"
	PagoMovil         = "pago_movil"
	PagoTransferencia = "transferencia"
	PagoTarjeta       = "tarjeta"
)

// PagoFactura records the set of payment instruments applied to one finalized
// invoice. The invoice itself lives only in the remote system — NumeroFactura
// is a by-value reference, never a foreign key. Several records may exist for
// the same invoice number (retried payments); ID embeds the creation
// timestamp to keep them distinct.
type PagoFactura struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	NumeroFactura string    `gorm:"index;not null" json:"numero_factura"`
	Fecha         time.Time `gorm:"index;not null" json:"fecha"`
	// FechaDia is the wall-clock calendar day of Fecha (YYYY-MM-DD), derived
	// in Go at creation. Daily reports match on this column: SQLite's DATE()
	// shifts timezone-bearing timestamps to UTC, which would push an evening
	// sale in Venezuela (UTC-4) onto the next day's report.
	FechaDia string          `gorm:"index;not null" json:"-"`
	Vuelto   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vuelto"`

	Items []PagoItem `gorm:"foreignKey:PagoFacturaID;constraint:OnDelete:CASCADE" json:"items"`
}

func (PagoFactura) TableName() string { return "pagos_factura" }

func (p *PagoFactura) BeforeCreate(*gorm.DB) error {
	if p.FechaDia == "" {
		p.FechaDia = p.Fecha.Format("2006-01-02")
	}
	return nil
}

// PagoItem is one payment line inside a PagoFactura. Stored as proper rows
// (not a serialized blob) so the store's own queries can reach into them.
type PagoItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PagoFacturaID string          `gorm:"index;not null" json:"-"`
	Tipo          string          `gorm:"type:varchar(20);not null" json:"tipo"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	Referencia    *string         `gorm:"type:varchar(4)" json:"referencia"`
}

func (PagoItem) TableName() string { return "pago_items" }

// RequiereReferencia reports whether a payment kind must carry a reference.
func RequiereReferencia(tipo string) bool { return tipo != PagoEfectivo }

// TipoPagoValido reports whether tipo is one of the known payment kinds.
func TipoPagoValido(tipo string) bool {
	switch tipo {
	case PagoEfectivo, PagoMovil, PagoTransferencia, PagoTarjeta:
		return true
	}
	return false
}
