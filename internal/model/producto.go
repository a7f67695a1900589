package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product status values. Only "vig" products are offered during invoice entry.
const (
	EstatusVigente   = "vig"
	EstatusBloqueado = "bloq"
)

// Producto is a sellable item cached locally. ID equals Codigo (the
// human-readable SKU); Cantidad is the local stock count.
type Producto struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Codigo      string          `gorm:"uniqueIndex;not null" json:"codigo"`
	Descripcion string          `gorm:"index" json:"descripcion"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio"`
	Cantidad    int             `gorm:"not null;default:0" json:"cantidad"`
	Estatus     string          `gorm:"index;type:varchar(10);not null;default:'vig'" json:"estatus"`
	// DescripcionBusqueda is an uppercased shadow of Descripcion, maintained
	// in Go because SQLite's UPPER() folds ASCII only and descriptions carry
	// accents (Café, Azúcar). Search queries compare against this column.
	DescripcionBusqueda string    `gorm:"index" json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Producto) TableName() string { return "productos" }

func (p *Producto) BeforeSave(*gorm.DB) error {
	p.DescripcionBusqueda = strings.ToUpper(p.Descripcion)
	return nil
}
