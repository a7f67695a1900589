package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Cliente is a billing counterparty cached locally for offline lookup.
// Exactly one of CI / RIF is set; ID equals whichever identifier is present,
// normalized to uppercase. CI carries prefix V/E (cédula), RIF carries J/G
// and other tax prefixes.
type Cliente struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	CI        *string `gorm:"index" json:"ci"`
	RIF       *string `gorm:"index" json:"rif"`
	Nombre    string  `gorm:"index;not null" json:"nombre"`
	Telefono  string  `json:"telefono"`
	Direccion string  `json:"direccion"`
	// NombreBusqueda is an uppercased shadow of Nombre, maintained in Go
	// because SQLite's UPPER() folds ASCII only and names here carry accents
	// (María, González). Search queries compare against this column.
	NombreBusqueda string    `gorm:"index" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Cliente) TableName() string { return "clientes" }

func (c *Cliente) BeforeSave(*gorm.DB) error {
	c.NombreBusqueda = strings.ToUpper(c.Nombre)
	return nil
}
