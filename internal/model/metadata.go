package model

import "time"

// Metadata keys.
const (
	MetaSeedCompletado = "seed_completado"
)

// Metadata is a single-row-per-key state record kept inside the same database
// as the cached data, so flags like the seed marker can never diverge from
// the rows they describe.
type Metadata struct {
	Clave     string    `gorm:"primaryKey" json:"clave"`
	Valor     string    `gorm:"not null" json:"valor"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Metadata) TableName() string { return "metadata" }
