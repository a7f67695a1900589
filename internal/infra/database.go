package infra

import (
	"fmt"

	"github.com/Epaval/factura-con-api-facdin/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the embedded SQLite file that backs the offline cache and
// runs AutoMigrate. Schema evolution is additive only: new tables and indexes
// may appear in later versions, existing rows are never rewritten or dropped.
func NewDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY under
	// concurrent handler writes.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.Producto{},
		&model.PagoFactura{},
		&model.PagoItem{},
		&model.Metadata{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
