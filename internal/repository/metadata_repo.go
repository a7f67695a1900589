package repository

import (
	"context"

	"github.com/Epaval/factura-con-api-facdin/internal/model"

	"gorm.io/gorm"
)

// MetadataRepository reads and writes single-row state records that live in
// the same database as the cached data (seed marker, future flags).
type MetadataRepository interface {
	Obtener(ctx context.Context, clave string) (*model.Metadata, error)
	Guardar(ctx context.Context, clave, valor string) error
}

type metadataRepo struct{ db *gorm.DB }

func NewMetadataRepository(db *gorm.DB) MetadataRepository { return &metadataRepo{db: db} }

func (r *metadataRepo) Obtener(ctx context.Context, clave string) (*model.Metadata, error) {
	var m model.Metadata
	err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *metadataRepo) Guardar(ctx context.Context, clave, valor string) error {
	return r.db.WithContext(ctx).Save(&model.Metadata{Clave: clave, Valor: valor}).Error
}
