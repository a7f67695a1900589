package repository

import (
	"context"

	"github.com/Epaval/factura-con-api-facdin/internal/model"

	"gorm.io/gorm"
)

// PagoRepository is the data access contract for locally recorded invoice
// payments. Several records may exist per invoice number; ordering is always
// newest first so "latest attempt" is the natural head of every result.
type PagoRepository interface {
	Crear(ctx context.Context, p *model.PagoFactura) error
	// UltimoPorFactura returns the most recent record for an invoice number.
	UltimoPorFactura(ctx context.Context, numeroFactura string) (*model.PagoFactura, error)
	ListarPorFactura(ctx context.Context, numeroFactura string) ([]model.PagoFactura, error)
	// ListarPorFecha scans records whose fecha falls on the given calendar
	// day (YYYY-MM-DD), newest first, payment lines included. The day is the
	// wall-clock day the payment was recorded on, never a UTC-shifted one.
	ListarPorFecha(ctx context.Context, fecha string) ([]model.PagoFactura, error)
	// EliminarPorFactura deletes every record for an invoice number and
	// reports how many were removed. Used only by the manual void-reversal
	// flow; the caller must also reverse the remote invoice state.
	EliminarPorFactura(ctx context.Context, numeroFactura string) (int64, error)
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Crear(ctx context.Context, p *model.PagoFactura) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) UltimoPorFactura(ctx context.Context, numeroFactura string) (*model.PagoFactura, error) {
	var p model.PagoFactura
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("numero_factura = ?", numeroFactura).
		Order("fecha DESC, id DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pagoRepo) ListarPorFactura(ctx context.Context, numeroFactura string) ([]model.PagoFactura, error) {
	var pagos []model.PagoFactura
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("numero_factura = ?", numeroFactura).
		Order("fecha DESC, id DESC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) ListarPorFecha(ctx context.Context, fecha string) ([]model.PagoFactura, error) {
	var pagos []model.PagoFactura
	// Matches the fecha_dia column derived at creation. SQLite's DATE() is
	// not usable here: it converts to UTC first, misfiling evening sales.
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("fecha_dia = ?", fecha).
		Order("fecha DESC, id DESC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) EliminarPorFactura(ctx context.Context, numeroFactura string) (int64, error) {
	// Delete child lines first — SQLite does not enforce the cascade unless
	// foreign keys are enabled on the connection.
	sub := r.db.WithContext(ctx).Model(&model.PagoFactura{}).
		Select("id").
		Where("numero_factura = ?", numeroFactura)
	if err := r.db.WithContext(ctx).
		Where("pago_factura_id IN (?)", sub).
		Delete(&model.PagoItem{}).Error; err != nil {
		return 0, err
	}

	res := r.db.WithContext(ctx).
		Where("numero_factura = ?", numeroFactura).
		Delete(&model.PagoFactura{})
	return res.RowsAffected, res.Error
}
