package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Epaval/factura-con-api-facdin/internal/model"

	"gorm.io/gorm"
)

// ErrStockInsuficiente is returned by AjustarStock when the delta would drive
// the stock count below zero.
var ErrStockInsuficiente = errors.New("stock insuficiente")

// ProductoRepository is the data access contract for the cached product
// collection.
type ProductoRepository interface {
	Guardar(ctx context.Context, p *model.Producto) error
	ObtenerPorID(ctx context.Context, id string) (*model.Producto, error)
	// Listar returns every product, or only those with estatus "vig" when
	// soloVigentes is true.
	Listar(ctx context.Context, soloVigentes bool) ([]model.Producto, error)
	Buscar(ctx context.Context, termino string) ([]model.Producto, error)
	Eliminar(ctx context.Context, id string) error
	// AjustarStock applies a stock delta as a single in-store expression —
	// never a read-modify-write from the caller — and refuses to go negative.
	AjustarStock(ctx context.Context, id string, delta int) (*model.Producto, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Guardar(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) ObtenerPorID(ctx context.Context, id string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) Listar(ctx context.Context, soloVigentes bool) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if soloVigentes {
		q = q.Where("estatus = ?", model.EstatusVigente)
	}
	var productos []model.Producto
	err := q.Order("codigo ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Buscar(ctx context.Context, termino string) ([]model.Producto, error) {
	// descripcion_busqueda is the Go-uppercased shadow (SQLite's UPPER() is
	// ASCII-only); codigo is plain ASCII SKUs, UPPER() suffices there.
	pattern := "%" + strings.ToUpper(termino) + "%"
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("UPPER(codigo) LIKE ? OR descripcion_busqueda LIKE ?", pattern, pattern).
		Order("codigo ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Eliminar(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Producto{}).Error
}

func (r *productoRepo) AjustarStock(ctx context.Context, id string, delta int) (*model.Producto, error) {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND cantidad + ? >= 0", id, delta).
		Update("cantidad", gorm.Expr("cantidad + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish missing product from insufficient stock
		if _, err := r.ObtenerPorID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStockInsuficiente
	}
	return r.ObtenerPorID(ctx, id)
}
