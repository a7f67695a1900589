package repository

import (
	"context"
	"strings"

	"github.com/Epaval/factura-con-api-facdin/internal/model"

	"gorm.io/gorm"
)

// ClienteRepository is the data access contract for the cached client
// collection. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via in-memory stubs.
//
// The store itself performs no business validation; malformed records are the
// service layer's problem. Lookups signal absence with gorm.ErrRecordNotFound.
type ClienteRepository interface {
	// Guardar is insert-or-replace by primary key — whole-record put, no
	// partial-update semantics.
	Guardar(ctx context.Context, c *model.Cliente) error
	ObtenerPorID(ctx context.Context, id string) (*model.Cliente, error)
	BuscarPorCI(ctx context.Context, ci string) (*model.Cliente, error)
	BuscarPorRIF(ctx context.Context, rif string) (*model.Cliente, error)
	// Buscar scans the collection with a case-insensitive substring match
	// against ci, rif and nombre. Each call is a fresh scan; no cursor state.
	Buscar(ctx context.Context, termino string) ([]model.Cliente, error)
	ListarTodos(ctx context.Context) ([]model.Cliente, error)
	// Eliminar is idempotent; deleting a missing key is not an error.
	Eliminar(ctx context.Context, id string) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Guardar(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) ObtenerPorID(ctx context.Context, id string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) BuscarPorCI(ctx context.Context, ci string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("ci = ?", ci).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) BuscarPorRIF(ctx context.Context, rif string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("rif = ?", rif).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) Buscar(ctx context.Context, termino string) ([]model.Cliente, error) {
	// Both sides are uppercased in Go: the pattern here, the stored side via
	// the nombre_busqueda shadow column. SQLite's UPPER() folds ASCII only
	// and would never match accented names in a different casing.
	pattern := "%" + strings.ToUpper(termino) + "%"
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).
		Where("ci LIKE ? OR rif LIKE ? OR nombre_busqueda LIKE ?", pattern, pattern, pattern).
		Order("nombre ASC").
		Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) ListarTodos(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Eliminar(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Cliente{}).Error
}
