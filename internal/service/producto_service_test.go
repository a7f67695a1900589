package service

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/model"
	"github.com/Epaval/factura-con-api-facdin/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[string]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[string]*model.Producto)}
}

func (r *stubProductoRepo) Guardar(_ context.Context, p *model.Producto) error {
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) ObtenerPorID(_ context.Context, id string) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) Listar(_ context.Context, soloVigentes bool) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if soloVigentes && p.Estatus != model.EstatusVigente {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (r *stubProductoRepo) Buscar(_ context.Context, termino string) ([]model.Producto, error) {
	t := strings.ToUpper(termino)
	var out []model.Producto
	for _, p := range r.productos {
		if strings.Contains(strings.ToUpper(p.Codigo), t) ||
			strings.Contains(strings.ToUpper(p.Descripcion), t) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Eliminar(_ context.Context, id string) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, id string, delta int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p.Cantidad+delta < 0 {
		return nil, repository.ErrStockInsuficiente
	}
	p.Cantidad += delta
	return p, nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func seedProducto(t *testing.T, svc ProductoService, codigo, descripcion string, cantidad int, estatus string) {
	t.Helper()
	_, err := svc.Guardar(context.Background(), dto.GuardarProductoRequest{
		Codigo:      codigo,
		Descripcion: descripcion,
		Precio:      decimal.NewFromInt(25),
		Cantidad:    cantidad,
		Estatus:     estatus,
	})
	require.NoError(t, err)
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestListarProductos_SoloVigentes(t *testing.T) {
	svc := NewProductoService(newStubProductoRepo())
	seedProducto(t, svc, "P001", "Harina de maiz 1kg", 10, model.EstatusVigente)
	seedProducto(t, svc, "P002", "Aceite vegetal 1L", 5, model.EstatusBloqueado)
	seedProducto(t, svc, "P003", "Arroz blanco 1kg", 8, "")

	todos, err := svc.Listar(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	vigentes, err := svc.Listar(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, vigentes, 2)
	for _, p := range vigentes {
		assert.Equal(t, model.EstatusVigente, p.Estatus)
	}
}

func TestGuardarProducto_EstatusPorDefecto(t *testing.T) {
	svc := NewProductoService(newStubProductoRepo())

	resp, err := svc.Guardar(context.Background(), dto.GuardarProductoRequest{
		Codigo:      "P010",
		Descripcion: "Cafe molido 250g",
		Precio:      decimal.NewFromInt(30),
		Cantidad:    12,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstatusVigente, resp.Estatus)
	assert.Equal(t, "P010", resp.ID)
}

func TestGuardarProducto_Rechazos(t *testing.T) {
	svc := NewProductoService(newStubProductoRepo())

	_, err := svc.Guardar(context.Background(), dto.GuardarProductoRequest{
		Codigo: "P011", Precio: decimal.NewFromInt(-1),
	})
	assert.ErrorContains(t, err, "precio")

	_, err = svc.Guardar(context.Background(), dto.GuardarProductoRequest{
		Codigo: "P011", Precio: decimal.NewFromInt(1), Cantidad: -3,
	})
	assert.ErrorContains(t, err, "cantidad")

	_, err = svc.Guardar(context.Background(), dto.GuardarProductoRequest{
		Codigo: "P011", Precio: decimal.NewFromInt(1), Estatus: "suspendido",
	})
	assert.ErrorContains(t, err, "estatus")

	_, err = svc.Guardar(context.Background(), dto.GuardarProductoRequest{
		Codigo: "   ", Precio: decimal.NewFromInt(1),
	})
	assert.ErrorContains(t, err, "codigo")
}

func TestBuscarProductos_TerminoVacio(t *testing.T) {
	svc := NewProductoService(newStubProductoRepo())
	seedProducto(t, svc, "P001", "Harina de maiz 1kg", 10, model.EstatusVigente)

	out, err := svc.Buscar(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = svc.Buscar(context.Background(), "harina")
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestAjustarStock(t *testing.T) {
	svc := NewProductoService(newStubProductoRepo())
	seedProducto(t, svc, "P001", "Harina de maiz 1kg", 10, model.EstatusVigente)

	resp, err := svc.AjustarStock(context.Background(), "P001", dto.AjustarStockRequest{Delta: -4})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Cantidad)

	// Never below zero — the adjustment is rejected whole
	_, err = svc.AjustarStock(context.Background(), "P001", dto.AjustarStockRequest{Delta: -7})
	assert.ErrorIs(t, err, repository.ErrStockInsuficiente)

	resp, err = svc.AjustarStock(context.Background(), "P001", dto.AjustarStockRequest{Delta: 7})
	require.NoError(t, err)
	assert.Equal(t, 13, resp.Cantidad)

	_, err = svc.AjustarStock(context.Background(), "NOEXISTE", dto.AjustarStockRequest{Delta: 1})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
