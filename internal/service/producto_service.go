package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/model"
	"github.com/Epaval/factura-con-api-facdin/internal/repository"
)

// ProductoService exposes the cached-product operations. Unlike the store,
// the service does validate: negative prices or stock and unknown estatus
// values are rejected here, before anything is persisted.
type ProductoService interface {
	// Listar returns all products, or only vigentes when soloVigentes is set
	// (blocked products are never offered during invoice entry).
	Listar(ctx context.Context, soloVigentes bool) ([]dto.ProductoResponse, error)
	// Buscar matches termino case-insensitively against codigo and
	// descripcion. Display caps are the caller's concern.
	Buscar(ctx context.Context, termino string) ([]dto.ProductoResponse, error)
	Guardar(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id string) error
	// AjustarStock applies a stock delta atomically inside the store.
	AjustarStock(ctx context.Context, id string, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func mapProducto(p model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID,
		Codigo:      p.Codigo,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Cantidad:    p.Cantidad,
		Estatus:     p.Estatus,
	}
}

func (s *productoService) Listar(ctx context.Context, soloVigentes bool) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.Listar(ctx, soloVigentes)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		result = append(result, mapProducto(p))
	}
	return result, nil
}

func (s *productoService) Buscar(ctx context.Context, termino string) ([]dto.ProductoResponse, error) {
	termino = strings.TrimSpace(termino)
	if termino == "" {
		return []dto.ProductoResponse{}, nil
	}
	productos, err := s.repo.Buscar(ctx, termino)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		result = append(result, mapProducto(p))
	}
	return result, nil
}

func (s *productoService) Guardar(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	codigo := strings.TrimSpace(req.Codigo)
	if codigo == "" {
		return nil, errors.New("codigo requerido")
	}
	if req.Precio.IsNegative() {
		return nil, errors.New("el precio no puede ser negativo")
	}
	if req.Cantidad < 0 {
		return nil, errors.New("la cantidad no puede ser negativa")
	}
	estatus := req.Estatus
	if estatus == "" {
		estatus = model.EstatusVigente
	}
	if estatus != model.EstatusVigente && estatus != model.EstatusBloqueado {
		return nil, errors.New("estatus invalido")
	}

	p := &model.Producto{
		ID:          codigo,
		Codigo:      codigo,
		Descripcion: strings.TrimSpace(req.Descripcion),
		Precio:      req.Precio,
		Cantidad:    req.Cantidad,
		Estatus:     estatus,
	}
	if err := s.repo.Guardar(ctx, p); err != nil {
		return nil, err
	}
	resp := mapProducto(*p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id string) error {
	return s.repo.Eliminar(ctx, id)
}

func (s *productoService) AjustarStock(ctx context.Context, id string, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.AjustarStock(ctx, id, req.Delta)
	if err != nil {
		return nil, err
	}
	resp := mapProducto(*p)
	return &resp, nil
}
