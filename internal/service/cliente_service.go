package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Epaval/factura-con-api-facdin/internal/dto"
	"github.com/Epaval/factura-con-api-facdin/internal/model"
	"github.com/Epaval/factura-con-api-facdin/internal/repository"

	"gorm.io/gorm"
)

// ClienteService exposes the cached-client operations the POS forms use.
// Lookups signal absence with a nil result, never an error — a missing client
// just means the cashier types the data in by hand.
type ClienteService interface {
	// BuscarPorIdentificacion normalizes the identifier (uppercase, trim),
	// classifies it as CI (prefix V/E) or RIF (everything else) and returns
	// the exact match, or nil when none exists.
	BuscarPorIdentificacion(ctx context.Context, identificacion string) (*dto.ClienteResponse, error)
	// Buscar matches termino case-insensitively against ci, rif and nombre.
	// Terms shorter than 2 characters return an empty slice without touching
	// the store.
	Buscar(ctx context.Context, termino string) ([]dto.ClienteResponse, error)
	Guardar(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id string) error
	ListarTodos(ctx context.Context) ([]dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

// esCI classifies a normalized identifier: cédulas carry prefix V or E, every
// other prefix (J, G, pasaportes, …) is treated as a RIF-like value. The
// permissiveness is deliberate — unknown prefixes are stored, not rejected.
func esCI(identificacion string) bool {
	return strings.HasPrefix(identificacion, "V") || strings.HasPrefix(identificacion, "E")
}

func normalizarIdentificacion(identificacion string) string {
	return strings.ToUpper(strings.TrimSpace(identificacion))
}

func mapCliente(c model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID,
		CI:        c.CI,
		RIF:       c.RIF,
		Nombre:    c.Nombre,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
	}
}

func (s *clienteService) BuscarPorIdentificacion(ctx context.Context, identificacion string) (*dto.ClienteResponse, error) {
	id := normalizarIdentificacion(identificacion)
	if id == "" {
		return nil, nil
	}

	var (
		c   *model.Cliente
		err error
	)
	if esCI(id) {
		c, err = s.repo.BuscarPorCI(ctx, id)
	} else {
		c, err = s.repo.BuscarPorRIF(ctx, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapCliente(*c)
	return &resp, nil
}

func (s *clienteService) Buscar(ctx context.Context, termino string) ([]dto.ClienteResponse, error) {
	termino = strings.TrimSpace(termino)
	if len(termino) < 2 {
		return []dto.ClienteResponse{}, nil
	}

	clientes, err := s.repo.Buscar(ctx, termino)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		result = append(result, mapCliente(c))
	}
	return result, nil
}

func (s *clienteService) Guardar(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	id := normalizarIdentificacion(req.Identificacion)
	if id == "" {
		return nil, errors.New("identificacion requerida")
	}
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, errors.New("nombre requerido")
	}

	// Exactly one of ci/rif is set; id equals whichever it is. Re-saving an
	// already-normalized client is a no-op (normalization is idempotent).
	c := &model.Cliente{
		ID:        id,
		Nombre:    nombre,
		Telefono:  strings.TrimSpace(req.Telefono),
		Direccion: strings.TrimSpace(req.Direccion),
	}
	if esCI(id) {
		c.CI = &id
	} else {
		c.RIF = &id
	}

	if err := s.repo.Guardar(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCliente(*c)
	return &resp, nil
}

func (s *clienteService) Eliminar(ctx context.Context, id string) error {
	return s.repo.Eliminar(ctx, normalizarIdentificacion(id))
}

func (s *clienteService) ListarTodos(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.ListarTodos(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		result = append(result, mapCliente(c))
	}
	return result, nil
}
