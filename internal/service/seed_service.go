package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Epaval/factura-con-api-facdin/internal/model"
	"github.com/Epaval/factura-con-api-facdin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedService populates the local cache with demo clients and products on
// first run. The seed and its "completed" marker are committed in one
// transaction against the same database, so the flag can never diverge from
// the data it describes. Re-seeding is an explicit operation (cmd/seed), not
// a source-edit flag.
type SeedService struct {
	db *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService { return &SeedService{db: db} }

// SeedInicial seeds once. Returns true when data was inserted, false when a
// previous run already completed the seed.
func (s *SeedService) SeedInicial(ctx context.Context) (bool, error) {
	sembrado := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meta := repository.NewMetadataRepository(tx)
		_, err := meta.Obtener(ctx, model.MetaSeedCompletado)
		if err == nil {
			return nil // already seeded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := insertarDatosDemo(tx); err != nil {
			return err
		}
		sembrado = true
		return meta.Guardar(ctx, model.MetaSeedCompletado, "true")
	})
	return sembrado, err
}

// Reseed wipes clientes and productos and seeds them again. Payment records
// are left untouched — they reference real remote invoices.
func (s *SeedService) Reseed(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Cliente{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Producto{}).Error; err != nil {
			return err
		}
		if err := insertarDatosDemo(tx); err != nil {
			return err
		}
		return repository.NewMetadataRepository(tx).Guardar(ctx, model.MetaSeedCompletado, "true")
	})
}

func insertarDatosDemo(tx *gorm.DB) error {
	type semillaCliente struct {
		ci, rif, nombre, telefono, direccion string
	}
	clientes := []semillaCliente{
		{ci: "V12345678", nombre: "Juan Pérez", telefono: "0412-1234567", direccion: "Av. Principal, Caracas"},
		{ci: "V23456789", nombre: "María González", telefono: "0414-2345678", direccion: "Calle 5, Maracaibo"},
		{rif: "J-12345678-9", nombre: "Comercio XYZ C.A.", telefono: "0212-3456789", direccion: "Zona Industrial, Valencia"},
		{ci: "E87654321", nombre: "Carlos López", telefono: "0424-8765432", direccion: "Urb. El Rosal, Caracas"},
		{rif: "G-23456789-0", nombre: "Distribuidora Andina Ltda.", telefono: "0274-5551234", direccion: "Mérida"},
		{ci: "V34567890", nombre: "Ana Martínez", telefono: "0416-3456789", direccion: "Barquisimeto"},
		{ci: "V45678901", nombre: "Luis Rodríguez", telefono: "0426-4567890", direccion: "San Cristóbal"},
		{rif: "J-34567890-1", nombre: "Tech Solutions C.A.", telefono: "0212-9876543", direccion: "Chacao, Caracas"},
		{ci: "V56789012", nombre: "Sofía Ramírez", telefono: "0412-5678901", direccion: "Los Teques"},
		{ci: "V67890123", nombre: "Diego Fernández", telefono: "0414-6789012", direccion: "Guarenas"},
		{rif: "J-45678901-2", nombre: "Importadora Global C.A.", telefono: "0234-2223333", direccion: "Puerto Ordaz"},
		{ci: "E11223344", nombre: "Laura Torres", telefono: "0424-1122334", direccion: "Maturín"},
		{ci: "V78901234", nombre: "Andrés Silva", telefono: "0416-7890123", direccion: "Cumaná"},
		{rif: "G-56789012-3", nombre: "Agricultores Unidos C.A.", telefono: "0275-7778888", direccion: "San Fernando de Apure"},
		{ci: "V89012345", nombre: "Camila Herrera", telefono: "0412-8901234", direccion: "Petare, Caracas"},
	}

	for _, c := range clientes {
		cliente := model.Cliente{
			Nombre:    c.nombre,
			Telefono:  c.telefono,
			Direccion: c.direccion,
		}
		if c.ci != "" {
			ci := c.ci
			cliente.ID = ci
			cliente.CI = &ci
		} else {
			rif := c.rif
			cliente.ID = rif
			cliente.RIF = &rif
		}
		if err := tx.Save(&cliente).Error; err != nil {
			return err
		}
	}

	descripciones := []string{
		"Arroz Premium 1kg", "Pasta Tricolor 500g", "Aceite Vegetal 900ml",
		"Azúcar Morena 1kg", "Harina de Trigo 1kg", "Leche Entera 1L",
		"Atún en Lata 185g", "Sardinas en Aceite 150g", "Café Molido 250g",
		"Galletas Rellenas 200g", "Jabón de Tocador 90g", "Detergente Líquido 1L",
		"Shampoo AntiCaspa 400ml", "Papel Higiénico 4 rollos", "Agua Mineral 1.5L",
		"Gaseosa Cola 2L", "Cerveza Premium 355ml", "Ron Añejo 750ml",
		"Pan Blanco por unidad", "Queso Guayanés 500g", "Mantequilla 250g",
		"Huevos por docena", "Pollo Entero 2kg", "Carne Molida 1kg",
		"Pescado Entero 1.5kg", "Tomate por kg", "Cebolla por kg",
		"Papa Blanca 1kg", "Plátano Maduro 1kg", "Manzana Roja 1kg",
		"Naranja de Mesa 1kg", "Banano 1kg", "Lechuga 1 unidad",
		"Zanahoria 1kg", "Ajo por cabeza", "Cilantro por manojo",
		"Detergente en Polvo 1kg", "Suavizante 1L", "Cloro 1L",
		"Esponja de Acero", "Bolsas de Basura 30 unidades", "Fósforos Caja",
		"Velas Blancas 10 unidades", "Pilas AA 4 unidades", "Linternas LED",
		"Cepillo Dental", "Pasta Dental 100g", "Desodorante Roll-On 100ml",
		"Crema Hidratante 200ml", "Protector Solar FPS 50",
	}

	for i, descripcion := range descripciones {
		codigo := fmt.Sprintf("%03d", i+1)
		// Deterministic spread: prices between 10 and 499, stock 1-100,
		// roughly one in four products blocked.
		precio := decimal.NewFromInt(int64(10 + (i*83)%490))
		cantidad := 1 + (i*13)%100
		estatus := model.EstatusVigente
		if i%4 == 3 {
			estatus = model.EstatusBloqueado
		}
		producto := model.Producto{
			ID:          codigo,
			Codigo:      codigo,
			Descripcion: descripcion,
			Precio:      precio,
			Cantidad:    cantidad,
			Estatus:     estatus,
		}
		if err := tx.Save(&producto).Error; err != nil {
			return err
		}
	}

	return nil
}
