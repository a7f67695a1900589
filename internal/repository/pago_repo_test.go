package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Epaval/factura-con-api-facdin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func repoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Cliente{},
		&model.Producto{},
		&model.PagoFactura{},
		&model.PagoItem{},
		&model.Metadata{},
	))
	return db
}

func crearPago(t *testing.T, repo PagoRepository, numero string, fecha time.Time, tipos ...string) *model.PagoFactura {
	t.Helper()
	p := &model.PagoFactura{
		ID:            fmt.Sprintf("pago_%s_%d", numero, fecha.UnixMilli()),
		NumeroFactura: numero,
		Fecha:         fecha,
	}
	for _, tipo := range tipos {
		item := model.PagoItem{
			ID:            uuid.New(),
			PagoFacturaID: p.ID,
			Tipo:          tipo,
			Monto:         decimal.NewFromInt(50),
		}
		if model.RequiereReferencia(tipo) {
			ref := "1234"
			item.Referencia = &ref
		}
		p.Items = append(p.Items, item)
	}
	require.NoError(t, repo.Crear(context.Background(), p))
	return p
}

func TestPagoRepo_UltimoPorFactura(t *testing.T) {
	repo := NewPagoRepository(repoTestDB(t))
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	crearPago(t, repo, "F001", base, model.PagoEfectivo)
	ultimo := crearPago(t, repo, "F001", base.Add(5*time.Minute), model.PagoTarjeta)
	crearPago(t, repo, "F002", base.Add(10*time.Minute), model.PagoEfectivo)

	p, err := repo.UltimoPorFactura(context.Background(), "F001")
	require.NoError(t, err)
	assert.Equal(t, ultimo.ID, p.ID)
	require.Len(t, p.Items, 1)
	assert.Equal(t, model.PagoTarjeta, p.Items[0].Tipo)

	_, err = repo.UltimoPorFactura(context.Background(), "F404")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPagoRepo_ListarPorFecha(t *testing.T) {
	repo := NewPagoRepository(repoTestDB(t))

	crearPago(t, repo, "F001", time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), model.PagoEfectivo)
	crearPago(t, repo, "F002", time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), model.PagoMovil)
	crearPago(t, repo, "F003", time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC), model.PagoEfectivo)

	pagos, err := repo.ListarPorFecha(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.Len(t, pagos, 2)
	// Newest first, lines preloaded
	assert.Equal(t, "F002", pagos[0].NumeroFactura)
	assert.Equal(t, "F001", pagos[1].NumeroFactura)
	require.Len(t, pagos[0].Items, 1)
	require.NotNil(t, pagos[0].Items[0].Referencia)

	vacio, err := repo.ListarPorFecha(context.Background(), "2024-01-17")
	require.NoError(t, err)
	assert.Empty(t, vacio)
}

func TestPagoRepo_ListarPorFecha_VentaNocturna(t *testing.T) {
	repo := NewPagoRepository(repoTestDB(t))
	caracas := time.FixedZone("VET", -4*60*60)

	// 21:00 in Caracas is 01:00 UTC of the next day; the sale still belongs
	// to the day the cashier worked it.
	crearPago(t, repo, "F010", time.Date(2024, 1, 15, 21, 0, 0, 0, caracas), model.PagoEfectivo)

	pagos, err := repo.ListarPorFecha(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.Len(t, pagos, 1)
	assert.Equal(t, "F010", pagos[0].NumeroFactura)

	siguiente, err := repo.ListarPorFecha(context.Background(), "2024-01-16")
	require.NoError(t, err)
	assert.Empty(t, siguiente)
}

func TestPagoRepo_EliminarPorFactura(t *testing.T) {
	db := repoTestDB(t)
	repo := NewPagoRepository(db)
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	crearPago(t, repo, "F001", base, model.PagoEfectivo, model.PagoMovil)
	crearPago(t, repo, "F001", base.Add(time.Minute), model.PagoEfectivo)
	crearPago(t, repo, "F002", base, model.PagoEfectivo)

	n, err := repo.EliminarPorFactura(context.Background(), "F001")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// Child lines went with them — no orphans left behind
	var items int64
	require.NoError(t, db.Model(&model.PagoItem{}).Count(&items).Error)
	assert.EqualValues(t, 1, items)

	restante, err := repo.ListarPorFactura(context.Background(), "F002")
	require.NoError(t, err)
	assert.Len(t, restante, 1)

	n, err = repo.EliminarPorFactura(context.Background(), "F001")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
