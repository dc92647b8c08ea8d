package service

import (
	"context"
	"testing"
	"time"

	"github.com/tatanjbr/gestion-almuerzos/internal/dto"
	"github.com/tatanjbr/gestion-almuerzos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockFixture(productos []*model.Producto, rows []*model.StockDiario) (*stockService, *stubStockRepo) {
	stockRepo := newStubStockRepo(rows...)
	svc := NewStockService(stockRepo, newStubProductoRepo(productos...)).(*stockService)
	svc.ahora = func() time.Time { return ahoraFija }
	return svc, stockRepo
}

func pasos(n int) dto.AjustarCantidadRequest   { return dto.AjustarCantidadRequest{Pasos: &n} }
func absoluta(v float64) dto.AjustarCantidadRequest {
	d := decimal.NewFromFloat(v)
	return dto.AjustarCantidadRequest{Cantidad: &d}
}

func TestIniciarStock(t *testing.T) {
	pollo := productoUnidad("Pechuga", 14000)
	svc, _ := newStockFixture([]*model.Producto{pollo}, nil)

	resp, err := svc.IniciarStock(context.Background(), pollo.ID, "", dto.IniciarStockRequest{Cantidad: decimal.NewFromInt(8)})
	require.NoError(t, err)
	assert.Equal(t, "8", resp.CantidadInicial.String())
	assert.Equal(t, "8", resp.CantidadDisponible.String())
	assert.True(t, resp.Disponible)
	assert.Equal(t, fechaDe(ahoraFija), resp.Fecha)

	t.Run("reiniciar pisa lo vendido", func(t *testing.T) {
		resp, err := svc.IniciarStock(context.Background(), pollo.ID, "", dto.IniciarStockRequest{Cantidad: decimal.NewFromInt(12)})
		require.NoError(t, err)
		assert.Equal(t, "12", resp.CantidadDisponible.String())
	})

	t.Run("rechaza cantidad negativa", func(t *testing.T) {
		_, err := svc.IniciarStock(context.Background(), pollo.ID, "", dto.IniciarStockRequest{Cantidad: decimal.NewFromInt(-1)})
		require.Error(t, err)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		otro := productoUnidad("Fantasma", 1000)
		_, err := svc.IniciarStock(context.Background(), otro.ID, "", dto.IniciarStockRequest{Cantidad: decimal.NewFromInt(5)})
		require.Error(t, err)
	})
}

func TestToggleDisponible(t *testing.T) {
	pollo := productoUnidad("Pechuga", 14000)
	svc, _ := newStockFixture([]*model.Producto{pollo}, nil)

	// Sin registro el defecto es disponible: el primer toque apaga.
	resp, err := svc.ToggleDisponible(context.Background(), pollo.ID, "")
	require.NoError(t, err)
	assert.False(t, resp.Disponible)

	resp, err = svc.ToggleDisponible(context.Background(), pollo.ID, "")
	require.NoError(t, err)
	assert.True(t, resp.Disponible)
}

func TestToggleDisponibleConservaCantidades(t *testing.T) {
	pollo := productoUnidad("Pechuga", 14000)
	svc, _ := newStockFixture([]*model.Producto{pollo}, []*model.StockDiario{stockHoy(pollo, 10, 4)})

	resp, err := svc.ToggleDisponible(context.Background(), pollo.ID, "")
	require.NoError(t, err)
	assert.False(t, resp.Disponible)
	assert.Equal(t, "10", resp.CantidadInicial.String())
	assert.Equal(t, "4", resp.CantidadDisponible.String())
}

func TestAjustarCantidad(t *testing.T) {
	pollo := productoUnidad("Pechuga", 14000)
	costilla := productoPeso("Costilla")

	t.Run("pasos de unidad", func(t *testing.T) {
		svc, _ := newStockFixture([]*model.Producto{pollo}, []*model.StockDiario{stockHoy(pollo, 10, 4)})
		resp, err := svc.AjustarCantidad(context.Background(), pollo.ID, "", pasos(2))
		require.NoError(t, err)
		assert.Equal(t, "6", resp.CantidadDisponible.String())

		resp, err = svc.AjustarCantidad(context.Background(), pollo.ID, "", pasos(-1))
		require.NoError(t, err)
		assert.Equal(t, "5", resp.CantidadDisponible.String())
	})

	t.Run("pasos de medio kilo", func(t *testing.T) {
		svc, _ := newStockFixture([]*model.Producto{costilla}, []*model.StockDiario{stockHoy(costilla, 3, 2)})
		resp, err := svc.AjustarCantidad(context.Background(), costilla.ID, "", pasos(-1))
		require.NoError(t, err)
		assert.Equal(t, "1.5", resp.CantidadDisponible.String())
	})

	t.Run("valor absoluto", func(t *testing.T) {
		svc, _ := newStockFixture([]*model.Producto{pollo}, []*model.StockDiario{stockHoy(pollo, 10, 4)})
		resp, err := svc.AjustarCantidad(context.Background(), pollo.ID, "", absoluta(7))
		require.NoError(t, err)
		assert.Equal(t, "7", resp.CantidadDisponible.String())
	})

	t.Run("no baja de cero", func(t *testing.T) {
		svc, _ := newStockFixture([]*model.Producto{pollo}, []*model.StockDiario{stockHoy(pollo, 10, 1)})
		resp, err := svc.AjustarCantidad(context.Background(), pollo.ID, "", pasos(-5))
		require.NoError(t, err)
		assert.True(t, resp.CantidadDisponible.IsZero())
	})

	t.Run("exige exactamente un modo", func(t *testing.T) {
		svc, _ := newStockFixture([]*model.Producto{pollo}, []*model.StockDiario{stockHoy(pollo, 10, 4)})
		_, err := svc.AjustarCantidad(context.Background(), pollo.ID, "", dto.AjustarCantidadRequest{})
		require.Error(t, err)

		n := 1
		d := decimal.NewFromInt(3)
		_, err = svc.AjustarCantidad(context.Background(), pollo.ID, "", dto.AjustarCantidadRequest{Pasos: &n, Cantidad: &d})
		require.Error(t, err)
	})

	t.Run("sin stock iniciado", func(t *testing.T) {
		svc, _ := newStockFixture([]*model.Producto{pollo}, nil)
		_, err := svc.AjustarCantidad(context.Background(), pollo.ID, "", pasos(1))
		require.ErrorContains(t, err, "no tiene stock iniciado")
	})
}

func TestListarStockFilasVirtuales(t *testing.T) {
	pollo := productoUnidad("Pechuga", 14000)
	arroz := productoUnidad("Arroz", 3000)
	svc, _ := newStockFixture([]*model.Producto{pollo, arroz}, []*model.StockDiario{stockHoy(pollo, 10, 4)})

	out, err := svc.ListarStock(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 2)

	porNombre := make(map[string]dto.StockResponse, len(out))
	for _, r := range out {
		porNombre[r.Producto] = r
	}

	conRegistro := porNombre["Pechuga"]
	assert.Equal(t, "4", conRegistro.CantidadDisponible.String())
	assert.True(t, conRegistro.Disponible)

	virtual := porNombre["Arroz"]
	assert.True(t, virtual.CantidadInicial.IsZero())
	assert.True(t, virtual.Disponible)
	assert.Equal(t, fechaDe(ahoraFija), virtual.Fecha)
}
