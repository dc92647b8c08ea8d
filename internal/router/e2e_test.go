//go:build integration

package router_test

// Pruebas de punta a punta contra Postgres y Redis reales vía
// testcontainers. Correr con: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tatanjbr/gestion-almuerzos/internal/config"
	"github.com/tatanjbr/gestion-almuerzos/internal/infra"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"
	"github.com/tatanjbr/gestion-almuerzos/internal/router"
	"github.com/tatanjbr/gestion-almuerzos/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Setup ────────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("almuerzos_test"),
		tcPostgres.WithUsername("almuerzos"),
		tcPostgres.WithPassword("almuerzos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("almuerzos2026"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                 8000,
		Env:                  "test",
		DatabaseURL:          pgURL,
		RedisURL:             rdURL,
		JWTSecret:            "test-secret-key",
		JWTExpirationHours:   1,
		OperadorUsuario:      "operador",
		OperadorPasswordHash: string(hash),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	poller := worker.NewAlertaPoller(repository.NewRecordatorioRepository(db), rdb)

	srv := httptest.NewServer(router.New(cfg, db, rdb, poller))
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"usuario": "operador", "password": "almuerzos2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &login)
	require.NotEmpty(t, login.AccessToken)

	return &testEnv{server: srv, token: login.AccessToken}
}

func crearProducto(t *testing.T, env *testEnv, nombre string, precio float64, cantidadInicial float64) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":      nombre,
			"precio":      precio,
			"tipo_medida": "unidad",
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)

	stockResp := do(t, env.server, "PUT", "/v1/stock/"+prod.ID,
		jsonBody(t, map[string]any{"cantidad": cantidadInicial}), env.token)
	require.Equal(t, http.StatusOK, stockResp.StatusCode)
	stockResp.Body.Close()

	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Ciclo completo: menú → stock → disponibilidad → pedido → pago → resumen.
func TestE2E_CicloCompletoDePedido(t *testing.T) {
	env := setupTestEnv(t)
	prodID := crearProducto(t, env, "Pechuga", 14000, 5)

	// Disponibilidad en vivo del borrador
	dispResp := do(t, env.server, "POST", "/v1/pedidos/disponibilidad",
		jsonBody(t, map[string]any{
			"items": []map[string]any{{"producto_id": prodID, "cantidad": 2}},
		}), env.token)
	require.Equal(t, http.StatusOK, dispResp.StatusCode)
	var disp struct {
		Items []struct {
			Disponible *string `json:"disponible"`
			Suficiente bool    `json:"suficiente"`
		} `json:"items"`
		TotalFinal string `json:"total_final"`
	}
	decodeJSON(t, dispResp, &disp)
	require.Len(t, disp.Items, 1)
	assert.True(t, disp.Items[0].Suficiente)
	assert.Equal(t, "28000", disp.TotalFinal)

	// Commit del pedido
	pedidoResp := do(t, env.server, "POST", "/v1/pedidos",
		jsonBody(t, map[string]any{
			"cliente":      "Portal D4",
			"tipo_entrega": "domicilio",
			"items":        []map[string]any{{"producto_id": prodID, "cantidad": 2}},
		}), env.token)
	require.Equal(t, http.StatusCreated, pedidoResp.StatusCode)
	var pedido struct {
		ID          string `json:"id"`
		Estado      string `json:"estado"`
		EstadoVista string `json:"estado_vista"`
		Total       string `json:"total"`
	}
	decodeJSON(t, pedidoResp, &pedido)
	assert.Equal(t, "en_proceso", pedido.Estado)
	assert.Equal(t, "preparando", pedido.EstadoVista)
	assert.Equal(t, "28000", pedido.Total)

	// El stock quedó descontado
	stockResp := do(t, env.server, "GET", "/v1/stock", nil, env.token)
	require.Equal(t, http.StatusOK, stockResp.StatusCode)
	var stock []struct {
		ProductoID         string `json:"producto_id"`
		CantidadDisponible string `json:"cantidad_disponible"`
	}
	decodeJSON(t, stockResp, &stock)
	require.Len(t, stock, 1)
	assert.Equal(t, "3", stock[0].CantidadDisponible)

	// Despachar y cobrar
	estadoResp := do(t, env.server, "PATCH", "/v1/pedidos/"+pedido.ID+"/estado",
		jsonBody(t, map[string]any{"estado": "despachado"}), env.token)
	require.Equal(t, http.StatusOK, estadoResp.StatusCode)
	estadoResp.Body.Close()

	pagoResp := do(t, env.server, "POST", "/v1/pedidos/"+pedido.ID+"/pago",
		jsonBody(t, map[string]any{"metodo": "nequi"}), env.token)
	require.Equal(t, http.StatusOK, pagoResp.StatusCode)
	var pagado struct {
		EstadoVista string `json:"estado_vista"`
		Pago        *struct {
			Monto  string `json:"monto"`
			Metodo string `json:"metodo"`
		} `json:"pago"`
	}
	decodeJSON(t, pagoResp, &pagado)
	assert.Equal(t, "completado", pagado.EstadoVista)
	require.NotNil(t, pagado.Pago)
	assert.Equal(t, "28000", pagado.Pago.Monto)

	// Resumen del día
	resumenResp := do(t, env.server, "GET", "/v1/resumen", nil, env.token)
	require.Equal(t, http.StatusOK, resumenResp.StatusCode)
	var resumen struct {
		TotalVentas  string         `json:"total_ventas"`
		TotalCobrado string         `json:"total_cobrado"`
		Pendiente    string         `json:"pendiente"`
		PorEstado    map[string]int `json:"pedidos_por_estado"`
	}
	decodeJSON(t, resumenResp, &resumen)
	assert.Equal(t, "28000", resumen.TotalVentas)
	assert.Equal(t, "28000", resumen.TotalCobrado)
	assert.Equal(t, "0", resumen.Pendiente)
	assert.Equal(t, 1, resumen.PorEstado["completado"])
}

// El commit rechaza un pedido que pide más de lo disponible, sin escribir
// nada.
func TestE2E_OversellRechazado(t *testing.T) {
	env := setupTestEnv(t)
	prodID := crearProducto(t, env, "Pechuga", 14000, 5)

	resp := do(t, env.server, "POST", "/v1/pedidos",
		jsonBody(t, map[string]any{
			"cliente": "Casa I1",
			"items":   []map[string]any{{"producto_id": prodID, "cantidad": 6}},
		}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// El stock sigue intacto y la lista del día vacía
	stockResp := do(t, env.server, "GET", "/v1/stock", nil, env.token)
	var stock []struct {
		CantidadDisponible string `json:"cantidad_disponible"`
	}
	decodeJSON(t, stockResp, &stock)
	require.Len(t, stock, 1)
	assert.Equal(t, "5", stock[0].CantidadDisponible)

	listResp := do(t, env.server, "GET", "/v1/pedidos", nil, env.token)
	var pedidos []any
	decodeJSON(t, listResp, &pedidos)
	assert.Empty(t, pedidos)
}

// Producto sin stock iniciado: ilimitado para efectos de pedidos.
func TestE2E_ProductoSinStockIniciado(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":      "Arroz",
			"precio":      3000,
			"tipo_medida": "unidad",
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)

	pedidoResp := do(t, env.server, "POST", "/v1/pedidos",
		jsonBody(t, map[string]any{
			"cliente": "Oficina 2",
			"items":   []map[string]any{{"producto_id": prod.ID, "cantidad": 30}},
		}), env.token)
	require.Equal(t, http.StatusCreated, pedidoResp.StatusCode)
	var pedido struct {
		Total string `json:"total"`
	}
	decodeJSON(t, pedidoResp, &pedido)
	assert.Equal(t, "90000", pedido.Total)
}

// Apagar un producto lo bloquea para pedidos aunque tenga cantidad.
func TestE2E_ProductoApagado(t *testing.T) {
	env := setupTestEnv(t)
	prodID := crearProducto(t, env, "Costilla", 12000, 3)

	toggleResp := do(t, env.server, "PATCH", "/v1/stock/"+prodID+"/disponible", jsonBody(t, map[string]any{}), env.token)
	require.Equal(t, http.StatusOK, toggleResp.StatusCode)
	toggleResp.Body.Close()

	resp := do(t, env.server, "POST", "/v1/pedidos",
		jsonBody(t, map[string]any{
			"cliente": "Portal D4",
			"items":   []map[string]any{{"producto_id": prodID, "cantidad": 1}},
		}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

// Las rutas protegidas exigen token.
func TestE2E_RutasProtegidas(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/v1/pedidos", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	badLogin := do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"usuario": "operador", "password": "incorrecta"}), "")
	assert.Equal(t, http.StatusUnauthorized, badLogin.StatusCode)
	badLogin.Body.Close()
}
