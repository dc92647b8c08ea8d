package router

import (
	"github.com/tatanjbr/gestion-almuerzos/internal/config"
	"github.com/tatanjbr/gestion-almuerzos/internal/handler"
	"github.com/tatanjbr/gestion-almuerzos/internal/middleware"
	"github.com/tatanjbr/gestion-almuerzos/internal/repository"
	"github.com/tatanjbr/gestion-almuerzos/internal/service"
	"github.com/tatanjbr/gestion-almuerzos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, poller *worker.AlertaPoller) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	stockRepo := repository.NewStockRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	recordatorioRepo := repository.NewRecordatorioRepository(db)
	notaRepo := repository.NewNotaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(cfg)
	productoSvc := service.NewProductoService(productoRepo, rdb)
	stockSvc := service.NewStockService(stockRepo, productoRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, stockRepo, clienteRepo, pagoRepo, recordatorioRepo)
	notaSvc := service.NewNotaService(notaRepo)
	resumenSvc := service.NewResumenService(pedidoRepo, stockSvc, notaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	stockH := handler.NewStockHandler(stockSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	alertasH := handler.NewAlertasHandler(poller)
	notasH := handler.NewNotasHandler(notaSvc)
	resumenH := handler.NewResumenHandler(resumenSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes — single operator, no roles
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		pedidos := v1.Group("/pedidos")
		{
			pedidos.POST("/disponibilidad", pedidosH.Disponibilidad)
			pedidos.POST("", pedidosH.Crear)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.Detalle)
			pedidos.PATCH("/:id/estado", pedidosH.CambiarEstado)
			pedidos.PATCH("/:id/total", pedidosH.EditarTotal)
			pedidos.POST("/:id/pago", pedidosH.RegistrarPago)
			pedidos.DELETE("/:id", pedidosH.Eliminar)
		}

		productos := v1.Group("/productos")
		{
			productos.GET("", productosH.Listar)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.POST("", productosH.Crear)
			productos.PUT("/:id", productosH.Actualizar)
			productos.PATCH("/:id/desactivar", productosH.Desactivar)
			productos.PATCH("/:id/reactivar", productosH.Reactivar)
			productos.DELETE("/:id", productosH.Eliminar)
		}

		stock := v1.Group("/stock")
		{
			stock.GET("", stockH.Listar)
			stock.PUT("/:producto_id", stockH.Iniciar)
			stock.PATCH("/:producto_id/disponible", stockH.Toggle)
			stock.PATCH("/:producto_id/cantidad", stockH.Ajustar)
		}

		alertas := v1.Group("/alertas")
		{
			alertas.GET("/actual", alertasH.Actual)
			alertas.POST("/:id/atender", alertasH.Atender)
		}

		notas := v1.Group("/notas")
		{
			notas.POST("", notasH.Crear)
			notas.GET("", notasH.Listar)
			notas.PATCH("/:id/resolver", notasH.Resolver)
			notas.PATCH("/:id/reabrir", notasH.Reabrir)
			notas.DELETE("/:id", notasH.Eliminar)
		}

		v1.GET("/clientes", pedidosH.Clientes)
		v1.GET("/resumen", resumenH.Resumen)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
