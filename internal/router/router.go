package router

import (
	"time"

	"github.com/Epaval/factura-con-api-facdin/internal/config"
	"github.com/Epaval/factura-con-api-facdin/internal/handler"
	"github.com/Epaval/factura-con-api-facdin/internal/infra"
	"github.com/Epaval/factura-con-api-facdin/internal/middleware"
	"github.com/Epaval/factura-con-api-facdin/internal/repository"
	"github.com/Epaval/factura-con-api-facdin/internal/service"
	"github.com/Epaval/factura-con-api-facdin/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis,
// plus a shared FacdinClient for the remote-proxied routes.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, api *infra.FacdinClient, dispatcher *worker.Dispatcher) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	pagoRepo := repository.NewPagoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	clienteSvc := service.NewClienteService(clienteRepo)
	productoSvc := service.NewProductoService(productoRepo)
	pagoSvc := service.NewPagoService(pagoRepo)
	reporteSvc := service.NewReporteService(pagoRepo, dispatcher, cfg.PDFStoragePath, cfg.NombreComercio)

	// ── Handlers ─────────────────────────────────────────────────────────────
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	authH := handler.NewAuthHandler(api)
	facturasH := handler.NewFacturasHandler(api)
	cajaH := handler.NewCajaHandler(api)
	notasH := handler.NewNotasHandler(api)
	healthH := handler.NewHealthHandler(db, rdb, api)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)

	// Auth — proxied to the remote FACDIN API (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.GET("/primero-existe", authH.PrimerAdminExiste)
		auth.POST("/registrar-primer-admin", authH.RegistrarPrimerAdmin)
		auth.POST("/registrar", middleware.RequireToken(), authH.RegistrarUsuario)
	}

	// Local store — usable offline, no remote token required
	clientes := r.Group("/v1/clientes")
	{
		clientes.GET("", clientesH.Listar)
		clientes.GET("/buscar", clientesH.Buscar)
		clientes.GET("/identificacion/:identificacion", clientesH.ObtenerPorIdentificacion)
		clientes.PUT("", clientesH.Guardar)
		clientes.DELETE("/:id", clientesH.Eliminar)
	}

	productos := r.Group("/v1/productos")
	{
		productos.GET("", productosH.Listar)
		productos.GET("/buscar", productosH.Buscar)
		productos.PUT("", productosH.Guardar)
		productos.DELETE("/:id", productosH.Eliminar)
		productos.PATCH("/:id/stock", productosH.AjustarStock)
	}

	pagos := r.Group("/v1/pagos")
	{
		pagos.POST("", pagosH.Registrar)
		pagos.GET("/factura/:numero", pagosH.ObtenerPorFactura)
		pagos.GET("/factura/:numero/todos", pagosH.ListarPorFactura)
		// Reversals need a supervisor PIN — mirrors the caja override flow.
		pagos.DELETE("/factura/:numero", middleware.SupervisorPin(cfg.SupervisorPinHash), pagosH.EliminarPorFactura)
	}

	reportes := r.Group("/v1/reportes")
	{
		reportes.GET("/diario", reportesH.Diario)
		reportes.GET("/diario/pdf", reportesH.DiarioPDF)
		reportes.POST("/diario/enviar", reportesH.Enviar)
	}

	// Remote-proxied routes — require the bearer token issued by FACDIN
	tokenMW := middleware.RequireToken()
	facturas := r.Group("/v1/facturas", tokenMW)
	{
		facturas.POST("", facturasH.Insertar)
		facturas.GET("/recientes", facturasH.Recientes)
		facturas.GET("/detalle/:id", facturasH.Detalle)
		facturas.GET("/numero/:numero", facturasH.VerificarPorNumero)
		facturas.GET("/estadisticas", facturasH.Estadisticas)
	}

	caja := r.Group("/v1/caja", tokenMW)
	{
		caja.POST("/abrir", cajaH.Abrir)
		caja.POST("/cerrar", cajaH.Cerrar)
	}

	r.POST("/v1/notas", tokenMW, notasH.Crear)

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
