package router

import (
	"time"

	"lotepos/internal/config"
	"lotepos/internal/handler"
	"lotepos/internal/infra"
	"lotepos/internal/middleware"
	"lotepos/internal/repository"
	"lotepos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New cablea todas las dependencias y devuelve el engine de Gin configurado.
// Grafo: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, ivaSvc service.IVAService) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Cadena global de middleware (el orden importa)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Infraestructura ──────────────────────────────────────────────────────
	// Sin SMTP configurado el arqueo cierra sin intentar enviar el resumen.
	var mailer service.Mailer
	if m := infra.NewMailer(cfg); m.Configured() {
		mailer = m
	}

	// ── Repositorios ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	arqueoRepo := repository.NewArqueoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)

	// ── Servicios ────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, loteRepo, rdb)
	loteSvc := service.NewLoteService(loteRepo, productoRepo)
	arqueoSvc := service.NewArqueoService(arqueoRepo, mailer)
	facturaSvc := service.NewFacturaService(facturaRepo, loteRepo, productoRepo, arqueoRepo, ivaSvc)
	clienteSvc := service.NewClienteService(clienteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	lotesH := handler.NewLotesHandler(loteSvc, cfg.UmbralAlertaDias)
	facturasH := handler.NewFacturasHandler(facturaSvc)
	arqueoH := handler.NewArqueoHandler(arqueoSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	ivaH := handler.NewIVAHandler(ivaSvc)

	// ── Rutas ────────────────────────────────────────────────────────────────

	// Públicas
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)
	// Consulta de precios sin auth: el verificador de góndola no loguea.
	r.GET("/v1/consulta-precios/:barcode", productosH.ConsultarPrecio)

	// Protegidas
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("cajero", "supervisor", "administrador")
	supervision := middleware.RequireRole("supervisor", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/facturas", todos, facturasH.Registrar)
		v1.GET("/facturas", todos, facturasH.Listar)
		v1.GET("/facturas/:id", todos, facturasH.Obtener)
		v1.POST("/facturas/:id/anular", supervision, facturasH.Anular)

		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		v1.GET("/productos/:id/lotes/activos", todos, lotesH.ListActivos)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		lotes := v1.Group("/lotes")
		{
			lotes.POST("/actualizar-precio", supervision, lotesH.ActualizarPrecio)
			lotes.POST("/recibir", supervision, lotesH.RecibirCompra)
			lotes.GET("/por-vencer", todos, lotesH.PorVencer)
		}

		arqueo := v1.Group("/arqueo")
		{
			arqueo.POST("", todos, arqueoH.Abrir)
			arqueo.GET("/resumen-diario", todos, arqueoH.ResumenDiario)
			arqueo.GET("/:id", todos, arqueoH.Obtener)
			arqueo.PUT("/:id", todos, arqueoH.Actualizar)
			arqueo.POST("/:id/cerrar", todos, arqueoH.Cerrar)
			arqueo.POST("/:id/anular", supervision, arqueoH.Anular)
		}

		clientes := v1.Group("/clientes", todos)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Desactivar)
		}

		v1.GET("/iva/tarifas", todos, ivaH.Tarifas)
		v1.POST("/iva/tarifas", admin, ivaH.Crear)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — solo fuera de producción
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
