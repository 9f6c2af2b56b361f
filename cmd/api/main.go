package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/catalog-store/internal/application/auth"
	"github.com/jhoicas/catalog-store/internal/application/catalog"
	"github.com/jhoicas/catalog-store/internal/application/checkout"
	"github.com/jhoicas/catalog-store/internal/application/storefront"
	"github.com/jhoicas/catalog-store/internal/bootstrap"
	"github.com/jhoicas/catalog-store/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/catalog-store/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/catalog-store/internal/interfaces/http"
	"github.com/jhoicas/catalog-store/pkg/config"
	"github.com/jhoicas/catalog-store/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	cat, err := bootstrap.OpenCatalog(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo")
	}
	defer cat.Close()

	sessions, closeSessions, err := bootstrap.OpenSessions(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de sesiones")
	}
	defer closeSessions()

	imageUC, err := bootstrap.NewImageUseCase(ctx, cfg, cat, log.Component("category_images"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}
	if imageUC == nil {
		log.Warn().Msg("MINIO_ENDPOINT vacío: descarga de imágenes deshabilitada")
	}

	importUC := catalog.NewImportUseCase(cat.Categories, cat.Products, cat.TxRunner, log.Component("catalog_import"))
	storefrontUC := storefront.NewUseCase(cat.Categories, cat.Products, log.Component("storefront"))
	cartUC := checkout.NewCartUseCase(sessions, cat.Products)
	checkoutUC := checkout.NewCheckoutUseCase(
		sessions, cartUC,
		notify.NewLogOrderNotifier(log.Component("orders")),
		infrapdf.NewMarotoOrderPDFGenerator(cfg.App.Name),
		log.Component("checkout"),
	)

	if cfg.JWT.Secret == "" || cfg.Admin.PasswordHash == "" {
		log.Warn().Msg("JWT_SECRET o ADMIN_PASSWORD_HASH vacío: administración deshabilitada")
	}
	authUC := auth.NewAuthUseCase(
		auth.Operator{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catalog Store API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		StorefrontUC: storefrontUC,
		CartUC:       cartUC,
		CheckoutUC:   checkoutUC,
		AuthUC:       authUC,
		ImportUC:     importUC,
		ImageUC:      imageUC,
		CatalogFile:  cfg.Catalog.File,
		JWTSecret:    cfg.JWT.Secret,
		Session: httpRouter.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.Secure,
		},
		Logger: log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
