package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/ecommerce-api/config"
	apimod "github.com/example/ecommerce-api/modules/api"
	"github.com/example/ecommerce-api/modules/cache"
	catalogmod "github.com/example/ecommerce-api/modules/catalog"
	mediamod "github.com/example/ecommerce-api/modules/media"
	notificationmod "github.com/example/ecommerce-api/modules/notification"
	ordermod "github.com/example/ecommerce-api/modules/order"
	"github.com/example/ecommerce-api/modules/store"
	usersmod "github.com/example/ecommerce-api/modules/users"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/shopspring/decimal"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	// Prices and totals are written as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	log.Println("=== E-commerce API ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("API Prefix: %s", cfg.APIPrefix)
	log.Printf("Database: %s", cfg.DatabasePath)
	log.Printf("Storage Path: %s", cfg.StoragePath)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithJetStreamStorageDir(cfg.StoragePath),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	storePlugin := store.NewPluginModule(cfg.DatabasePath, cfg.DatabaseDebug)
	if err := app.RegisterPlugin(storePlugin, "store"); err != nil {
		log.Fatalf("Failed to register store plugin: %v", err)
	}

	var cachePlugin *cache.PluginModule
	if cfg.CacheEnabled() {
		cachePlugin = cache.NewPluginModule(cfg.RedisAddr, "ecommerce:", cfg.CacheTTL)
		if err := app.RegisterPlugin(cachePlugin, "cache"); err != nil {
			log.Fatalf("Failed to register cache plugin: %v", err)
		}
	} else {
		log.Println("REDIS_ADDR not set, running without the product cache")
	}

	storagePlugin, err := fsjetstream.New(fsjetstream.Config{
		Buckets: []fsjetstream.BucketConfig{
			{
				Name:        mediamod.BucketName,
				Description: "Product images",
				MaxBytes:    1024 * 1024 * 1024,
				Storage:     fsjetstream.FileStorage,
				Compression: true,
			},
		},
	})
	if err != nil {
		log.Fatalf("Failed to create storage plugin: %v", err)
	}
	if err := app.RegisterPlugin(storagePlugin, "storage"); err != nil {
		log.Fatalf("Failed to register storage plugin: %v", err)
	}

	usersModule := usersmod.NewModule(usersmod.JWTConfig{
		SecretKey:            cfg.JWTSecret,
		AccessTokenDuration:  cfg.AccessTokenTTL,
		RefreshTokenDuration: cfg.RefreshTokenTTL,
		Issuer:               cfg.JWTIssuer,
	}, app.Logger()).WithBcryptCost(cfg.BcryptCost)
	catalogModule := catalogmod.NewModule(app.Logger())
	mediaModule := mediamod.NewModule(cfg.PublicBaseURL, app.Logger())
	orderModule := ordermod.NewModule(app.Logger())
	notificationModule := notificationmod.NewModule(notificationmod.DefaultCapacity, app.Logger())
	apiModule := apimod.NewModule(cfg.HTTPPort, apimod.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		MaxUploadSize:  cfg.MaxUploadSize,
		LoginRateLimit: cfg.LoginRateLimit,
		AccessLog:      true,
	}, app.Logger())

	// Wire up dependencies
	apiModule.SetUsersModule(usersModule)
	apiModule.SetCatalogModule(catalogModule)
	apiModule.SetOrderModule(orderModule)
	apiModule.SetMediaModule(mediaModule)
	apiModule.SetNotificationModule(notificationModule)
	apiModule.AddHealthSource(storePlugin)
	if cachePlugin != nil {
		apiModule.AddHealthSource(cachePlugin)
		apiModule.SetLimiterSource(cachePlugin)
	}

	// The API module goes last so every module it serves has started.
	app.Register(usersModule)
	app.Register(catalogModule)
	app.Register(mediaModule)
	app.Register(orderModule)
	app.Register(notificationModule)
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	p := cfg.APIPrefix
	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d%s", cfg.HTTPPort, p)
	log.Println("Public endpoints:")
	log.Println("  GET    /health")
	log.Println("  GET    /public/uploads/*")
	log.Printf("  GET    %s/products[?categories=a,b]", p)
	log.Printf("  GET    %s/products/get/featured/:count?", p)
	log.Printf("  GET    %s/products/get/hotdeal/:count?", p)
	log.Printf("  GET    %s/categories", p)
	log.Printf("  POST   %s/orders", p)
	log.Printf("  POST   %s/users/register | login | refresh", p)
	log.Println("Administrator endpoints (Bearer token with isAdmin):")
	log.Printf("  POST/PUT/DELETE %s/products, %s/categories, %s/users", p, p, p)
	log.Printf("  GET    %s/orders[?users=id], %s/orders/:id", p, p)
	log.Printf("  PUT    %s/orders/:id   DELETE %s/orders/:id", p, p)
	log.Printf("  GET    %s/orders/get/sales | count | user/:userid", p)
	log.Printf("  GET    %s/notifications[?user=id]", p)
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")
}
