package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/urfave/cli/v2"

	"suryaghar_backend/internals/configs"
	database "suryaghar_backend/internals/databases"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	sectionService "suryaghar_backend/internals/features/home/sections/service"
	authModel "suryaghar_backend/internals/features/users/auth/model"
	scheduler "suryaghar_backend/internals/features/users/auth/scheduler"
	authService "suryaghar_backend/internals/features/users/auth/service"
	"suryaghar_backend/internals/features/users/auth/session"
	"suryaghar_backend/internals/helpers/storage"
	middlewares "suryaghar_backend/internals/middlewares"
	logger "suryaghar_backend/internals/middlewares/logger"
	routes "suryaghar_backend/internals/route"
	routeDetails "suryaghar_backend/internals/route/details"
	"suryaghar_backend/internals/seeds"
	adminSeed "suryaghar_backend/internals/seeds/users/auth"
)

func main() {
	configs.LoadEnv()

	app := &cli.App{
		Name:   "suryaghar",
		Usage:  "PM Surya Ghar recruitment site backend",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update every table",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "insert landing page defaults into empty tables",
				Action: seed,
			},
			{
				Name:  "create-admin",
				Usage: "create a back-office account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
				},
				Action: createAdmin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func connectDB() error {
	if err := database.ConnectDB(); err != nil {
		return err
	}
	if database.DB == nil {
		return fmt.Errorf("DB_* or DATABASE_URL must be set")
	}
	return nil
}

func migrate(cCtx *cli.Context) error {
	if err := connectDB(); err != nil {
		return err
	}
	defer database.Close()
	return database.AutoMigrate(database.DB)
}

func seed(cCtx *cli.Context) error {
	if err := connectDB(); err != nil {
		return err
	}
	defer database.Close()
	return seeds.RunAllSeeds(cCtx.Context, database.DB)
}

func createAdmin(cCtx *cli.Context) error {
	if err := connectDB(); err != nil {
		return err
	}
	defer database.Close()
	_, err := adminSeed.CreateAdmin(cCtx.Context, datastore.Open[authModel.UserModel](database.DB), adminSeed.AdminSeed{
		Email:    cCtx.String("email"),
		UserName: cCtx.String("username"),
		Password: cCtx.String("password"),
	})
	return err
}

func serve(cCtx *cli.Context) error {
	app := fiber.New(middlewares.TrustProxies(fiber.Config{
		// 🚀 fast JSON
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          middlewares.ErrorHandler,
		BodyLimit:             12 * 1024 * 1024,
	}, configs.GetEnv("TRUSTED_PROXIES"))) // e.g. Cloudflare or load balancer CIDRs

	// ⚙️ base middleware
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timeout guard
	requestTimeout := time.Duration(configs.GetEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("request_id", id)
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware())

	// 🔌 DB connect + pool + warm-up
	if err := database.ConnectDB(); err != nil {
		return err
	}
	database.TunePool()
	database.WarmUpQueries()

	// 🧮 limiter counters shared through Redis when available
	middlewares.UseRedisLimiterStorage(database.ConnectRedis())
	app.Use(middlewares.GlobalRateLimiter())

	content, err := sectionService.NewContentService(configs.GetEnv("CONTENT_FILE"))
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	bus := events.New()
	users := datastore.Open[authModel.UserModel](database.DB)
	blacklist := datastore.Open[authModel.TokenBlacklist](database.DB)
	ttl := time.Duration(configs.GetEnvInt("JWT_TTL_HOURS", 24)) * time.Hour
	sessions := session.NewManager(configs.JWTSecret, ttl, users, blacklist, bus.Raw())

	deps := &routeDetails.Deps{
		DB:       database.DB,
		Uploader: storage.NewUploader(storage.NewFromEnv()),
		Bus:      bus,
		Sessions: sessions,
		Content:  content,
		Mailer:   authService.NewMailerFromEnv(),
	}

	// ✅ Routes
	if err := routes.SetupRoutes(app, deps); err != nil {
		return err
	}

	// ⏱ background jobs after DB is ready
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	scheduler.StartBlacklistCleanupScheduler(bgCtx, blacklist)
	watchDone, err := content.Watch(bgCtx)
	if err != nil {
		log.Printf("[WARN] content watcher disabled: %v", err)
		watchDone = nil
	}

	// 🔒 Keep-Alive & connection timeouts
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", port)
		listenErr <- app.Listen("0.0.0.0:" + port)
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Printf("🛑 %s received, shutting down", sig)
	case err := <-listenErr:
		if err != nil {
			log.Printf("[ERROR] server error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[WARN] shutdown: %v", err)
	}

	stopBackground()
	if watchDone != nil {
		<-watchDone
	}
	sessions.Close()
	bus.Close()
	database.CloseRedis()
	database.Close()
	log.Println("👋 bye")
	return nil
}
