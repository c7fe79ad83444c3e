package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/salidas/configs"
	"github.com/maheshrc27/salidas/internal/api/handlers"
	job "github.com/maheshrc27/salidas/internal/jobs"
	"github.com/maheshrc27/salidas/internal/queue"
	"github.com/maheshrc27/salidas/internal/repository"
	"github.com/maheshrc27/salidas/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	r2Service, err := service.NewR2Service(context.Background(), *cfg)
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}

	queueW := queue.NewQueue(r2Service)

	// Without Redis the advisory cleanup runs inline.
	var cleaner service.Cleaner = service.NewStorageCleaner(r2Service)
	var asynqServer *asynq.Server
	if cfg.RedisURI != "" {
		redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
		client := asynq.NewClient(redisConn)
		defer client.Close()
		cleaner = queue.NewTaskCleaner(client)

		asynqServer = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 4,
		})
		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeCleanupObjects, queueW.HandleCleanupTask)

		log.Println("Starting the Asynq server...")
		if err := asynqServer.Start(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    cfg.MaxUploadMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	handlers.RegisterRoutes(app, *cfg, handlers.Services{
		Auth:     service.NewAuthService(*cfg, userRepo),
		Events:   service.NewEventService(eventRepo, photoRepo, videoRepo, reviewRepo, profileRepo, r2Service, cleaner),
		Media:    service.NewMediaService(eventRepo, photoRepo, videoRepo, r2Service, cleaner),
		Reviews:  service.NewReviewService(eventRepo, reviewRepo),
		Profiles: service.NewProfileService(profileRepo, r2Service, cleaner),
	})

	// cron jobs
	c := cron.New()
	// Without a public URL no stored object can be matched to its row.
	if cfg.OrphanSweep != "" && cfg.R2.PublicURL != "" {
		sweepJob := job.NewOrphanSweepJob(eventRepo, photoRepo, videoRepo, profileRepo, r2Service)
		if err := c.AddFunc(cfg.OrphanSweep, sweepJob.Sweep); err != nil {
			log.Fatalf("Invalid ORPHAN_SWEEP schedule %q: %v", cfg.OrphanSweep, err)
		}
	}
	c.Start()
	defer c.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, asynqServer)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, asynqServer *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}
	if asynqServer != nil {
		asynqServer.Shutdown()
	}

	log.Println("Server shutdown complete.")
}
