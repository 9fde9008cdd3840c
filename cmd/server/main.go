package main // Entry point package

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/config"
	"github.com/iliyamo/bar-table-reservation/internal/database"
	"github.com/iliyamo/bar-table-reservation/internal/handler"
	"github.com/iliyamo/bar-table-reservation/internal/hold"
	"github.com/iliyamo/bar-table-reservation/internal/middleware"
	"github.com/iliyamo/bar-table-reservation/internal/queue"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
	"github.com/iliyamo/bar-table-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	holdCfg := config.LoadHoldConfig()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Nil when Redis is unreachable; caching and rate limiting switch
	// off and the hold store falls back to memory.
	rdb := config.NewRedisClient()

	// Repositories.
	accounts := repository.NewAccountRepo(db)
	tokens := repository.NewTokenRepo(db)
	bars := repository.NewBarRepo(db)
	tables := repository.NewTableRepo(db)
	tableTypes := repository.NewTableTypeRepo(db)
	drinks := repository.NewDrinkRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)
	feedback := repository.NewFeedbackRepo(db)
	notifications := repository.NewNotificationRepo(db)

	// Message broker. The publisher doubles as the hold notification
	// sink; table status flips and booking confirmations go through it.
	amqpURL := os.Getenv("RABBITMQ_URL")
	if amqpURL == "" {
		amqpURL = os.Getenv("AMQP_URL")
	}
	publisher := queue.NewPublisher(amqpURL)
	var sink hold.Sink = publisher
	if amqpURL == "" {
		// No broker configured: keep the flips visible in the server log.
		sink = hold.LogSink{}
	}

	// Hold store selection. The Redis store shares hold state across
	// instances but has no expiry callback, so released/expired slots
	// surface lazily on read instead of through the sink.
	var store hold.Store
	if holdCfg.Store == "redis" && rdb != nil {
		store = hold.NewRedisStore(rdb)
	} else {
		if holdCfg.Store == "redis" {
			log.Printf("hold: redis store requested but redis unavailable, using memory store")
		}
		mem := hold.NewMemoryStore(hold.EvictNotifier(sink))
		defer mem.Close()
		store = mem
	}
	holds := hold.NewManager(store, tables, sink, hold.ManagerConfig{
		TTL:           holdCfg.TTL,
		StrictRelease: holdCfg.StrictRelease,
	})

	// Background consumer writes broker events to the log files.
	if amqpURL != "" {
		go func() {
			if err := queue.StartConsumer(amqpURL); err != nil {
				log.Printf("queue consumer stopped: %v", err)
			}
		}()
	}

	// Handlers.
	authH := handler.NewAuthHandler(cfg, accounts, tokens)
	publicH := handler.NewPublicHandler(bars, tables, tableTypes, drinks, events, feedback, holds)
	holdH := handler.NewHoldHandler(holds)
	bookingH := handler.NewBookingHandler(bookings, drinks, bars, tables, holds, publisher)
	feedbackH := handler.NewFeedbackHandler(feedback, bars)
	notificationH := handler.NewNotificationHandler(notifications)
	staffH := handler.NewStaffHandler(accounts, tables, tableTypes, drinks, events, bookings, holds)
	adminH := handler.NewAdminHandler(bars, accounts)

	e := echo.New()

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, middleware.NewRedisCache(cacheCfg, rdb))
	router.RegisterCustomer(e, holdH, bookingH, feedbackH, notificationH, cfg.JWTSecret,
		middleware.NewTokenBucket(rateCfg, rdb))
	router.RegisterStaff(e, staffH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, staffH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
