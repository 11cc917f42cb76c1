package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentshout/config"
	"talentshout/cron"
	"talentshout/database"
	accountRepoPkg "talentshout/database/repository/account"
	applicationRepoPkg "talentshout/database/repository/application"
	bookingRepoPkg "talentshout/database/repository/booking"
	talentRepoPkg "talentshout/database/repository/talent"
	"talentshout/handlers"
	"talentshout/routes"
	"talentshout/services/account"
	"talentshout/services/booking"
	"talentshout/services/dashboard"
	"talentshout/services/payment"
	"talentshout/services/talent"
	"talentshout/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()
	talRepo := talentRepoPkg.NewMongoTalentRepo()
	accRepo := accountRepoPkg.NewMongoAccountRepo()
	appRepo := applicationRepoPkg.NewMongoApplicationRepo()
	ensureIndexes(bookRepo, talRepo, accRepo, appRepo)

	feeRate, err := decimal.NewFromString(config.AppConfig.PlatformFeeRate)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid PLATFORM_FEE_RATE %q: %v", config.AppConfig.PlatformFeeRate, err)
	}

	// payment methods.
	methods := payment.NewRegistry(
		payment.NewPaynowMethod(config.AppConfig.PaynowEndpoint),
		payment.NewStripeMethod(),
		payment.NewInnbucksMethod(config.AppConfig.InnbucksEndpoint),
	)
	submitter := payment.NewSubmitter(
		logger,
		utils.GetIdempotencyCacheClient(),
		time.Duration(config.AppConfig.PaymentTimeoutSeconds)*time.Second,
	)

	// services.
	accountService := &account.DefaultAccountService{
		Repo:   accRepo,
		Cache:  utils.GetAuthCacheClient(),
		Logger: logger,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:        bookRepo,
		TalentRepo:  talRepo,
		AccountRepo: accRepo,
		Methods:     methods,
		Submitter:   submitter,
		FeeRate:     feeRate,
		DueDays:     config.AppConfig.BookingDueDays,
		Logger:      logger,
	}
	talentService := &talent.DefaultTalentService{
		Apps:     appRepo,
		Profiles: talRepo,
		Accounts: accRepo,
		Logger:   logger,
	}
	dashboardService := &dashboard.DefaultDashboardService{
		Bookings: bookRepo,
		Talents:  talRepo,
		Apps:     appRepo,
		Logger:   logger,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(accountService, bookingService, talentService, dashboardService)
	routes.RegisterRoutes(router, handlerBundle)

	// Background due-date sweep and runtime health monitoring.
	cron.InitSweepWorker(bookingService)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetAuthCacheClient(), utils.GetIdempotencyCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// ensureIndexes creates the unique and query indexes each repository relies
// on. Index creation is idempotent.
func ensureIndexes(
	bookRepo bookingRepoPkg.Repository,
	talRepo talentRepoPkg.Repository,
	accRepo accountRepoPkg.Repository,
	appRepo applicationRepoPkg.Repository,
) {
	logger := utils.GetLogger()

	type indexer interface{ EnsureIndexes() error }
	for _, repo := range []interface{}{bookRepo, talRepo, accRepo, appRepo} {
		if ix, ok := repo.(indexer); ok {
			if err := ix.EnsureIndexes(); err != nil {
				logger.Sugar().Fatalf("main: failed to create indexes: %v", err)
			}
		}
	}
}
