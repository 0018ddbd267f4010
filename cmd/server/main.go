package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waterbilling/config"
	"waterbilling/internal/api"
	"waterbilling/internal/broker"
	"waterbilling/internal/redisclient"
	"waterbilling/internal/service"
	"waterbilling/internal/store"
	"waterbilling/internal/util"
	"waterbilling/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting water billing service")

	tp, err := util.InitTracer("waterbilling", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicBilling)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	settlement := service.NewSettlement(db)
	customerService := service.NewCustomerService(db)
	readingService := service.NewReadingService(db, redisClient)
	billingService := service.NewBillingService(db, eventPublisher)
	paymentService := service.NewPaymentService(db, redisClient, eventPublisher, settlement)
	complaintService := service.NewComplaintService(db, eventPublisher)
	userService := service.NewUserService(db)
	statsService := service.NewStatsService(db, redisClient,
		time.Duration(cfg.Billing.StatsCacheSeconds)*time.Second)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	billingConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicBilling, cfg.Kafka.ConsumerGroup)
	billingWorker := worker.NewBillingWorker(billingConsumer, db)
	go func() {
		if err := billingWorker.Start(workerCtx); err != nil {
			log.Printf("Billing worker error: %v", err)
		}
	}()

	overdueWorker := worker.NewOverdueWorker(db,
		time.Duration(cfg.Billing.OverdueSweepSeconds)*time.Second)
	go func() {
		if err := overdueWorker.Start(workerCtx); err != nil {
			log.Printf("Overdue worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(
		customerService,
		readingService,
		billingService,
		paymentService,
		complaintService,
		userService,
		statsService,
	)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	billingWorker.Stop()

	log.Println("Server exited")
}
