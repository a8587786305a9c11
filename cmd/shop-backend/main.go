package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haianhng/shop-admin-backend/internal/blog"
	"github.com/haianhng/shop-admin-backend/internal/cart"
	"github.com/haianhng/shop-admin-backend/internal/catalog"
	"github.com/haianhng/shop-admin-backend/internal/checkout"
	"github.com/haianhng/shop-admin-backend/internal/config"
	"github.com/haianhng/shop-admin-backend/internal/customer"
	"github.com/haianhng/shop-admin-backend/internal/db"
	"github.com/haianhng/shop-admin-backend/internal/events"
	httpserver "github.com/haianhng/shop-admin-backend/internal/http"
	"github.com/haianhng/shop-admin-backend/internal/notify"
	"github.com/haianhng/shop-admin-backend/internal/order"
	"github.com/haianhng/shop-admin-backend/internal/sequence"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[shop-backend] ", log.LstdFlags|log.Lshortfile)

	if cfg.DatabaseDSN == "" {
		logger.Fatal("SHOP_DB_DSN not set")
	}

	// DB
	database := db.MustOpen(cfg.DatabaseDSN)
	defer database.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	cartRepo := cart.NewRepository(database)
	customerRepo := customer.NewRepository(database)
	orderRepo := order.NewRepository(database)
	catalogRepo := catalog.NewRepository(database)
	blogRepo := blog.NewRepository(database)
	seqRepo := sequence.NewRepository(database)

	// RabbitMQ
	rabbitConn := notify.MustDialRabbit(cfg.RabbitURL)
	defer rabbitConn.Close()

	notifier, err := notify.NewAMQPPublisher(rabbitConn)
	if err != nil {
		logger.Fatalf("session publisher: %v", err)
	}
	defer notifier.Close()

	domainEvents, err := events.NewPublisher(rabbitConn, seqRepo)
	if err != nil {
		logger.Fatalf("events publisher: %v", err)
	}
	defer domainEvents.Close()

	// Services
	converter := checkout.NewService(cartRepo, customerRepo, orderRepo, notifier, domainEvents, logger)
	lifecycle := order.NewService(orderRepo, customerRepo, notifier, domainEvents, logger)

	// HTTP
	images := httpserver.ImageStore{Dir: cfg.UploadDir}
	mux := httpserver.NewRouter(httpserver.Handlers{
		Orders:   httpserver.NewOrderHandler(orderRepo, converter, lifecycle),
		Carts:    httpserver.NewCartHandler(cartRepo),
		Catalog:  httpserver.NewCatalogHandler(catalogRepo, images),
		Blogs:    httpserver.NewBlogHandler(blogRepo, images),
		Sessions: httpserver.NewSessionHandler(customerRepo),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Printf("shop-backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
