package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rickbags/internal/config"
	"rickbags/internal/db"
	"rickbags/internal/httpserver"
	"rickbags/internal/mailer"
	catalogrepo "rickbags/internal/repository/catalog"
	newsletterrepo "rickbags/internal/repository/newsletter"
	orderrepo "rickbags/internal/repository/order"
	productrepo "rickbags/internal/repository/product"
	reviewrepo "rickbags/internal/repository/review"
	settingsrepo "rickbags/internal/repository/settings"
	userrepo "rickbags/internal/repository/user"
	wishlistrepo "rickbags/internal/repository/wishlist"
	"rickbags/internal/session"
	authsvc "rickbags/internal/service/auth"
	cartsvc "rickbags/internal/service/cart"
	catalogsvc "rickbags/internal/service/catalog"
	checkoutsvc "rickbags/internal/service/checkout"
	ordersvc "rickbags/internal/service/order"
	reviewsvc "rickbags/internal/service/review"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb, err := session.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer rdb.Close()

	sessions := session.NewStore(rdb, cfg.SessionTTL)
	mail := mailer.New(cfg.Mail, logger)

	users := userrepo.NewPostgres(dbpool, logger)
	products := productrepo.NewPostgres(dbpool, logger)
	catalog := catalogrepo.NewPostgres(dbpool)
	orders := orderrepo.NewPostgres(dbpool, logger)
	reviews := reviewrepo.NewPostgres(dbpool)
	wishlists := wishlistrepo.NewPostgres(dbpool)
	newsletters := newsletterrepo.NewPostgres(dbpool)
	settings := settingsrepo.NewPostgres(dbpool)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, rdb, httpserver.Deps{
		Sessions:   sessions,
		Users:      users,
		Wishlist:   wishlists,
		Newsletter: newsletters,
		Settings:   settings,
		AuthSvc:    authsvc.New(users, mail, logger),
		CatalogSvc: catalogsvc.New(products, catalog, reviews, logger),
		CartSvc:    cartsvc.New(products, catalog),
		CheckoutS:  checkoutsvc.New(orders, logger),
		OrderSvc:   ordersvc.New(orders, logger),
		ReviewSvc:  reviewsvc.New(reviews, products),
		Mailer:     mail,
		Cfg:        cfg,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
