package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"shopapi/internal/config"
	"shopapi/internal/handler"
	"shopapi/internal/infra/db"
	"shopapi/internal/infra/event"
	infraRepo "shopapi/internal/infra/repository"
	"shopapi/internal/logger"
	"shopapi/internal/server"
	"shopapi/internal/usecase"
	auth "shopapi/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// bcryptのコスト
const bcryptCost = 12

func main() {
	//.envは任意（無ければ環境変数だけ）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("load .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	lg := logger.New(cfg)

	// deferで後始末してから終了する
	if err := run(cfg, lg); err != nil {
		lg.Error().Err(err).Msg("exit")
		os.Exit(1)
	}
}

func run(cfg config.Config, lg zerolog.Logger) error {
	//DB接続
	gormDB, err := db.Connect(cfg, lg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			lg.Error().Err(err).Msg("close db")
		}
	}()
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//注文イベント（KAFKA_BROKERSが空なら送らない）
	publisher := event.NewOrderEventPublisher(cfg.Kafka)
	defer func() {
		if err := publisher.Close(); err != nil {
			lg.Error().Err(err).Msg("close publisher")
		}
	}()

	//usecaseに渡す部品
	clock := auth.SystemClock{}
	tokens := auth.NewJWTService(cfg.JWTSecret)
	hasher := auth.NewBcryptPasswordHasher(bcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, tokens, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, tokens, clock)
	userUC := usecase.NewUserUsecase(userRepo, hasher, tokens, clock)
	productUC := usecase.NewProductUsecase(productRepo, txm, cfg.PaginationLimit)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, publisher, clock, lg)

	//Handler生成
	secure := !cfg.IsDevelopment()
	srv := server.New(cfg, lg, server.Deps{
		Tokens: tokens,
		Users:  userRepo,
		Handlers: server.Handlers{
			Auth:         handler.NewAuthHandler(registerUC, loginUC, secure),
			User:         handler.NewUserHandler(userUC, secure),
			AdminUser:    handler.NewAdminUserHandler(userUC),
			Product:      handler.NewProductHandler(productUC),
			AdminProduct: handler.NewAdminProductHandler(productUC),
			Order:        handler.NewOrderHandler(orderUC),
			AdminOrder:   handler.NewAdminOrderHandler(orderUC),
		},
	})

	//Server起動
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
	case <-ctx.Done():
		lg.Info().Msg("shutting down")
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
