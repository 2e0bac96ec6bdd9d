package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MicroblogApp/social-service/internal/handler"
	"github.com/MicroblogApp/social-service/internal/rabbitmq"
	"github.com/MicroblogApp/social-service/internal/repository"
	"github.com/MicroblogApp/social-service/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := initEnv(); err != nil {
		logger.Sugar().Fatalf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}

	db, err := pgxpool.New(ctx, os.Getenv("DB_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer rdb.Close()

	mq, err := rabbitmq.Connect(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to rabbitmq: %s", err.Error())
	}
	defer mq.Close()

	repo := repository.New(db, rdb)
	services := service.New(logger, repo, mq)
	handlers := handler.New(services)

	srv := &http.Server{
		Addr: ":" + viper.GetString("app.port"),
		Handler: handlers.InitRoutes(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("failed to run http server: %s", err.Error())
		}
	}()

	logger.Sugar().Infof("server started on port %s", viper.GetString("app.port"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server: %s", err.Error())
	}
}

func initEnv() error {
	return godotenv.Load(".env")
}

func initConfig() error {
	viper.AddConfigPath("./")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
