// seed-admin создаёт учётную запись администратора, если её ещё нет.
//
// Данные берутся из окружения (и из .env в текущем каталоге, если он есть):
// ADMIN_EMAIL, ADMIN_PASSWORD, ADMIN_FULL_NAME. Повторный запуск ничего не меняет.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pribylovaa/agrilearn-network/internal/config"
	logx "github.com/pribylovaa/agrilearn-network/internal/pkg/log"
	"github.com/pribylovaa/agrilearn-network/internal/pkg/redact"
	"github.com/pribylovaa/agrilearn-network/internal/service"
	"github.com/pribylovaa/agrilearn-network/internal/storage/postgres"
	"github.com/pribylovaa/agrilearn-network/internal/tokens"
)

const defaultAdminName = "Administrator"

func main() {
	var configPath, envFile string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&envFile, "env-file", ".env", "path to .env file")
	flag.Parse()

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("env_file_load_failed", slog.String("path", envFile), slog.String("err", err.Error()))
		os.Exit(1)
	}

	cfg := config.MustLoad(configPath)

	log := logx.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	in := service.Registration{
		FullName: os.Getenv("ADMIN_FULL_NAME"),
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if in.FullName == "" {
		in.FullName = defaultAdminName
	}
	if in.Email == "" || in.Password == "" {
		log.Error("admin_credentials_missing", slog.String("hint", "set ADMIN_EMAIL and ADMIN_PASSWORD"))
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	str, err := postgres.New(ctx, cfg.Postgres.URL)
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer str.Close()

	// Токены здесь не выдаются клиенту; Manager нужен только сервису.
	srvc := service.New(str, tokens.New(tokens.Config{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
	}))

	user, created, err := srvc.SeedAdmin(ctx, in)
	if err != nil {
		log.Error("admin_seed_failed",
			slog.String("email", redact.Email(in.Email)),
			slog.String("err", err.Error()),
		)
		str.Close()
		os.Exit(1)
	}

	if created {
		log.Info("admin_created", slog.String("user_id", user.ID.String()), slog.String("email", redact.Email(user.Email)))
		return
	}

	log.Info("admin_exists", slog.String("user_id", user.ID.String()), slog.String("email", redact.Email(user.Email)))
}
