package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/Codebuster0001/portfolio3/config"
	"github.com/Codebuster0001/portfolio3/internal/application"
	pginfra "github.com/Codebuster0001/portfolio3/internal/infrastructure/postgres"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
	"github.com/Codebuster0001/portfolio3/pkg/helpers"
	"github.com/Codebuster0001/portfolio3/pkg/mailer"
)

// seed creates the portfolio owner account. Running it twice is harmless.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	svc := application.NewUserService(
		pginfra.NewUserRepository(pool),
		helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpires),
		helpers.NewGCSAssets(nil, ""),
		mailer.LogMailer{Logger: logger},
		nil,
		cfg,
		logger,
	)

	u, _, err := svc.Register(ctx, application.RegisterInput{
		FullName: cfg.SeedAdminName,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
	})
	if apperror.Is(err, apperror.Conflict) {
		fmt.Printf("owner already exists: email=%s\n", cfg.SeedAdminEmail)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed owner: %v", err)
	}
	fmt.Printf("seeded owner: id=%s email=%s name=%s\n", u.ID, u.Email, u.FullName)
}
