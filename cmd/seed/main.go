// Seeds a demo account for local development.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/todolist/api/pkg/auth"
	"github.com/todolist/api/pkg/config"
	pgrepo "github.com/todolist/api/pkg/repository/postgres"
	"github.com/todolist/api/pkg/storage/postgres"
)

const (
	demoName     = "Demo User"
	demoEmail    = "user@todo.local"
	demoPassword = "secret123"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()

	repo, err := pgrepo.NewUserRepository(pool)
	if err != nil {
		log.Fatalf("init user repo: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	user := auth.User{
		ID:           uuid.New(),
		Name:         demoName,
		Email:        demoEmail,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, user); err != nil {
		if err == auth.ErrUserAlreadyExists {
			log.Printf("seed: %s already exists, nothing to do", demoEmail)
			return
		}
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seed: created %s", demoEmail)
}
