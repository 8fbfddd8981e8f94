package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"profitfy/internal/auth"
	"profitfy/internal/config"
	"profitfy/internal/db"
	"profitfy/internal/model"
	"profitfy/internal/repository"
)

// demoUser is a seed record for local development.
type demoUser struct {
	Name     string
	Surname  string
	Email    string
	Phone    string
	Password string
}

var demoUsers = []demoUser{
	{Name: "Ana", Surname: "Souza", Email: "ana@example.com", Phone: "+55 11 91234-0001", Password: "secret123"},
	{Name: "Bruno", Surname: "Lima", Email: "bruno@example.com", Phone: "+55 11 91234-0002", Password: "secret123"},
	{Name: "Carla", Surname: "Mendes", Email: "carla@example.com", Phone: "+55 11 91234-0003", Password: "secret123"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	hasher := auth.NewPasswordHasher(cfg.Argon2)

	ctx := context.Background()
	created, skipped := 0, 0
	for _, du := range demoUsers {
		if _, err := userRepo.FindByEmail(ctx, du.Email); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %s: %v", du.Email, err)
		}

		hash, err := hasher.Hash(du.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", du.Email, err)
		}

		user := &model.User{
			Name:         du.Name,
			Surname:      du.Surname,
			Email:        du.Email,
			PasswordHash: hash,
			Phone:        du.Phone,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", du.Email, err)
		}
		created++
	}

	log.Printf("Seed complete: %d created, %d already present", created, skipped)
}
