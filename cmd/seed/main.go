package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pennywise/internal/config"
	"pennywise/internal/db"
	"pennywise/internal/model"
	"pennywise/internal/repository"
)

// defaultCategories are created for the admin account so a fresh install has
// something to attach transactions to.
var defaultCategories = []string{
	"Groceries",
	"Rent",
	"Utilities",
	"Transport",
	"Entertainment",
	"Salary",
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	email := getEnv("SEED_ADMIN_EMAIL", "admin@pennywise.local")
	password := getEnv("SEED_ADMIN_PASSWORD", "")
	if password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD must be set")
	}
	name := getEnv("SEED_ADMIN_NAME", "Administrator")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	admin, created, err := seedAdmin(ctx, userRepo, name, email, password)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if created {
		log.Printf("Admin user created: %s", email)
	} else {
		log.Printf("Admin user already exists: %s", email)
	}

	seeded, err := seedCategories(ctx, categoryRepo, admin.ID)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New categories created: %d", seeded)
}

// seedAdmin creates the admin user if it does not exist. An existing user with
// the same email is promoted and activated but its password is left untouched.
func seedAdmin(ctx context.Context, repo repository.UserRepository, name, email, password string) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, false, fmt.Errorf("error checking admin user: %w", err)
	}

	now := time.Now()

	if existing != nil {
		existing.Role = model.RoleAdmin
		existing.IsActive = true
		if existing.ActivatedAt == nil {
			existing.ActivatedAt = &now
		}
		if err := repo.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("error updating admin user: %w", err)
		}
		return existing, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
		ActivatedAt:  &now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("error creating admin user: %w", err)
	}
	return admin, true, nil
}

// seedCategories creates any default categories the user is missing.
func seedCategories(ctx context.Context, repo repository.CategoryRepository, userID uuid.UUID) (int, error) {
	seeded := 0
	for _, name := range defaultCategories {
		existing, err := repo.FindByName(ctx, userID, name)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, fmt.Errorf("error checking category %q: %w", name, err)
		}
		if existing != nil {
			continue
		}
		category := &model.Category{
			UserID: userID,
			Name:   name,
		}
		if err := repo.Create(ctx, category); err != nil {
			return seeded, fmt.Errorf("error creating category %q: %w", name, err)
		}
		seeded++
	}
	return seeded, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
