package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"useraccounts/internal/auth"
	"useraccounts/internal/config"
	"useraccounts/internal/db"
	apperrors "useraccounts/internal/errors"
	"useraccounts/internal/logger"
	"useraccounts/internal/repository"
	"useraccounts/internal/service"
)

// SeedUser is one entry of the seed file.
type SeedUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type seedResult struct {
	Created int
	Skipped int
}

func main() {
	file := flag.String("file", "users.json", "path to a JSON array of {username,password,email}")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	log.Info("Starting seed script...")

	f, err := os.Open(*file)
	if err != nil {
		log.WithError(err).Fatal("open seed file")
	}
	defer f.Close()

	users, err := loadSeedUsers(f)
	if err != nil {
		log.WithError(err).Fatal("read seed file")
	}
	log.Infof("Loaded %d users from %s", len(users), *file)

	gormDB, err := db.New(cfg.DBDriver, cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := repository.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	authService := service.NewAuthService(
		repository.NewUserRepository(gormDB),
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		log,
	)

	res, err := seed(context.Background(), authService, users, log)
	if err != nil {
		log.WithError(err).Fatal("seed failed")
	}
	log.WithFields(logrus.Fields{"created": res.Created, "skipped": res.Skipped}).Info("Seed completed")
}

func loadSeedUsers(r io.Reader) ([]SeedUser, error) {
	var users []SeedUser
	if err := json.NewDecoder(r).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode seed users: %w", err)
	}
	return users, nil
}

// seed registers every user, skipping those whose username or email already exists.
func seed(ctx context.Context, svc service.AuthService, users []SeedUser, log logrus.FieldLogger) (seedResult, error) {
	var res seedResult
	for _, u := range users {
		if u.Username == "" || u.Email == "" || u.Password == "" {
			log.WithField("username", u.Username).Warn("Skipping incomplete seed entry")
			res.Skipped++
			continue
		}

		_, err := svc.Register(ctx, u.Username, u.Password, u.Email)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, apperrors.ErrConflict):
			log.WithField("username", u.Username).Info("Skipping existing user")
			res.Skipped++
		default:
			return res, fmt.Errorf("register %s: %w", u.Username, err)
		}
	}
	return res, nil
}
