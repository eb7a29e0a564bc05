package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"legal-city.backend/internal/config"
	"legal-city.backend/internal/domain/entities"
	domainerrors "legal-city.backend/internal/domain/errors"
	domainrepo "legal-city.backend/internal/domain/repositories"
	"legal-city.backend/internal/infrastructure/repositories"
	"legal-city.backend/pkg/crypto"
)

var openSeedDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

type seedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (domainrepo.AccountRepository, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (domainrepo.AccountRepository, io.Closer, error) {
			db, err := openSeedDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewAccountRepository(db), sqlDB, nil
		},
		out: os.Stdout,
	}
}

// runAdminSeed promotes an existing account to administrator, or creates a
// verified admin account when the email is unknown.
func runAdminSeed(args []string, deps seedDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		def := defaultSeedDeps()
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("admin-seed", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin account email (required)")
	passwordFlag := fs.String("password", "", "password when creating a new account")
	nameFlag := fs.String("name", "Administrator", "display name when creating a new account")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(*emailFlag))
	if email == "" {
		return fmt.Errorf("--email is required")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	repo, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	account, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if account.IsAdmin {
			fmt.Fprintf(deps.out, "account %s is already an admin\n", email)
			return nil
		}
		if err := repo.GrantAdmin(ctx, account.ID); err != nil {
			return fmt.Errorf("failed to promote %s: %w", email, err)
		}
		fmt.Fprintf(deps.out, "promoted %s to admin\n", email)
		return nil

	case err == domainerrors.ErrNotFound:
		if *passwordFlag == "" {
			return fmt.Errorf("--password is required to create a new admin account")
		}
		hash, err := crypto.HashPassword(*passwordFlag)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		newAccount := &entities.Account{
			Name:          *nameFlag,
			Email:         email,
			PasswordHash:  hash,
			Role:          entities.RoleUser,
			IsAdmin:       true,
			EmailVerified: true,
		}
		if err := repo.Create(ctx, newAccount); err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}
		fmt.Fprintf(deps.out, "created admin account %s (%s)\n", email, newAccount.ID)
		return nil

	default:
		return fmt.Errorf("failed to look up %s: %w", email, err)
	}
}

func main() {
	if err := runAdminSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
