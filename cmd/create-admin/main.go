// Command create-admin adds a back office account.
//
//	DATABASE_URL=postgres://... create-admin -email ana@inmo.co -name "Ana Gómez" -password 'S3creto!' -role editor
package main

import (
	"context"
	"flag"
	"os"

	"estates-backend/internal/auth"
	"estates-backend/internal/config"
	"estates-backend/internal/constants"
	"estates-backend/internal/infrastructure/database"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	email := flag.String("email", "", "account email")
	name := flag.String("name", "", "full name")
	password := flag.String("password", "", "password (8+ chars with a letter, a digit and a symbol)")
	role := flag.String("role", constants.Admin, "admin, editor or viewer")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database open")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	u, err := auth.CreateAdmin(context.Background(), db, auth.CreateAdminInput{
		Fullname: *name,
		Email:    *email,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create admin")
	}
	log.Info().Str("user_id", u.UserID.String()).Str("email", u.Email).Str("role", u.Role).Msg("account created")
}
