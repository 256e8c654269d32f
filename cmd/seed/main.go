package main

import (
	"flag"
	"os"

	config "github.com/anjiri1684/alx_travel/configs"
	"github.com/anjiri1684/alx_travel/database"
	"github.com/anjiri1684/alx_travel/observability"
	"github.com/rs/zerolog/log"
)

func main() {
	dir := flag.String("data", "data", "directory holding users.csv, locations.csv, listings.csv, bookings.csv and reviews.csv")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("alx-travel-seed", cfg.App.IsDevelopment())

	db, err := database.ConnectDB(cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	if err := database.NewSeeder(db, os.Stdout).Run(*dir); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("database populated successfully")
}
