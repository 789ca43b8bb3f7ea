package main

import (
	"github.com/vytor/leitnerbox/internal/config"
	"github.com/vytor/leitnerbox/internal/db"
	"github.com/vytor/leitnerbox/internal/repository"
	"github.com/vytor/leitnerbox/internal/repository/sqlite"
	"github.com/vytor/leitnerbox/internal/services"
)

// app holds the database and the services built on it.
type app struct {
	db       *db.DB
	cardRepo repository.CardRepository
	profiles services.ProfileService
	study    services.StudyService
	cards    services.CardService
	stats    services.StatsService
}

func newApp(cfg config.Config) (*app, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	cardRepo := sqlite.NewCardRepository(database.DB)
	profileRepo := sqlite.NewProfileRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)

	study := services.NewStudyService(cardRepo, profileRepo, statsRepo, services.StudyOptions{
		PerBox: cfg.LoadPerBox,
		Seed:   cfg.SamplerSeed,
	})

	return &app{
		db:       database,
		cardRepo: cardRepo,
		profiles: services.NewProfileService(profileRepo, study),
		study:    study,
		cards:    services.NewCardService(cardRepo, profileRepo),
		stats:    services.NewStatsService(statsRepo, cardRepo),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
