package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"bookinghook/internal/config"
	"bookinghook/internal/database"
	"bookinghook/internal/repository"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("db connect failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-cfg.RecordRetention)
	n, err := repository.NewBookingRecordRepository(db).DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Fatal("cleanup booking_records failed")
	}

	logrus.WithFields(logrus.Fields{
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("record cleanup completed")
}
