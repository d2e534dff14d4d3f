package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/streakpost/streakpost/internal/config"
	"github.com/streakpost/streakpost/internal/db"
	"github.com/streakpost/streakpost/internal/logger"
	"github.com/streakpost/streakpost/internal/model"
	"github.com/streakpost/streakpost/internal/repository"
)

// Seeds the badge table with the streak milestones. Safe to run repeatedly;
// it does nothing once badges exist.
func main() {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN, cfg.AppEnv)

	conn, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(conn)

	err = db.RunMigrations(conn.DB, cfg.DBDriver)
	if err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	repo := repository.NewBadgeRepository(conn)

	count, err := repo.Count()
	if err != nil {
		slog.Error("failed to count badges", "error", err)
		os.Exit(1)
	}
	if count > 0 {
		slog.Info("badges already seeded", "count", count)
		return
	}

	seeds := []struct {
		name        string
		description string
		icon        string
		criteria    int
	}{
		{"First Step", "Posted progress for the first day", "🌱", 1},
		{"Three in a Row", "Kept a 3-day streak", "✨", 3},
		{"One Week Strong", "Kept a 7-day streak", "🔥", 7},
		{"Two Week Warrior", "Kept a 14-day streak", "⚡", 14},
		{"Monthly Master", "Kept a 30-day streak", "🏆", 30},
		{"Sixty Days Deep", "Kept a 60-day streak", "💎", 60},
		{"Century Club", "Kept a 100-day streak", "💯", 100},
		{"One Fifty", "Kept a 150-day streak", "🚀", 150},
		{"Half-Year Hero", "Kept a 180-day streak", "🌟", 180},
		{"Year-Long Legend", "Kept a 365-day streak", "👑", 365},
	}

	now := time.Now().UTC()
	for _, s := range seeds {
		err := repo.Create(&model.Badge{
			ID:          uuid.New().String(),
			Name:        s.name,
			Description: s.description,
			Icon:        s.icon,
			Criteria:    s.criteria,
			CreatedAt:   now,
		})
		if err != nil {
			slog.Error("failed to seed badge", "error", err, "badge", s.name)
			os.Exit(1)
		}
	}

	slog.Info("badges seeded", "count", len(seeds))
}
