package database

import (
	"context"
	"fmt"

	"github.com/Lucasbjorklund31/challengebot/internal/config"
	"github.com/Lucasbjorklund31/challengebot/internal/logger"
)

// Schéma logique: un seul challenge dans l'ensemble actif à la fois
// (garanti par CreateChallenge), scores multi-lignes par (user, date),
// baseline une ligne par (user, challenge), marqueurs de notification à
// clé composite jamais supprimés
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		display_name  TEXT UNIQUE NOT NULL,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		user_id  TEXT PRIMARY KEY REFERENCES users(id),
		added_by TEXT NOT NULL,
		added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS challenges (
		id             BIGSERIAL PRIMARY KEY,
		description    TEXT NOT NULL,
		scoring_system TEXT NOT NULL,
		variant        TEXT NOT NULL DEFAULT 'points',
		start_date     DATE NOT NULL,
		end_date       DATE NOT NULL,
		status         TEXT NOT NULL DEFAULT 'upcoming',
		created_by     TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS scores (
		id           BIGSERIAL PRIMARY KEY,
		user_id      TEXT NOT NULL,
		challenge_id BIGINT NOT NULL REFERENCES challenges(id),
		date         DATE NOT NULL,
		points       INTEGER NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_challenge ON scores (challenge_id, user_id, date)`,
	`CREATE TABLE IF NOT EXISTS baseline_values (
		user_id        TEXT NOT NULL,
		challenge_id   BIGINT NOT NULL REFERENCES challenges(id),
		baseline_value DOUBLE PRECISION NOT NULL,
		current_value  DOUBLE PRECISION NOT NULL,
		last_updated   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, challenge_id)
	)`,
	`CREATE TABLE IF NOT EXISTS challenge_notifications (
		challenge_id      BIGINT NOT NULL REFERENCES challenges(id),
		notification_type TEXT NOT NULL,
		sent_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (challenge_id, notification_type)
	)`,
}

// RunMigrations crée les tables manquantes au démarrage
func RunMigrations(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	logger.Success("Database schema up to date")
	return nil
}

// SeedBootstrapAdmin insère l'admin initial depuis la configuration, une
// seule fois. Aucun nom n'est jamais codé en dur dans les vérifications de
// rôle
func SeedBootstrapAdmin(ctx context.Context, cfg *config.Config) error {
	if cfg.BootstrapAdminID == "" {
		logger.Warning("No bootstrap admin configured (BOOTSTRAP_ADMIN_ID)")
		return nil
	}

	name := cfg.BootstrapAdminName
	if name == "" {
		name = cfg.BootstrapAdminID
	}

	_, err := DB.Exec(ctx, `
		INSERT INTO users (id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, cfg.BootstrapAdminID, name)
	if err != nil {
		return fmt.Errorf("could not seed bootstrap user: %w", err)
	}

	_, err = DB.Exec(ctx, `
		INSERT INTO admins (user_id, added_by)
		VALUES ($1, 'bootstrap')
		ON CONFLICT (user_id) DO NOTHING
	`, cfg.BootstrapAdminID)
	if err != nil {
		return fmt.Errorf("could not seed bootstrap admin: %w", err)
	}

	return nil
}
