package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config contient toute la configuration du serveur, chargée depuis
// les variables d'environnement
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Décalage horaire fixe (heures par rapport à UTC), pas de gestion DST
	TZOffsetHours int

	// Expression cron des vérifications de cycle de vie (heure locale)
	NotifyCron string

	// Admin initial inséré au premier démarrage
	BootstrapAdminID   string
	BootstrapAdminName string

	// URL webhook pour les annonces; vide = console uniquement
	NotifyWebhookURL string
}

// LoadConfig charge la configuration depuis l'environnement avec des valeurs par défaut
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "challengebot"),
		NotifyCron:         getEnv("NOTIFY_CRON", "0 0,12,18 * * *"),
		BootstrapAdminID:   getEnv("BOOTSTRAP_ADMIN_ID", ""),
		BootstrapAdminName: getEnv("BOOTSTRAP_ADMIN_NAME", ""),
		NotifyWebhookURL:   getEnv("NOTIFY_WEBHOOK_URL", ""),
	}

	offset := getEnv("TZ_OFFSET_HOURS", "2")
	hours, err := strconv.Atoi(offset)
	if err != nil {
		return nil, fmt.Errorf("TZ_OFFSET_HOURS invalide %q: %w", offset, err)
	}
	if hours < -12 || hours > 14 {
		return nil, fmt.Errorf("TZ_OFFSET_HOURS hors limites: %d", hours)
	}
	cfg.TZOffsetHours = hours

	return cfg, nil
}

// Location retourne le fuseau horaire fixe du service
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.TZOffsetHours), c.TZOffsetHours*3600)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
