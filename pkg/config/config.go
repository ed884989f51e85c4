package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Dataset   DatasetConfig
	JWT       JWTConfig
	Dashboard DashboardConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatasetConfig struct {
	Path                string
	Sheet               string
	Watch               bool
	RecommendationsFile string
}

type JWTConfig struct {
	SecretKey string
}

type DashboardConfig struct {
	Title           string
	Intro           string
	ShowFilterPanel bool
	ShowFooter      bool
	FooterCaption   string
}

const (
	defaultDatasetPath   = "utilisateurs_avec_score_engagement.xlsx"
	defaultTitle         = "🎯 Moteur de Recommandation - Engagement Utilisateur"
	defaultIntro         = "Ce tableau de bord permet de visualiser le niveau d'engagement des utilisateurs et propose des actions adaptées aux différents profils détectés."
	defaultFooterCaption = "Projet - M2 Data Management • Streamlit Dashboard - Moteur de recommandation"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	watch, err := getEnvBool("DATASET_WATCH", false)
	if err != nil {
		return nil, err
	}
	showFilterPanel, err := getEnvBool("SHOW_FILTER_PANEL", true)
	if err != nil {
		return nil, err
	}
	showFooter, err := getEnvBool("SHOW_FOOTER", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Engagement Recommendation Dashboard"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Dataset: DatasetConfig{
			Path:                getEnv("DATASET_PATH", defaultDatasetPath),
			Sheet:               getEnv("DATASET_SHEET", ""),
			Watch:               watch,
			RecommendationsFile: getEnv("RECOMMENDATIONS_FILE", ""),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Dashboard: DashboardConfig{
			Title:           getEnv("DASHBOARD_TITLE", defaultTitle),
			Intro:           getEnv("DASHBOARD_INTRO", defaultIntro),
			ShowFilterPanel: showFilterPanel,
			ShowFooter:      showFooter,
			FooterCaption:   getEnv("FOOTER_CAPTION", defaultFooterCaption),
		},
	}

	if cfg.Dataset.Path == "" {
		return nil, errors.New("missing dataset path")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return b, nil
}
