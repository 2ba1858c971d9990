package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dom/alliance-dashboard/internal/alliance"
	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/repository"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Data sources; exactly one of DataBaseURL and DataDir is used
	DataBaseURL    string
	DataDir        string
	Files          repository.Files
	FetchTimeout   time.Duration
	RefreshOnStart bool

	// Ranking rules
	RulesFile string
	Rules     Rules
}

// Rules are the tunable parts of ranking and matching.
type Rules struct {
	Thresholds                   domain.Thresholds   `yaml:"thresholds"`
	TeamSlots                    int                 `yaml:"teamSlots"`
	Alliances                    []alliance.Alliance `yaml:"alliances"`
	IncludeUnrecognizedAlliances bool                `yaml:"includeUnrecognizedAlliances"`
	FuzzyMatching                bool                `yaml:"fuzzyMatching"`
}

func DefaultRules() Rules {
	return Rules{
		Thresholds:                   domain.DefaultThresholds(),
		TeamSlots:                    domain.DefaultTeamSlots,
		Alliances:                    alliance.DefaultVocabulary(),
		IncludeUnrecognizedAlliances: false,
		FuzzyMatching:                true,
	}
}

// Load reads .env when present, then the environment, then the rules file.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	defaults := repository.DefaultFiles()
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DataBaseURL: getEnv("DATA_BASE_URL", ""),
		DataDir:     getEnv("DATA_DIR", ""),
		Files: repository.Files{
			Teams:      getEnv("FILE_TEAMS", defaults.Teams),
			Characters: getEnv("FILE_CHARACTERS", defaults.Characters),
			Players:    getEnv("FILE_PLAYERS", defaults.Players),
			Rosters:    getEnv("FILE_ROSTERS", defaults.Rosters),
			IsoReco:    getEnv("FILE_ISO_RECO", defaults.IsoReco),
			IsoIcons:   getEnv("FILE_ISO_ICONS", defaults.IsoIcons),
		},
		FetchTimeout:   time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 0)) * time.Second,
		RefreshOnStart: getEnvBool("REFRESH_ON_START", true),
		RulesFile:      getEnv("RULES_FILE", "rules.yaml"),
	}

	if cfg.DataBaseURL == "" && cfg.DataDir == "" {
		return nil, fmt.Errorf("DATA_BASE_URL or DATA_DIR environment variable is required")
	}
	if cfg.DataBaseURL != "" && cfg.DataDir != "" {
		return nil, fmt.Errorf("DATA_BASE_URL and DATA_DIR are mutually exclusive")
	}

	rules, err := LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	cfg.Rules = rules

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadRules reads a YAML rules file over DefaultRules. A missing file is not
// an error. Keys the file omits keep their defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rules, nil
		}
		return Rules{}, errors.Wrapf(err, "read rules file %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, errors.Wrapf(err, "parse rules file %s", path)
	}

	if rules.TeamSlots <= 0 {
		return Rules{}, errors.Errorf("rules file %s: teamSlots must be positive", path)
	}
	if len(rules.Alliances) == 0 {
		rules.Alliances = alliance.DefaultVocabulary()
	}
	return rules, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}
