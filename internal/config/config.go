package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config carries everything the binaries need. Values come from the
// environment (with a .env file honored when present); an optional YAML
// file can override the tunables.
type Config struct {
	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Plaid
	PlaidClientID    string
	PlaidSecret      string
	PlaidAccessToken string
	PlaidEnvironment string

	// Workflow
	MonthlyBudget decimal.Decimal
	WindowDays    int

	// HTTP server
	Port string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),

		PlaidClientID:    os.Getenv("PLAID_CLIENT_ID"),
		PlaidSecret:      os.Getenv("PLAID_SECRET"),
		PlaidAccessToken: os.Getenv("PLAID_ACCESS_TOKEN"),
		PlaidEnvironment: os.Getenv("PLAID_ENVIRONMENT"),

		MonthlyBudget: getEnvDecimal("MONTHLY_BUDGET", "2000"),
		WindowDays:    getEnvInt("WINDOW_DAYS", 30),

		Port: getEnv("PORT", "8080"),
	}
}

type fileConfig struct {
	MonthlyBudget string `yaml:"monthly_budget"`
	WindowDays    int    `yaml:"window_days"`
	GeminiModel   string `yaml:"gemini_model"`
}

// ApplyFile overlays values from a YAML config file. Only fields present
// in the file are overridden.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ApplyFile: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("ApplyFile: parsing %s: %w", path, err)
	}

	if fc.MonthlyBudget != "" {
		budget, err := decimal.NewFromString(fc.MonthlyBudget)
		if err != nil {
			return fmt.Errorf("ApplyFile: monthly_budget %q: %w", fc.MonthlyBudget, err)
		}
		c.MonthlyBudget = budget
	}
	if fc.WindowDays > 0 {
		c.WindowDays = fc.WindowDays
	}
	if fc.GeminiModel != "" {
		c.GeminiModel = fc.GeminiModel
	}

	return nil
}

// Validate checks the settings every binary needs. Missing credentials are
// reported here, at startup, rather than mid-workflow.
func (c *Config) Validate() error {
	var problems []string

	if c.GeminiAPIKey == "" {
		problems = append(problems, "GEMINI_API_KEY is required")
	}
	if c.WindowDays <= 0 {
		problems = append(problems, fmt.Sprintf("window days must be positive, got %d", c.WindowDays))
	}
	if c.MonthlyBudget.IsNegative() {
		problems = append(problems, fmt.Sprintf("monthly budget must not be negative, got %s", c.MonthlyBudget))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q", c.Port))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidatePlaid checks the Plaid credentials. Only called when the Plaid
// source is selected; file-based runs do not need them.
func (c *Config) ValidatePlaid() error {
	var missing []string

	if c.PlaidClientID == "" {
		missing = append(missing, "PLAID_CLIENT_ID")
	}
	if c.PlaidSecret == "" {
		missing = append(missing, "PLAID_SECRET")
	}
	if c.PlaidAccessToken == "" {
		missing = append(missing, "PLAID_ACCESS_TOKEN")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required Plaid settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return decimal.RequireFromString(fallback)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.RequireFromString(fallback)
	}
	return d
}
