package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// General
	DefaultPlatform string
	LogLevel        string
	LogDevelopment  bool

	// Search API credentials
	ClientID     string
	ClientSecret string

	// Run parameters
	Keyword           string
	PageSize          int
	MaxResults        int
	ExcludeSubstrings []string
	OutputPathHint    string

	// Listing page fetches (shipping lookup)
	RespectRobots    bool
	DelayProfile     string // "cautious", "normal", "aggressive"
	RatePerSecond    float64
	RateBurst        int
	ProxyFile        string // file with one proxy URL per line
	ShippingSelector string

	// HTTP server
	HTTPPort string
	APIKey   string
}

// MaxPageSize is the largest display value the search API accepts.
const MaxPageSize = 100

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultPlatform:  "naver",
		LogLevel:         "info",
		PageSize:         MaxPageSize,
		MaxResults:       1000,
		OutputPathHint:   "naver_products.xlsx",
		RespectRobots:    true,
		DelayProfile:     "normal",
		RatePerSecond:    2.0,
		RateBurst:        3,
		ShippingSelector: "span.deliveryFee",
		HTTPPort:         "8080",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("NAVERSCRAP_PLATFORM"); v != "" {
		c.DefaultPlatform = v
	}
	if v := os.Getenv("NAVERSCRAP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("NAVERSCRAP_LOG_DEV"); v == "true" {
		c.LogDevelopment = true
	}
	if v := os.Getenv("NAVER_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv("NAVER_CLIENT_SECRET"); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv("NAVERSCRAP_KEYWORD"); v != "" {
		c.Keyword = v
	}
	if v := os.Getenv("NAVERSCRAP_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PageSize = n
		}
	}
	if v := os.Getenv("NAVERSCRAP_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxResults = n
		}
	}
	if v := os.Getenv("NAVERSCRAP_EXCLUDE"); v != "" {
		c.ExcludeSubstrings = SplitList(v)
	}
	if v := os.Getenv("NAVERSCRAP_OUTPUT"); v != "" {
		c.OutputPathHint = v
	}
	if v := os.Getenv("NAVERSCRAP_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("NAVERSCRAP_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("NAVERSCRAP_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("NAVERSCRAP_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("NAVERSCRAP_PROXIES"); v != "" {
		c.ProxyFile = v
	}
	if v := os.Getenv("NAVERSCRAP_SHIPPING_SELECTOR"); v != "" {
		c.ShippingSelector = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("NAVERSCRAP_API_KEY"); v != "" {
		c.APIKey = v
	}
}

// Validate checks the options a search run cannot do without.
func (c *Config) Validate() error {
	var errs []error
	if c.ClientID == "" || c.ClientSecret == "" {
		errs = append(errs, errors.New("client id and secret are required (NAVER_CLIENT_ID, NAVER_CLIENT_SECRET)"))
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, c.PageSize))
	}
	if c.MaxResults < 1 {
		errs = append(errs, fmt.Errorf("max results must be positive, got %d", c.MaxResults))
	}
	return errors.Join(errs...)
}

// SplitList splits a comma separated value, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
