package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	AI       AIConfig       `yaml:"ai"`
	Search   SearchConfig   `yaml:"search"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Email    EmailConfig    `yaml:"email"`
	Storage  StorageConfig  `yaml:"storage"`
	Schedule string         `yaml:"schedule"`
	Topics   []string       `yaml:"topics"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	TextModel    string `yaml:"text_model"`
	VideoModel   string `yaml:"video_model"`
}

type SearchConfig struct {
	TavilyAPIKey string `yaml:"tavily_api_key" env:"TAVILY_API_KEY"`
}

type YouTubeConfig struct {
	APIKey       string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

type PipelineConfig struct {
	DefaultIdeators   int           `yaml:"default_ideators"`
	MaxVideosAnalyzed int           `yaml:"max_videos_analyzed"`
	CatalogMaxResults int64         `yaml:"catalog_max_results"`
	CallTimeout       time.Duration `yaml:"call_timeout"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

type StorageConfig struct {
	DataDir   string        `yaml:"data_dir"`
	RunMaxAge time.Duration `yaml:"run_max_age"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		// No config file: run on env vars and defaults alone.
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Search.TavilyAPIKey == "" {
		cfg.Search.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")
	}
	if cfg.YouTube.APIKey == "" {
		cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if cfg.YouTube.ClientID == "" {
		cfg.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if cfg.YouTube.ClientSecret == "" {
		cfg.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if cfg.YouTube.TokenFile == "" {
		cfg.YouTube.TokenFile = "youtube_token.json"
	}
	if cfg.Email.Username == "" {
		cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5001
	}
	if c.AI.TextModel == "" {
		c.AI.TextModel = "gemini-2.5-flash-lite"
	}
	if c.AI.VideoModel == "" {
		c.AI.VideoModel = "gemini-2.5-flash"
	}
	if c.Pipeline.DefaultIdeators == 0 {
		c.Pipeline.DefaultIdeators = 1
	}
	if c.Pipeline.MaxVideosAnalyzed == 0 {
		c.Pipeline.MaxVideosAnalyzed = 1
	}
	if c.Pipeline.CatalogMaxResults == 0 {
		c.Pipeline.CatalogMaxResults = 5
	}
	if c.Pipeline.CallTimeout == 0 {
		c.Pipeline.CallTimeout = 2 * time.Minute
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.RunMaxAge == 0 {
		c.Storage.RunMaxAge = 30 * 24 * time.Hour
	}
	if c.Schedule == "" {
		c.Schedule = "0 0 9 * * *" // Daily at 9 AM
	}
}

func (c *Config) validate() error {
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.Pipeline.DefaultIdeators < 1 {
		return fmt.Errorf("pipeline.default_ideators must be at least 1")
	}
	if c.Pipeline.MaxVideosAnalyzed < 0 {
		return fmt.Errorf("pipeline.max_videos_analyzed cannot be negative")
	}
	// Tavily and YouTube credentials are optional: searches and catalog
	// lookups degrade in place when they are missing.
	return nil
}

// EmailEnabled reports whether enough SMTP settings are present to send
// blueprint reports from scheduled runs.
func (c *Config) EmailEnabled() bool {
	return c.Email.SMTPServer != "" && c.Email.Username != "" && c.Email.Password != "" && c.Email.ToEmail != ""
}
