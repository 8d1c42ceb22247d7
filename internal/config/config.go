package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot transport settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"TELEGRAM_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// ClickUpConfig holds the task-tracking API credentials and list routing.
type ClickUpConfig struct {
	Token         string            `yaml:"token" envconfig:"CLICKUP_TOKEN"`
	BaseURL       string            `yaml:"base_url" envconfig:"CLICKUP_BASE_URL"`
	DefaultListID string            `yaml:"default_list_id" envconfig:"CLICKUP_DEFAULT_LIST_ID"`
	ListRouting   map[string]string `yaml:"list_routing"`
	// ListRoutingJSON overrides list_routing with a JSON object when set,
	// e.g. LIST_ROUTING_JSON='{"backend":"123","ops":"456"}'.
	ListRoutingJSON string `yaml:"-" envconfig:"LIST_ROUTING_JSON"`
}

// DraftsConfig selects the draft store backend.
type DraftsConfig struct {
	Backend    string `yaml:"backend" envconfig:"DRAFTS_BACKEND"`
	RedisAddr  string `yaml:"redis_addr" envconfig:"DRAFTS_REDIS_ADDR"`
	RedisDB    int    `yaml:"redis_db" envconfig:"DRAFTS_REDIS_DB"`
	TTLMinutes int    `yaml:"ttl_minutes" envconfig:"DRAFTS_TTL_MINUTES"`
}

// HealthConfig configures the standalone health endpoint listener.
// An empty Listen disables the server.
type HealthConfig struct {
	Listen string `yaml:"listen" envconfig:"HEALTH_LISTEN"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// DraftsBackendMemory keeps drafts in process memory (default).
	DraftsBackendMemory = "memory"
	// DraftsBackendRedis keeps drafts in Redis so they survive restarts.
	DraftsBackendRedis = "redis"
)

// Config aggregates the full application configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	ClickUp  ClickUpConfig  `yaml:"clickup"`
	Drafts   DraftsConfig   `yaml:"drafts"`
	Health   HealthConfig   `yaml:"health"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if cfg.ClickUp.Token == "" {
		return fmt.Errorf("clickup token is required")
	}
	if strings.TrimSpace(cfg.ClickUp.DefaultListID) == "" {
		return fmt.Errorf("clickup.default_list_id is required")
	}
	if cfg.ClickUp.BaseURL == "" {
		cfg.ClickUp.BaseURL = "https://api.clickup.com"
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if err := normalizeRouting(&cfg.ClickUp); err != nil {
		return err
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Drafts.Backend))
	if backend == "" {
		backend = DraftsBackendMemory
	}
	switch backend {
	case DraftsBackendMemory:
	case DraftsBackendRedis:
		if strings.TrimSpace(cfg.Drafts.RedisAddr) == "" {
			return fmt.Errorf("drafts.redis_addr is required when drafts.backend is 'redis'")
		}
	default:
		return fmt.Errorf("invalid drafts.backend %q; allowed: memory, redis", cfg.Drafts.Backend)
	}
	cfg.Drafts.Backend = backend

	return nil
}

// normalizeRouting applies the JSON env override and lower-cases project keys.
func normalizeRouting(cu *ClickUpConfig) error {
	if raw := strings.TrimSpace(cu.ListRoutingJSON); raw != "" {
		var override map[string]string
		if err := json.Unmarshal([]byte(raw), &override); err != nil {
			return fmt.Errorf("invalid LIST_ROUTING_JSON: %w", err)
		}
		cu.ListRouting = override
	}

	if len(cu.ListRouting) == 0 {
		cu.ListRouting = map[string]string{}
		return nil
	}
	normalized := make(map[string]string, len(cu.ListRouting))
	for k, v := range cu.ListRouting {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" || strings.TrimSpace(v) == "" {
			return fmt.Errorf("list_routing entries must have non-empty key and list id (key %q)", k)
		}
		normalized[key] = strings.TrimSpace(v)
	}
	cu.ListRouting = normalized
	return nil
}
