package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Sources []string `yaml:"sources" json:"sources" jsonschema:"required,description=Subreddits to poll (without the /r/ prefix)"`

	Reddit   RedditConfig   `yaml:"reddit" json:"reddit" jsonschema:"description=Reddit API credentials and endpoints"`
	LLM      LLMConfig      `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for purchase-intent classification"`
	Catalog  CatalogConfig  `yaml:"catalog" json:"catalog" jsonschema:"description=Read-only product catalog connection"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram notification target"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Polling schedule and pass limits"`
	State    StateConfig    `yaml:"state" json:"state" jsonschema:"description=Cursor state persistence"`
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Status HTTP server (daemon mode)"`
}

// RedditConfig holds Reddit API access settings. The password grant is what
// Reddit issues for script-type apps; the user agent is mandatory and must
// identify the bot.
type RedditConfig struct {
	ClientID     string        `yaml:"client_id" json:"client_id" jsonschema:"required,description=OAuth2 client id of the script app"`
	ClientSecret string        `yaml:"client_secret" json:"client_secret" jsonschema:"required,description=OAuth2 client secret"`
	Username     string        `yaml:"username" json:"username" jsonschema:"required,description=Reddit account username"`
	Password     string        `yaml:"password" json:"password" jsonschema:"required,description=Reddit account password"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=dealscout/1.0,description=User agent sent on every request"`
	TokenURL     string        `yaml:"token_url" json:"token_url" jsonschema:"default=https://www.reddit.com/api/v1/access_token,description=OAuth2 token endpoint"`
	APIURL       string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://oauth.reddit.com,description=Authenticated API base URL"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Per-request timeout"`
}

// LLMConfig holds LLM configuration for intent classification
type LLMConfig struct {
	Endpoint            string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (empty for api.openai.com)"`
	APIKey              string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model               string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini)"`
	Temperature         float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.1,description=Temperature for response generation"`
	MaxTokens           int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	Timeout             time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	UseJSONMode         bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=true,description=Use JSON response format (not all models support this)"`
	MaxTextLen          int           `yaml:"max_text_len" json:"max_text_len" jsonschema:"default=2000,description=Item text truncation length for the prompt"`
	ConfidenceThreshold float64       `yaml:"confidence_threshold" json:"confidence_threshold" jsonschema:"default=0.7,minimum=0,maximum=1,description=Minimum confidence to act on a positive classification"`
}

// CatalogConfig holds the product catalog connection. The DSN selects the
// driver: postgres:// for the scraper-maintained catalog, a file: or :memory:
// DSN for SQLite.
type CatalogConfig struct {
	DSN             string        `yaml:"dsn" json:"dsn" jsonschema:"required,description=Catalog connection string (postgres:// or SQLite file:)"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=4,description=Maximum number of open connections"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=2,description=Maximum number of idle connections"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=1h,description=Connection maximum lifetime"`
}

// TelegramConfig holds the notification target
type TelegramConfig struct {
	Token   string        `yaml:"token" json:"token" jsonschema:"required,description=Bot token"`
	ChatID  string        `yaml:"chat_id" json:"chat_id" jsonschema:"required,description=Destination chat id or @channel"`
	APIURL  string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.telegram.org,description=Bot API base URL"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-request timeout"`
}

// ScheduleConfig holds polling cadence and per-pass limits
type ScheduleConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=5m,description=Pause between passes in daemon mode"`
	FetchLimit   int           `yaml:"fetch_limit" json:"fetch_limit" jsonschema:"default=50,minimum=1,maximum=100,description=Items requested per listing fetch"`
	SeedCount    int           `yaml:"seed_count" json:"seed_count" jsonschema:"default=10,minimum=1,description=Items processed on the first run for a source"`
	MaxWorkers   int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=1,description=Sources processed concurrently within a pass"`
}

// StateConfig holds cursor persistence settings
type StateConfig struct {
	Path string `yaml:"path" json:"path" jsonschema:"default=dealscout-state.json,description=Cursor state file path"`
}

// ServerConfig holds the optional status server settings
type ServerConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Serve status endpoints in daemon mode"`
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with defaults
func setDefaults(cfg *Config) {
	if cfg.Reddit.UserAgent == "" {
		cfg.Reddit.UserAgent = "dealscout/1.0"
	}
	if cfg.Reddit.TokenURL == "" {
		cfg.Reddit.TokenURL = "https://www.reddit.com/api/v1/access_token"
	}
	if cfg.Reddit.APIURL == "" {
		cfg.Reddit.APIURL = "https://oauth.reddit.com"
	}
	if cfg.Reddit.Timeout == 0 {
		cfg.Reddit.Timeout = 15 * time.Second
	}

	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 300
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.MaxTextLen == 0 {
		cfg.LLM.MaxTextLen = 2000
	}
	if cfg.LLM.ConfidenceThreshold == 0 {
		cfg.LLM.ConfidenceThreshold = 0.7
	}

	if cfg.Catalog.MaxOpenConns == 0 {
		cfg.Catalog.MaxOpenConns = 4
	}
	if cfg.Catalog.MaxIdleConns == 0 {
		cfg.Catalog.MaxIdleConns = 2
	}
	if cfg.Catalog.ConnMaxLifetime == 0 {
		cfg.Catalog.ConnMaxLifetime = time.Hour
	}

	if cfg.Telegram.APIURL == "" {
		cfg.Telegram.APIURL = "https://api.telegram.org"
	}
	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 10 * time.Second
	}

	if cfg.Schedule.PollInterval == 0 {
		cfg.Schedule.PollInterval = 5 * time.Minute
	}
	if cfg.Schedule.FetchLimit == 0 {
		cfg.Schedule.FetchLimit = 50
	}
	if cfg.Schedule.SeedCount == 0 {
		cfg.Schedule.SeedCount = 10
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 1
	}

	if cfg.State.Path == "" {
		cfg.State.Path = "dealscout-state.json"
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	// validate reddit config
	if cfg.Reddit.ClientID == "" {
		return fmt.Errorf("reddit.client_id is required")
	}
	if cfg.Reddit.ClientSecret == "" {
		return fmt.Errorf("reddit.client_secret is required")
	}
	if cfg.Reddit.Username == "" {
		return fmt.Errorf("reddit.username is required")
	}
	if cfg.Reddit.Password == "" {
		return fmt.Errorf("reddit.password is required")
	}

	// validate LLM config
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.ConfidenceThreshold < 0 || cfg.LLM.ConfidenceThreshold > 1 {
		return fmt.Errorf("llm.confidence_threshold must be between 0 and 1")
	}

	// validate catalog config
	if cfg.Catalog.DSN == "" {
		return fmt.Errorf("catalog.dsn is required")
	}

	// validate telegram config
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if cfg.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}

	// validate schedule config
	if cfg.Schedule.PollInterval < 10*time.Second {
		return fmt.Errorf("schedule.poll_interval must be at least 10 seconds")
	}
	if cfg.Schedule.FetchLimit < 1 || cfg.Schedule.FetchLimit > 100 {
		return fmt.Errorf("schedule.fetch_limit must be between 1 and 100")
	}
	if cfg.Schedule.SeedCount < 1 {
		return fmt.Errorf("schedule.seed_count must be at least 1")
	}

	// validate server config
	if cfg.Server.Enabled && cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server.timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
