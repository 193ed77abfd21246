package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcao2/tasks-research/internal/sanitize"
)

// Defaults applied before the config file and environment are read.
const (
	DefaultMaxTasks  = 5
	DefaultTaskDelay = 2 * time.Second
)

// DefaultModel is the model of the default provider. An empty llm.model
// selects the provider's own default.
const DefaultModel = "gemini-2.5-flash"

var (
	// ErrMissingAPIKey means no model API key was configured.
	ErrMissingAPIKey = errors.New("missing 'GEMINI_API_KEY' (or llm.api_key in the config file)")
	// ErrMissingTaskList means no task list ID was configured.
	ErrMissingTaskList = errors.New("missing 'TASK_LIST_ID' (or task_list_id in the config file)")
)

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider string `yaml:"provider"` // "gemini" (default), "openai", "anthropic", "perplexity", "ollama"
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // custom endpoint; defaults per provider
	Model    string `yaml:"model"`
}

// GoogleConfig holds the OAuth credentials for Tasks and Gmail.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	AccessToken  string `yaml:"access_token,omitempty"`
}

// LogConfig controls the run log.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // empty means stderr
}

// Config holds application configuration. It is loaded once per process
// and passed by value afterwards.
type Config struct {
	LLM          LLMConfig     `yaml:"llm"`
	TaskListID   string        `yaml:"task_list_id"`
	MaxTasks     int           `yaml:"max_tasks"`
	TaskDelay    time.Duration `yaml:"task_delay"`
	SkipKeywords []string      `yaml:"skip_keywords"`
	Recipient    string        `yaml:"recipient"` // empty means the authenticated Gmail user
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	Google       GoogleConfig  `yaml:"google"`
	Log          LogConfig     `yaml:"log"`
}

// Default returns a Config with every default applied and no secrets.
func Default() Config {
	return Config{
		MaxTasks:     DefaultMaxTasks,
		TaskDelay:    DefaultTaskDelay,
		SkipKeywords: append([]string(nil), sanitize.DefaultSkipKeywords...),
		Log:          LogConfig{Level: "info", Format: "text"},
	}
}

// Load loads configuration from the default config file and environment
// variables. Environment variables take precedence over config file values.
func Load() (Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path falls
// back to the default location; a missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigPath()
	}
	if err := cfg.loadFromFile(path); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := cfg.loadFromEnv(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings a run cannot start without.
func (c Config) Validate() error {
	if c.LLM.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.TaskListID == "" {
		return ErrMissingTaskList
	}
	if c.MaxTasks <= 0 {
		return fmt.Errorf("max_tasks must be positive, got %d", c.MaxTasks)
	}
	if c.TaskDelay < 0 {
		return fmt.Errorf("task_delay must not be negative, got %s", c.TaskDelay)
	}
	return nil
}

func (c *Config) loadFromFile(path string) error {
	if path == "" {
		return os.ErrNotExist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() error {
	setString := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := os.Getenv(key); v != "" {
				*dst = v
				return
			}
		}
	}

	// First key wins: LLM_API_KEY is the generic override.
	setString(&c.LLM.APIKey, "LLM_API_KEY", "GEMINI_API_KEY")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.TaskListID, "TASK_LIST_ID")
	setString(&c.Recipient, "REPORT_RECIPIENT")
	setString(&c.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&c.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&c.Google.RefreshToken, "GOOGLE_REFRESH_TOKEN")
	setString(&c.Google.AccessToken, "GOOGLE_ACCESS_TOKEN")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.File, "LOG_FILE")

	if v := os.Getenv("MAX_TASKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_TASKS %q: %w", v, err)
		}
		c.MaxTasks = n
	}
	if v := os.Getenv("TASK_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TASK_DELAY %q: %w", v, err)
		}
		c.TaskDelay = d
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		c.HTTPTimeout = d
	}
	if v := os.Getenv("SKIP_KEYWORDS"); v != "" {
		c.SkipKeywords = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getConfigPath returns the path to the config file
// Priority: $TASKS_RESEARCH_CONFIG > ~/.config/tasks-research/config.yaml
func getConfigPath() string {
	if configPath := os.Getenv("TASKS_RESEARCH_CONFIG"); configPath != "" {
		return configPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "tasks-research", "config.yaml")
}

// Path returns the config file location used when none is given.
func Path() string {
	return getConfigPath()
}

// SaveExample writes a commented example config to path unless a file is
// already there.
func SaveExample(path string) error {
	if path == "" {
		path = getConfigPath()
	}
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Already exists, don't overwrite
	}

	return os.WriteFile(path, []byte(exampleConfig), 0600)
}

// Save writes c to path as YAML, replacing any existing file.
func (c Config) Save(path string) error {
	if path == "" {
		path = getConfigPath()
	}
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# tasks-research configuration\n# Secrets can also be supplied through environment variables.\n\n")
	return os.WriteFile(path, append(header, data...), 0600)
}

const exampleConfig = `# tasks-research configuration
# Environment variables override every value below.

# Required: model API key (env GEMINI_API_KEY or LLM_API_KEY)
llm:
  provider: "gemini"        # "gemini", "openai", "anthropic", "perplexity", "ollama", or custom
  api_key: ""
  model: ""                 # empty uses the provider default (gemini-2.5-flash for gemini)
  # base_url: ""            # override endpoint (defaults per provider)

# Required: Google Tasks list to process (env TASK_LIST_ID).
# Run "tasks-research lists" to find the ID.
task_list_id: ""

# Optional: tasks handled per run (default: 5)
max_tasks: 5

# Optional: pause between tasks (default: 2s)
task_delay: 2s

# Optional: titles containing any of these are completed without research
skip_keywords: [book, call, pay, schedule, buy, order, clean, fix]

# Optional: report address; defaults to the authenticated Gmail account
# recipient: "me@example.com"

# Optional: HTTP timeout for every external call (default: none)
# http_timeout: 60s

# Google OAuth credentials for Tasks and Gmail
google:
  client_id: ""
  client_secret: ""
  refresh_token: ""

log:
  level: "info"             # debug, info, warn, error
  format: "text"            # text or json
  # file: ""                # append to this file instead of stderr
`
