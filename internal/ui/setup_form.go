package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/mcao2/tasks-research/internal/config"
)

// SetupForm collects the settings written by the init command.
type SetupForm struct {
	form   *huh.Form
	cfg    *config.Config
	result *SetupResult
}

// SetupResult holds the raw form values.
type SetupResult struct {
	Provider     string
	APIKey       string
	Model        string
	TaskListID   string
	Recipient    string
	MaxTasks     string
	TaskDelay    string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// NewSetupForm builds a form prefilled from cfg. Apply writes the answers
// back into cfg.
func NewSetupForm(cfg *config.Config) *SetupForm {
	provider := cfg.LLM.Provider
	if provider == "" {
		provider = "gemini"
	}
	result := &SetupResult{
		Provider:     provider,
		APIKey:       cfg.LLM.APIKey,
		Model:        cfg.LLM.Model,
		TaskListID:   cfg.TaskListID,
		Recipient:    cfg.Recipient,
		MaxTasks:     strconv.Itoa(cfg.MaxTasks),
		TaskDelay:    cfg.TaskDelay.String(),
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RefreshToken: cfg.Google.RefreshToken,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("LLM provider").
				Options(
					huh.NewOption("Gemini", "gemini"),
					huh.NewOption("OpenAI", "openai"),
					huh.NewOption("Anthropic", "anthropic"),
					huh.NewOption("Perplexity", "perplexity"),
					huh.NewOption("Ollama (local)", "ollama"),
				).
				Value(&result.Provider),

			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&result.APIKey),

			huh.NewInput().
				Title("Model").
				Description("Leave empty for the provider default").
				Placeholder(config.DefaultModel).
				Value(&result.Model),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Task list ID").
				Description(`Run "tasks-research lists" to find it`).
				Validate(required("task list ID")).
				Value(&result.TaskListID),

			huh.NewInput().
				Title("Report recipient").
				Placeholder("defaults to your Gmail address").
				Value(&result.Recipient),

			huh.NewInput().
				Title("Tasks per run").
				Validate(validatePositiveInt).
				Value(&result.MaxTasks),

			huh.NewInput().
				Title("Pause between tasks").
				Validate(validateDuration).
				Value(&result.TaskDelay),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Google OAuth client ID").
				Value(&result.ClientID),

			huh.NewInput().
				Title("Google OAuth client secret").
				EchoMode(huh.EchoModePassword).
				Value(&result.ClientSecret),

			huh.NewInput().
				Title("Google refresh token").
				EchoMode(huh.EchoModePassword).
				Value(&result.RefreshToken),
		),
	)

	return &SetupForm{form: form, cfg: cfg, result: result}
}

// Run executes the form and applies the answers.
func (sf *SetupForm) Run() error {
	if err := sf.form.Run(); err != nil {
		return err
	}
	return sf.Apply()
}

// Result exposes the form values. Used by tests.
func (sf *SetupForm) Result() *SetupResult {
	return sf.result
}

// Apply copies the form values into the config.
func (sf *SetupForm) Apply() error {
	r := sf.result

	maxTasks, err := strconv.Atoi(strings.TrimSpace(r.MaxTasks))
	if err != nil || maxTasks <= 0 {
		return fmt.Errorf("invalid tasks per run %q", r.MaxTasks)
	}
	delay, err := time.ParseDuration(strings.TrimSpace(r.TaskDelay))
	if err != nil || delay < 0 {
		return fmt.Errorf("invalid pause %q", r.TaskDelay)
	}

	sf.cfg.LLM.Provider = r.Provider
	sf.cfg.LLM.APIKey = strings.TrimSpace(r.APIKey)
	sf.cfg.LLM.Model = strings.TrimSpace(r.Model)
	sf.cfg.TaskListID = strings.TrimSpace(r.TaskListID)
	sf.cfg.Recipient = strings.TrimSpace(r.Recipient)
	sf.cfg.MaxTasks = maxTasks
	sf.cfg.TaskDelay = delay
	sf.cfg.Google.ClientID = strings.TrimSpace(r.ClientID)
	sf.cfg.Google.ClientSecret = strings.TrimSpace(r.ClientSecret)
	sf.cfg.Google.RefreshToken = strings.TrimSpace(r.RefreshToken)
	return nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d < 0 {
		return fmt.Errorf("enter a duration such as 2s")
	}
	return nil
}
