package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcao2/tasks-research/internal/config"
	"github.com/mcao2/tasks-research/internal/google"
)

// executeCommand runs the root command with args and returns captured output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgFile = ""
		runMaxTasks = 0
		initExample = false
		renderText = false
		renderTitle = "Preview"
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolateEnv points the config at an empty temp dir and clears overrides.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TASKS_RESEARCH_CONFIG", filepath.Join(dir, "config.yaml"))
	for _, key := range []string{"LLM_API_KEY", "GEMINI_API_KEY", "TASK_LIST_ID", "MAX_TASKS", "TASK_DELAY", "HTTP_TIMEOUT"} {
		t.Setenv(key, "")
	}
	return dir
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "tasks-research" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "tasks-research")
	}

	cmdMap := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = true
	}
	for _, name := range []string{"run", "lists", "init", "preview", "render"} {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}

	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("missing persistent --config flag")
	}
}

func TestRunRequiresConfiguration(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand(t, "run")
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	t.Setenv("GEMINI_API_KEY", "key")
	_, err = executeCommand(t, "run")
	if !errors.Is(err, config.ErrMissingTaskList) {
		t.Fatalf("expected ErrMissingTaskList, got %v", err)
	}
}

func TestRunRequiresGoogleCredentials(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("TASK_LIST_ID", "list")
	for _, key := range []string{"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REFRESH_TOKEN", "GOOGLE_ACCESS_TOKEN"} {
		t.Setenv(key, "")
	}

	_, err := executeCommand(t, "run")
	if err == nil || !strings.Contains(err.Error(), "google credentials not configured") {
		t.Fatalf("expected missing credentials error, got %v", err)
	}
}

func TestGoogleClientsShareAuthorization(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	if _, err := newGoogleHTTPClient(ctx, cfg); !errors.Is(err, google.ErrNoCredentials) {
		t.Errorf("newGoogleHTTPClient: expected ErrNoCredentials, got %v", err)
	}
	if _, err := newTaskClient(ctx, cfg); !errors.Is(err, google.ErrNoCredentials) {
		t.Errorf("newTaskClient: expected ErrNoCredentials, got %v", err)
	}
	if _, _, err := newGoogleClients(ctx, cfg); !errors.Is(err, google.ErrNoCredentials) {
		t.Errorf("newGoogleClients: expected ErrNoCredentials, got %v", err)
	}

	cfg.Google.AccessToken = "token"
	taskClient, sender, err := newGoogleClients(ctx, cfg)
	if err != nil {
		t.Fatalf("newGoogleClients failed: %v", err)
	}
	if taskClient == nil || sender == nil {
		t.Error("expected both clients")
	}
}

func TestPreviewRequiresTaskList(t *testing.T) {
	isolateEnv(t)

	_, err := executeCommand(t, "preview")
	if !errors.Is(err, config.ErrMissingTaskList) {
		t.Fatalf("expected ErrMissingTaskList, got %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "report.md")
	if err := os.WriteFile(path, []byte("## Summary\n**key** point\n* one\n* two"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "render", path, "--title", "Quantum computing")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"Subject: Research: Quant...", "<h2>Summary</h2>", "<b>key</b>", "<ul><li>one</li>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = executeCommand(t, "render", path, "--text")
	if err != nil {
		t.Fatalf("render --text failed: %v", err)
	}
	if strings.Contains(out, "<h2>") || !strings.Contains(out, "## Summary") {
		t.Errorf("expected plain text output, got:\n%s", out)
	}
}

func TestRenderMissingFile(t *testing.T) {
	isolateEnv(t)
	if _, err := executeCommand(t, "render", filepath.Join(t.TempDir(), "nope.md")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInitExample(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "custom.yaml")

	out, err := executeCommand(t, "init", "--example", "--config", path)
	if err != nil {
		t.Fatalf("init --example failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("expected path in output, got %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("example config not written: %v", err)
	}
}
