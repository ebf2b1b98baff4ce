package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

// setupEnv points config and the database at a temp dir and seeds one
// project.
func setupEnv(t *testing.T) *script.ProjectState {
	t.Helper()
	dir := t.TempDir()
	dsn := filepath.Join(dir, "test.db")
	t.Setenv("HOME", dir)
	t.Setenv("HOOKLINE_DATABASE_DSN", dsn)

	st, err := store.Open(store.DriverSQLite, dsn)
	require.NoError(t, err)
	defer st.Close()

	p := script.NewProject("coffee brewing", script.PlatformTikTok, "beginners")
	p.Hook = &script.ScriptComponent{Kind: script.KindHook, Content: "Your coffee is lying to you.", Finalized: true}
	require.NoError(t, st.Save(context.Background(), p))
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hookline dev"), out)
}

func TestProjectsCommands(t *testing.T) {
	p := setupEnv(t)

	out, err := execute(t, "projects", "list", "--platform", "tiktok")
	require.NoError(t, err)
	assert.Contains(t, out, p.ID)
	assert.Contains(t, out, "coffee brewing")

	out, err = execute(t, "projects", "list", "--platform", "youtube")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved projects.")
	listPlatform = ""

	out, err = execute(t, "projects", "export", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "HOOK:\nYour coffee is lying to you.\n", out)

	_, err = execute(t, "projects", "delete", p.ID)
	require.NoError(t, err)

	_, err = execute(t, "projects", "export", p.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNeedsSetup(t *testing.T) {
	t.Setenv("HOOKLINE_PROVIDER", "")
	t.Setenv("HOOKLINE_API_KEY", "")
	assert.True(t, needsSetup(false))
	assert.False(t, needsSetup(true))

	t.Setenv("HOOKLINE_API_KEY", "sk-test")
	assert.False(t, needsSetup(false))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long ...", truncate("a long project title", 10))
}

func TestChatRequiresProvider(t *testing.T) {
	setupEnv(t)
	t.Setenv("HOOKLINE_PROVIDER", "")
	t.Setenv("HOOKLINE_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.Provider = "openai"
	cfg.Model = "gpt-4o-mini"
	cfg.APIKey = ""
	require.NoError(t, cfg.Save())

	_, err := execute(t, "chat")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrNoProvider)
}

func TestRequireProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
		wantErr  bool
	}{
		{"key missing", "openai", "", true},
		{"unknown provider", "nope", "sk-test", true},
		{"key present", "openai", "sk-test", false},
		{"local provider", "ollama", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Provider = tt.provider
			cfg.APIKey = tt.key
			err := requireProvider(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, llm.ErrNoProvider)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
