package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/document"
	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/session"
	"github.com/sant0-9/hookline/internal/tui"
)

var (
	projectID    string
	contextFiles []string
	toneFiles    []string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive script assistant",
	Long: `Start the interactive script assistant.

A new project begins with a short wizard (topic, platform, audience,
duration). Use --project to continue a saved project instead.`,
	RunE: runChat,
}

func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&projectID, "project", "", "Resume a saved project by id")
	cmd.Flags().StringArrayVar(&contextFiles, "context", nil, "Context document (.md or .txt) for a new project; repeatable")
	cmd.Flags().StringArrayVar(&toneFiles, "tone", nil, "Tone sample (.md or .txt) for a new project; repeatable")
}

func init() {
	addChatFlags(chatCmd)
}

// needsSetup is true on first run unless the environment already picks
// a provider.
func needsSetup(found bool) bool {
	return !found && os.Getenv("HOOKLINE_PROVIDER") == "" && os.Getenv("HOOKLINE_API_KEY") == ""
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, found, err := loadConfig()
	if err != nil {
		return err
	}
	setup := needsSetup(found)
	if !setup {
		if err := requireProvider(cfg); err != nil {
			return err
		}
	}
	if projectID != "" && (len(contextFiles) > 0 || len(toneFiles) > 0) {
		return fmt.Errorf("--context and --tone apply to new projects only")
	}

	// Loaded into a scratch project to validate paths before the UI starts.
	var docs []*document.Document
	if len(contextFiles) > 0 || len(toneFiles) > 0 {
		docs, err = document.LoadAll(&script.ProjectState{}, contextFiles, toneFiles)
		if err != nil {
			return err
		}
		logger.Info("documents loaded", zap.Int("count", len(docs)))
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	connect := func(cfg *config.Config) (*session.Manager, error) {
		if err := requireProvider(cfg); err != nil {
			return nil, err
		}
		r, _ := newRouter(cfg, st, nil)
		return session.NewManager(st, r, logger), nil
	}

	app := tui.NewApp(tui.Options{
		Config:     cfg,
		NeedsSetup: setup,
		Connect:    connect,
		ProjectID:  projectID,
		Documents:  docs,
		Logger:     logger,
	})
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
