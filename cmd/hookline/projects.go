package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sant0-9/hookline/internal/script"
	"github.com/sant0-9/hookline/internal/store"
)

var (
	listPlatform string
	listStatus   string
	listLimit    int

	exportJSON     bool
	exportMarkdown bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage saved projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projects, most recently updated first",
	Args:  cobra.NoArgs,
	RunE:  listProjects,
}

var projectsExportCmd = &cobra.Command{
	Use:   "export ID",
	Short: "Print a project's script",
	Args:  cobra.ExactArgs(1),
	RunE:  exportProject,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a project with its conversations",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteProject,
}

func init() {
	projectsListCmd.Flags().StringVar(&listPlatform, "platform", "", "Only this platform (youtube, tiktok, instagram, general)")
	projectsListCmd.Flags().StringVar(&listStatus, "status", "", "Only this status (in_progress, completed)")
	projectsListCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum number of projects")

	projectsExportCmd.Flags().BoolVar(&exportJSON, "json", false, "Export the full project as JSON")
	projectsExportCmd.Flags().BoolVar(&exportMarkdown, "markdown", false, "Export as a markdown document")
	projectsExportCmd.MarkFlagsMutuallyExclusive("json", "markdown")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsExportCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
}

// withStore runs fn against the configured store.
func withStore(cmd *cobra.Command, fn func(st store.Store) error) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func listProjects(cmd *cobra.Command, args []string) error {
	f := store.Filter{Status: listStatus, Limit: listLimit}
	if listPlatform != "" {
		f.Platform = script.ParsePlatform(listPlatform)
	}

	return withStore(cmd, func(st store.Store) error {
		list, err := st.List(cmd.Context(), f)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No saved projects.")
			return nil
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
			Headers("ID", "TITLE", "PLATFORM", "STATUS", "UPDATED")
		for _, p := range list {
			t.Row(p.ID, truncate(p.Title, 40), string(p.Platform), p.Status, updatedAt(p.UpdatedAt))
		}
		fmt.Fprintln(out, t.Render())
		return nil
	})
}

func updatedAt(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func exportProject(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st store.Store) error {
		p, err := st.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case exportJSON:
			data, err := script.ExportJSON(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		case exportMarkdown:
			fmt.Fprint(out, script.ExportMarkdown(p))
		default:
			text := script.ExportText(p)
			if text == "" {
				return fmt.Errorf("project %s has no script content yet", args[0])
			}
			fmt.Fprintln(out, text)
		}
		return nil
	})
}

func deleteProject(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(st store.Store) error {
		if err := st.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
		return nil
	})
}
