package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/kanri/internal/app"
	"github.com/dori/kanri/internal/config"
	"github.com/dori/kanri/internal/ui"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	profile string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:          "kanri",
		Short:        "kanri - a terminal project tracker",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  kanri

  # Use another profile
  kanri --profile work

  # Quick add a card to the first list of a project
  kanri add Home "Fix the sink !important due:tomorrow"
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.profile, "profile", "p", "", "profile name from the config file")

	cmd.AddCommand(
		newAddCmd(opts),
		newPathsCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kanri v%s\n", version)
		},
	}
}

func newPathsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show config, database and log locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.DefaultPaths()
			if err != nil {
				return err
			}
			_, profile, err := config.Init(paths.ConfigDir, opts.profile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "profile:  %s\n", profile.Name)
			fmt.Fprintf(out, "config:   %s\n", paths.ConfigDir)
			fmt.Fprintf(out, "database: %s\n", paths.DBPath(profile))
			fmt.Fprintf(out, "log:      %s\n", paths.LogPath(profile))
			return nil
		},
	}
}

func runTUI(opts *cliOptions) error {
	appOpts, err := app.DefaultOptions()
	if err != nil {
		return err
	}
	appOpts.Profile = opts.profile

	// Create application
	application, err := app.New(appOpts)
	if err != nil {
		return err
	}
	defer application.Close()

	// Create and run program
	p := tea.NewProgram(
		ui.NewRootModel(application),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	if err != nil {
		application.Logger.Error("program exited with error", "err", err)
	}
	return err
}
