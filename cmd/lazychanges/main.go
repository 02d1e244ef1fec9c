// Package main is the entry point for the lazychanges application.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazychanges/internal/app"
	"github.com/chmouel/lazychanges/internal/buildinfo"
	"github.com/chmouel/lazychanges/internal/config"
	"github.com/chmouel/lazychanges/internal/git"
	"github.com/chmouel/lazychanges/internal/log"
	"github.com/chmouel/lazychanges/internal/utils"
	urfavecli "github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, builtBy)
	buildinfo.Enrich()

	// The list and discard subcommands already run on urfave/cli v3;
	// the rest of the surface is still on v2.
	if handled, err := runSubcommands(os.Args); handled {
		if err != nil {
			os.Exit(1)
		}
		return
	}

	cliApp := &urfavecli.App{
		Name:                 "lazychanges",
		Usage:                "A TUI changes panel for git working trees",
		Version:              buildinfo.Version(),
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			completionCommand(),
		},

		Action: runTUI,

		BashComplete: completeGlobalFlags,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(c *urfavecli.Context) error {
	// Set up debug logging before loading config
	if debugLog := c.String("debug-log"); debugLog != "" {
		path := debugLog
		if expanded, err := utils.ExpandPath(debugLog); err == nil {
			path = expanded
		}
		if err := log.SetFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
		}
	}

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// If debug log wasn't set via flag, check if it's in the config
	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			path := cfg.DebugLog
			if expanded, err := utils.ExpandPath(cfg.DebugLog); err == nil {
				path = expanded
			}
			if err := log.SetFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error opening debug log file from config %q: %v\n", path, err)
			}
		} else {
			// No debug log configured, discard any buffered logs
			_ = log.SetFile("")
		}
	}

	if err := applyThemeConfig(cfg, c.String("theme")); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	if c.Bool("no-icons") {
		cfg.ShowIcons = false
	}

	// Apply CLI config overrides (highest precedence)
	if configOverrides := c.StringSlice("config"); len(configOverrides) > 0 {
		if err := config.ApplyCLIOverrides(cfg, configOverrides); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying config overrides: %v\n", err)
			_ = log.Close()
			return err
		}
	}

	if !insideRepository() {
		fmt.Fprintln(os.Stderr, "lazychanges must be run inside a git repository")
		_ = log.Close()
		return urfavecli.Exit("", 1)
	}

	model := app.NewModel(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = log.Close()
		return err
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}

	return nil
}

func insideRepository() bool {
	svc := git.NewService(func(string, string) {}, func(string, string, string) {})
	return svc.IsRepository(context.Background())
}

// applyThemeConfig applies theme configuration from command line flag.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}

	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q", themeName)
	}

	cfg.Theme = normalized
	return nil
}
