// Package main provides CLI flag definitions for lazychanges.
package main

import (
	"fmt"
	"strings"

	"github.com/chmouel/lazychanges/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.BoolFlag{
			Name:  "no-icons",
			Usage: "Disable Nerd Font icons in the file list",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=key=value",
		},
	}
}

// completeGlobalFlags provides basic completion for global flags.
func completeGlobalFlags(c *urfavecli.Context) {
	if c.NArg() == 0 {
		for _, cmd := range c.App.Commands {
			fmt.Println(cmd.Name)
		}
		fmt.Println("list")
		fmt.Println("discard")
	}
}

// suggestConfigKeys returns config key suggestions matching the prefix.
//
//nolint:unused // Preserved for custom completion scripts
func suggestConfigKeys(prefix string) []string {
	allKeys := []string{
		"theme", "debug_log", "editor", "show_icons", "auto_refresh",
		"refresh_interval_seconds", "confirm_discard", "ignore_file",
	}

	var matches []string
	for _, key := range allKeys {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			matches = append(matches, key+"=")
		}
	}
	return matches
}

// suggestConfigValues returns value suggestions for a given config key.
//
//nolint:unused // Preserved for custom completion scripts
func suggestConfigValues(key string) []string {
	switch key {
	case "theme":
		return theme.AvailableThemes()
	case "show_icons", "auto_refresh", "confirm_discard":
		return []string{"true", "false"}
	default:
		return nil
	}
}
