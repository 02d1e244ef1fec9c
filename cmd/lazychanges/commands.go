// Package main provides CLI subcommand definitions for lazychanges.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/chmouel/lazychanges/internal/config"
	"github.com/chmouel/lazychanges/internal/git"
	"github.com/chmouel/lazychanges/internal/log"
	"github.com/chmouel/lazychanges/internal/models"
	"github.com/chmouel/lazychanges/internal/utils"
	appiCli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// subcommandNames lists the commands already migrated to urfave/cli v3.
var subcommandNames = []string{"list", "discard"}

// runSubcommands dispatches to a v3 subcommand when the first argument
// names one. It reports whether the invocation was handled.
func runSubcommands(args []string) (bool, error) {
	if len(args) < 2 {
		return false, nil
	}
	name := args[1]
	found := false
	for _, n := range subcommandNames {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	root := &appiCli.Command{
		Name:  "lazychanges",
		Usage: "A TUI changes panel for git working trees",
		Flags: []appiCli.Flag{
			&appiCli.StringFlag{
				Name:  "config-file",
				Usage: "Path to configuration file",
			},
			&appiCli.StringSliceFlag{
				Name:    "config",
				Aliases: []string{"C"},
				Usage:   "Override config values (repeatable): --config=key=value",
			},
		},
		Commands: []*appiCli.Command{
			listCommand(),
			discardCommand(),
		},
	}

	err := root.Run(context.Background(), args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return true, err
}

// listCommand returns the list subcommand definition.
func listCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:  "list",
		Usage: "Print the changed files of the working tree",
		Flags: []appiCli.Flag{
			&appiCli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: handleListAction,
	}
}

func discardCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:      "discard",
		Usage:     "Discard changes to the given files",
		ArgsUsage: "<path>...",
		Flags: []appiCli.Flag{
			&appiCli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not ask for confirmation",
			},
		},
		Action: handleDiscardAction,
	}
}

type listedFile struct {
	Path    string `json:"path"`
	OldPath string `json:"old_path,omitempty"`
	Status  string `json:"status"`
}

func handleListAction(ctx context.Context, cmd *appiCli.Command) error {
	_, gitSvc, err := loadCLIEnvironment(cmd)
	if err != nil {
		return err
	}

	if !gitSvc.IsRepository(ctx) {
		return fmt.Errorf("not a git repository")
	}
	status := gitSvc.Status(ctx, "")

	if cmd.Bool("json") {
		out := make([]listedFile, 0, len(status.Files))
		for _, file := range status.Files {
			out = append(out, listedFile{
				Path:    file.Path,
				OldPath: file.OldPath,
				Status:  file.Status.String(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, file := range status.Files {
		path := utils.TruncateMiddle(file.Path, width-16)
		if file.Status == models.StatusRenamed && file.OldPath != "" {
			path = fmt.Sprintf("%s <- %s", path, utils.TruncateMiddle(file.OldPath, width/3))
		}
		fmt.Fprintf(tw, "%s\t%s\n", file.Status.Indicator(), path)
	}
	return tw.Flush()
}

func handleDiscardAction(ctx context.Context, cmd *appiCli.Command) error {
	if cmd.NArg() == 0 {
		return fmt.Errorf("usage: lazychanges discard <path>...")
	}

	cfg, gitSvc, err := loadCLIEnvironment(cmd)
	if err != nil {
		return err
	}

	if !gitSvc.IsRepository(ctx) {
		return fmt.Errorf("not a git repository")
	}
	status := gitSvc.Status(ctx, "")

	byPath := make(map[string]models.ChangedFile, len(status.Files))
	for _, file := range status.Files {
		byPath[file.Path] = file
	}

	var targets []models.ChangedFile
	for _, path := range cmd.Args().Slice() {
		file, ok := byPath[path]
		if !ok {
			return fmt.Errorf("no change recorded for %q", path)
		}
		targets = append(targets, file)
	}

	if cfg.ConfirmDiscard && !cmd.Bool("yes") {
		fmt.Fprintf(os.Stderr, "Discard changes to %d file(s)? [y/N] ", len(targets))
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Aborted")
			return nil
		}
	}

	if !gitSvc.DiscardFiles(ctx, "", targets) {
		return fmt.Errorf("discard failed")
	}
	_ = log.Close()
	return nil
}

// loadCLIEnvironment loads the configuration and builds a git service
// for CLI mode, where notifications go to stderr.
func loadCLIEnvironment(cmd *appiCli.Command) (*config.AppConfig, *git.Service, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := config.ApplyCLIOverrides(cfg, overrides); err != nil {
			return nil, nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}

	return cfg, git.NewService(cliNotify, cliNotifyOnce), nil
}

// cliNotify is a notification callback for git operations in CLI mode.
func cliNotify(message, severity string) {
	if severity == "error" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// cliNotifyOnce is a notification callback for git operations that should only fire once.
func cliNotifyOnce(_, message, severity string) {
	cliNotify(message, severity)
}
