package main

import (
	"fmt"
	"os"

	urfavecli "github.com/urfave/cli/v2"
)

const bashCompletion = `#!/usr/bin/env bash

_lazychanges_completion() {
  local cur opts
  COMPREPLY=()
  cur="${COMP_WORDS[COMP_CWORD]}"
  opts=$("${COMP_WORDS[0]}" "${COMP_WORDS[@]:1:$COMP_CWORD}" --generate-bash-completion)
  COMPREPLY=($(compgen -W "${opts}" -- "${cur}"))
  return 0
}

complete -o default -F _lazychanges_completion lazychanges
`

const zshCompletion = `#compdef lazychanges

_lazychanges() {
  local -a opts
  local cur
  cur=${words[-1]}
  opts=("${(@f)$(${words[@]:0:#words[@]-1} ${cur} --generate-bash-completion)}")
  _describe 'values' opts
}

compdef _lazychanges lazychanges
`

// completionCommand returns the completion subcommand definition.
func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh>",
		Action:    handleCompletion,
	}
}

// handleCompletion handles the completion subcommand.
func handleCompletion(c *urfavecli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: lazychanges completion <bash|zsh>")
	}

	shell := c.Args().First()
	switch shell {
	case "bash":
		_, _ = os.Stdout.WriteString(bashCompletion)
	case "zsh":
		_, _ = os.Stdout.WriteString(zshCompletion)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
	return nil
}
