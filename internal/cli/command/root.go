// Package command provides CLI command definitions for formseal-cli.
//
// It uses urfave/cli/v2 for command parsing. Every command is an
// offline computation; the tool never connects to a server.
package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/formseal-go/internal/infra/buildinfo"
	"github.com/yndnr/formseal-go/internal/infra/secretfile"
)

// App creates the CLI application.
func App() *cli.App {
	info := buildinfo.Get()

	app := &cli.App{
		Name:    "formseal-cli",
		Usage:   "FormSeal token and secret management tool",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			TokenCommand(),
			SecretCommand(),
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json",
			Value:   "text",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Output string // text, json
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Output: c.String("output"),
	}
}

// secretSourceFlags returns the flags naming a signing secret source.
// Commands that need the secret share them so every source works
// everywhere: an inline value, a plain file, or a sealed file.
func secretSourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "secret",
			Aliases: []string{"s"},
			Usage:   "Signing secret",
			EnvVars: []string{"FORMSEAL_SECRET"},
		},
		&cli.StringFlag{
			Name:  "secret-file",
			Usage: "Path to a plain text secret file",
		},
		&cli.StringFlag{
			Name:  "sealed-secret-file",
			Usage: "Path to a sealed secret file",
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Usage:   "Passphrase for sealed secret files",
			EnvVars: []string{"FORMSEAL_SEAL_PASSPHRASE"},
		},
	}
}

// resolveSecret loads the signing secret from the first configured
// source: --secret, then --secret-file, then --sealed-secret-file.
// Surrounding whitespace is trimmed from file contents.
func resolveSecret(c *cli.Context) (string, error) {
	if s := c.String("secret"); s != "" {
		return strings.TrimSpace(s), nil
	}

	if path := c.String("secret-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read secret file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if path := c.String("sealed-secret-file"); path != "" {
		passphrase := c.String("passphrase")
		if passphrase == "" {
			return "", fmt.Errorf("a sealed secret file requires --passphrase or FORMSEAL_SEAL_PASSPHRASE")
		}
		plaintext, err := secretfile.Open(path, []byte(passphrase))
		if err != nil {
			return "", fmt.Errorf("open sealed secret file: %w", err)
		}
		return strings.TrimSpace(string(plaintext)), nil
	}

	return "", fmt.Errorf("a secret is required: set --secret, --secret-file, or --sealed-secret-file")
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
