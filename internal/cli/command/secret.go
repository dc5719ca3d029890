package command

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/formseal-go/internal/cli/output"
	"github.com/yndnr/formseal-go/internal/infra/secretfile"
	"github.com/yndnr/formseal-go/pkg/secret"
)

// secretResult is the JSON shape shared by generate, derive, and open.
type secretResult struct {
	Secret      string `json:"secret"`
	Salt        string `json:"salt,omitempty"`
	Fingerprint string `json:"fingerprint"`
}

// sealResult is the seal command's JSON shape.
type sealResult struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
}

// fingerprintResult is the fingerprint command's JSON shape.
type fingerprintResult struct {
	Fingerprint string `json:"fingerprint"`
}

// SecretCommand returns the secret subcommand group.
func SecretCommand() *cli.Command {
	return &cli.Command{
		Name:  "secret",
		Usage: "Generate and manage signing secrets",
		Subcommands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate a random signing secret",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "length",
						Aliases: []string{"l"},
						Usage:   "Entropy in bytes",
						Value:   secret.DefaultLength,
					},
				},
				Action: func(c *cli.Context) error {
					return runSecretGenerate(c)
				},
			},
			{
				Name:  "derive",
				Usage: "Derive a signing secret from a passphrase and salt",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "passphrase",
						Usage:    "Derivation passphrase",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "salt",
						Usage: "Derivation salt as hex (generated when omitted)",
					},
				},
				Action: func(c *cli.Context) error {
					return runSecretDerive(c)
				},
			},
			{
				Name:  "seal",
				Usage: "Encrypt a secret into a sealed file",
				Flags: []cli.Flag{
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
						Name:     "out",
						Usage:    "Path to write the sealed file to",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "passphrase",
						Usage:   "Sealing passphrase",
						EnvVars: []string{"FORMSEAL_SEAL_PASSPHRASE"},
					},
				},
				Action: func(c *cli.Context) error {
					return runSecretSeal(c)
				},
			},
			{
				Name:  "open",
				Usage: "Decrypt a sealed secret file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the sealed file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "passphrase",
						Usage:   "Sealing passphrase",
						EnvVars: []string{"FORMSEAL_SEAL_PASSPHRASE"},
					},
				},
				Action: func(c *cli.Context) error {
					return runSecretOpen(c)
				},
			},
			{
				Name:  "fingerprint",
				Usage: "Print the fingerprint of a secret",
				Flags: secretSourceFlags(),
				Action: func(c *cli.Context) error {
					return runSecretFingerprint(c)
				},
			},
		},
	}
}

func runSecretGenerate(c *cli.Context) error {
	sec, err := secret.GenerateWithLength(c.Int("length"))
	if err != nil {
		return err
	}

	return writeSecretResult(c, secretResult{
		Secret:      sec,
		Fingerprint: secret.Fingerprint(sec),
	})
}

func runSecretDerive(c *cli.Context) error {
	var salt []byte
	if saltHex := c.String("salt"); saltHex != "" {
		var err error
		salt, err = hex.DecodeString(saltHex)
		if err != nil {
			return fmt.Errorf("salt must be hex: %w", err)
		}
	} else {
		var err error
		salt, err = secret.NewSalt()
		if err != nil {
			return err
		}
	}

	sec, err := secret.FromPassphrase([]byte(c.String("passphrase")), salt)
	if err != nil {
		return err
	}

	return writeSecretResult(c, secretResult{
		Secret:      sec,
		Salt:        hex.EncodeToString(salt),
		Fingerprint: secret.Fingerprint(sec),
	})
}

func runSecretSeal(c *cli.Context) error {
	sec, err := resolveSecret(c)
	if err != nil {
		return err
	}

	passphrase := c.String("passphrase")
	if passphrase == "" {
		return fmt.Errorf("sealing requires --passphrase or FORMSEAL_SEAL_PASSPHRASE")
	}

	out := c.String("out")
	if err := secretfile.Seal(out, []byte(sec), []byte(passphrase)); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	if output.Format(flags.Output) == output.FormatJSON {
		formatter := &output.JSONFormatter{}
		return formatter.Format(c.App.Writer, sealResult{
			Path:        out,
			Fingerprint: secret.Fingerprint(sec),
		})
	}

	fmt.Fprintf(c.App.Writer, "sealed secret written to %s\n", out)
	fmt.Fprintf(c.App.Writer, "fingerprint: %s\n", secret.Fingerprint(sec))
	return nil
}

func runSecretOpen(c *cli.Context) error {
	passphrase := c.String("passphrase")
	if passphrase == "" {
		return fmt.Errorf("opening requires --passphrase or FORMSEAL_SEAL_PASSPHRASE")
	}

	plaintext, err := secretfile.Open(c.String("file"), []byte(passphrase))
	if err != nil {
		return err
	}

	sec := string(plaintext)
	return writeSecretResult(c, secretResult{
		Secret:      sec,
		Fingerprint: secret.Fingerprint(sec),
	})
}

func runSecretFingerprint(c *cli.Context) error {
	sec, err := resolveSecret(c)
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	if output.Format(flags.Output) == output.FormatJSON {
		formatter := &output.JSONFormatter{}
		return formatter.Format(c.App.Writer, fingerprintResult{
			Fingerprint: secret.Fingerprint(sec),
		})
	}

	var pairs output.Pairs
	pairs.Add("Fingerprint", secret.Fingerprint(sec))
	formatter := &output.TextFormatter{}
	return formatter.Format(c.App.Writer, pairs)
}

// writeSecretResult prints a secretResult in the selected format.
func writeSecretResult(c *cli.Context, result secretResult) error {
	flags := ParseGlobalFlags(c)
	if output.Format(flags.Output) == output.FormatJSON {
		formatter := &output.JSONFormatter{}
		return formatter.Format(c.App.Writer, result)
	}

	var pairs output.Pairs
	pairs.Add("Secret", result.Secret)
	if result.Salt != "" {
		pairs.Add("Salt", result.Salt)
	}
	pairs.Add("Fingerprint", result.Fingerprint)
	formatter := &output.TextFormatter{}
	return formatter.Format(c.App.Writer, pairs)
}
