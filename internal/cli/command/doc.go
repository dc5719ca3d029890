// Package command provides CLI command definitions for formseal-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, secret resolution
//   - token.go: Token subcommand group (issue, verify, inspect)
//   - secret.go: Secret subcommand group (generate, derive, seal, open, fingerprint)
//
// Every command is a local computation over flags and files; nothing
// here talks to a server. Commands parse flags, call the token or
// secret packages, and format output as text or JSON.
//
// @req RQ-0602
// @design DS-0601
package command
