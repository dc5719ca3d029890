// Package output provides output formatting for FormSeal CLI.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - text.go: aligned key/value rendering for humans
//   - json.go: JSON output formatting for scripting
//
// Commands build an ordered Pairs value for text output and pass their
// JSON-tagged result structs unchanged for json output.
//
// @design DS-0601
package output
