// Package cli provides shared plumbing for the miditoy command-line tool:
// configuration loading (~/.miditoy/config.yaml), result output in YAML or
// JSON, request-file parsing for declarative compositions, and the small
// terminal frame the serve command's monitor mode draws.
package cli
