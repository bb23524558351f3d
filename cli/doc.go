// Package cli contains the command line interface for snip.
//
// # Usage
//
// The CLI parses a format string, resolves placeholder values from
// command-line arguments, the environment, presets, and inline defaults,
// and prints one generated line per value combination:
//
//	snip -f 'ping -c <count='3'> <host>' host=a host=b
//
// Subcommands:
//
//   - gen (default): generate lines from --format, --template, piped
//     stdin, or $FORMAT_STRING
//   - edit: create or edit a stored template in $EDITOR
//   - list: list stored templates, or registered codecs with --codecs
//   - env: print resolved bindings as shell export statements
//
// # Configuration
//
// Settings are read from config.yaml in the user configuration directory
// (editor, preset definitions, and default flag values). Stored templates
// are searched in the templates subdirectory and any directories named in
// $SNIP_PATH.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorized text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
