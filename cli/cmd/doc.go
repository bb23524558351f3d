// Package cmd implements the snip subcommands: gen, edit, list, and env.
//
// Commands receive their shared state through [context.Context]: the kong
// parse context from [WithContext] and the runtime settings (editor,
// preset definitions, template search path) from [WithSettings].
package cmd
