// Package preset computes reserved placeholder values.
//
// Presets are placeholder names whose values are produced by the program
// rather than the user: the built-in date and date_time presets, plus any
// definitions from the configuration file, whose values are expr-lang
// expressions evaluated against a small built-in environment (hostname,
// user, cwd, env, date).
//
// Preset values are computed once per invocation so every output line of
// a single run sees the same values. A name reserved by a preset cannot
// also be bound on the command line.
package preset
