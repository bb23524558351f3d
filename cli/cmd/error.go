package cmd

import "github.com/ardnew/snip/lang"

// Predefined errors (sentinel values).
var (
	ErrNoFormat       = lang.NewError("no format string given")
	ErrFormatConflict = lang.NewError("more than one format string source given")
	ErrEditDeclined   = lang.NewError("template left unparseable")
)
