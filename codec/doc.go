// Package codec defines the transformations that can be chained onto a
// placeholder with the pipe operator, e.g. <path|basename|squote>.
//
// A codec is either value-wise (applied to each value of a placeholder
// independently) or reducing (collapses a placeholder's value list to a
// single value). Chains fold left to right; the output of one codec is
// the input of the next.
//
// The built-in set is registered at init and looked up by name with
// [Get]. Codec names referenced in a template are not validated at
// parse time, so an unknown name surfaces only when the placeholder is
// rendered.
package codec
