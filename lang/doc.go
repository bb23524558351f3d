// Package lang implements the format-string language: parsing a template
// into an AST, resolving placeholder bindings from arguments, files, the
// environment, and presets, and expanding the template into output lines.
//
// A template is plain text with three constructs:
//
//   - <name> substitutes a bound value. A placeholder may carry a default
//     (<name='value'>), a repeatable marker (<name...>), and a chain of
//     codecs (<name|b64|squote>).
//   - [ ... ] marks an optional section that is dropped from the output
//     when any placeholder directly inside it has no non-empty value.
//   - \< \> \[ \] produce the bracket characters literally.
//
// When a placeholder is bound to more than one value and is neither
// repeatable nor reduced by a codec, the template expands once per value;
// several such placeholders multiply combinatorially.
package lang
