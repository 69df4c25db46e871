// Package rules provides the built-in lint rules for propslint.
//
//   - PP000 syntax: parser diagnostics for files that do not parse.
//   - PP001 duplicate-key: a key defined more than once.
//   - PP002 continuation-whitespace: whitespace after a final backslash.
//   - PP003 separator-style: mixed '=' and ':' separators.
//   - PP004 empty-value: a key with no value (disabled by default).
//
// Every rule except PP000 runs only on files the parser accepted.
package rules
