// Package diag defines the diagnostic model shared by the lexer, the validator
// and the CLI.
//
// Diagnostic is the central record: Severity (Info, Warning, Error), a compact
// numeric Code with a stable string form, a short Message and the source
// position it points at. Producers emit through a Reporter; BagReporter
// collects into a Bag, which supports limits, sorting and deduplication.
//
// Package diag performs no IO. Rendering lives in internal/diagfmt.
package diag
