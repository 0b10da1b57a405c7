// Package token defines the lexical token kinds of the shader fuzzer.
// Invariants:
//   - Token.Text is exactly the source bytes it was scanned from (no normalization).
//   - Concatenating Text over a lexed Seq reproduces the source byte for byte.
//   - Whitespace and comments are ordinary tokens, not trivia attached to neighbours,
//     so passes can splice them like anything else.
//   - Keywords (fn, return, let, ...) are identifiers. Anchors match them by text.
//   - Offset is informational; tokens created by mutation carry Synthetic.
package token
