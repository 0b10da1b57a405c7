// Package mutate implements the token-level mutation passes.
//
// A Pass maps (tokens, intensity, rng) to a new token sequence. Passes are
// total: when the anchor a pass needs is missing it returns its input
// unchanged. Otherwise it returns a freshly allocated sequence and never
// writes to the one it was given, so a failed or skipped pass is
// indistinguishable from a disabled one.
//
// Inserted or rewritten tokens carry token.Synthetic as their offset.
package mutate
