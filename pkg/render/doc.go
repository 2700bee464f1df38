// Package render holds the vocabulary shared by the procedural renderer.
//
// # Overview
//
// A render turns one or more design DNA descriptors into pixels on a
// caller-owned surface. The work is split across subpackages:
//
//   - [classify]: resolves a [Kind] from a descriptor
//   - [pattern]: one drawing program per [Kind]
//   - [postfx]: full-frame grain and scanline transforms
//   - [surface]: the caller-owned pixel buffer and its per-render canvas
//   - [compose]: thumbnail, single and hybrid orchestration
//   - [analyze]: statistics and palettes of finished frames
//
// Control flows in that order: the surface prepares a scaled canvas, the
// classifier picks a kind, the compositor runs the matching program and then
// any post-processing, and the committed frame is ready for export.
//
// # Tiers
//
// [TierThumbnail] is the cheap tier: tighter pattern steps, a name label and
// no post-processing. [TierFull] uses wider steps and applies the
// post-processing selected by the descriptor's texture tags.
//
// [classify]: github.com/Reasonofmoon/darlkom-banana/pkg/render/classify
// [pattern]: github.com/Reasonofmoon/darlkom-banana/pkg/render/pattern
// [postfx]: github.com/Reasonofmoon/darlkom-banana/pkg/render/postfx
// [surface]: github.com/Reasonofmoon/darlkom-banana/pkg/render/surface
// [compose]: github.com/Reasonofmoon/darlkom-banana/pkg/render/compose
// [analyze]: github.com/Reasonofmoon/darlkom-banana/pkg/render/analyze
package render
