// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// This package handles the preprocessing and conversion stages:
//   - Markdown preprocessing (line ending normalization)
//   - Markdown to HTML conversion via Goldmark, with the embed extension
//     resolving !(url) markers before rendering
//
// Provider loading and option handling live in the root mdembed package.
// This separation keeps the pipeline focused on turning text into HTML.
package pipeline
