// Package mdast defines the Markdown document tree consumed by the HTML
// renderer.
//
// The tree mirrors the mdast model: block and inline nodes with owned,
// ordered children, GFM extensions (tables, strikethrough, task items,
// footnotes), math, front-matter blocks, and the reference and MDX kinds that
// the renderer rejects. Trees are usually built by the goldmark adapter in
// internal/pipeline, but any parser can produce them.
package mdast
