// Package pipeline turns notes into printable HTML pages.
//
// The stages are:
//   - preprocessing: line endings, front-matter split
//   - parsing: goldmark with GFM, footnotes, TeX math and ==highlight==
//     marks, converted to an mdast tree
//   - rendering: the tree to HTML, with callouts, footnote collection and
//     front-matter properties
//   - link resolution: relative image and link targets to file:// URLs
//   - page assembly: the page template with theme and print stylesheets
//
// Printing to PDF is handled by the printer package.
package pipeline
