// Package markdown reads markdown files confined to a base directory, splits
// their frontmatter block from the body and renders bodies to HTML with
// goldmark.
package markdown
