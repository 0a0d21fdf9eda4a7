// Package template defines the template engine seam used by the HTML card
// preview. The gotemplate subpackage provides a pongo2-backed implementation.
package template
