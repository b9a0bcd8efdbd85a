// Package model defines the data structures shared by the rendering pipeline.
package model

// Path represents a file system path.
type Path string

// RenderContext carries the request location a page is rendered for.
// Pathname is always normalized. Search and Hash keep their leading
// delimiter when present.
type RenderContext struct {
	Pathname string
	Search   string
	Hash     string
}
