// Package render turns a structured diff into one of three display formats:
// track-changes markup (word-processor style revision marks with addressable
// change entries), inline markup (one marked-up string), and unified diff
// text. Rendering never mutates the diff it is given.
package render

import (
	"errors"
	"fmt"

	"github.com/redlinehq/redline/internal/diff"
	"github.com/redlinehq/redline/internal/id"
)

// Format selects the rendering.
type Format string

const (
	// TrackChanges produces addressable Change entries with inline markers.
	TrackChanges Format = "track_changes"
	// Inline produces a single marked-up string.
	Inline Format = "inline"
	// Unified produces classic unified-diff text with context lines.
	Unified Format = "unified"
)

// ErrUnsupportedFormat is returned by Render for an unknown Format.
var ErrUnsupportedFormat = errors.New("unsupported diff format")

// Markers delimit deleted and inserted spans in track-changes and inline
// renderings.
type Markers struct {
	DeleteOpen  string
	DeleteClose string
	InsertOpen  string
	InsertClose string
}

// DefaultMarkers are the conventional [- -] / {+ +} delimiters.
func DefaultMarkers() Markers {
	return Markers{DeleteOpen: "[-", DeleteClose: "-]", InsertOpen: "{+", InsertClose: "+}"}
}

// Options configures a rendering.
type Options struct {
	// Markers override the default span delimiters. Zero value means defaults.
	Markers Markers

	// ContextLines overrides the context-line count for unified output.
	// Nil falls back to the count recorded in the diff's options; an
	// explicit 0 renders hunks with no context.
	ContextLines *int

	// IDs supplies change identifiers. When nil, changes receive
	// deterministic sequential ids ("change-1", "change-2", ...), so
	// re-rendering the same diff recovers the same ids. Selective
	// application of stored suggestion diffs depends on that stability.
	IDs id.Generator
}

func (o Options) markers() Markers {
	if o.Markers == (Markers{}) {
		return DefaultMarkers()
	}
	return o.Markers
}

func (o Options) context(d *diff.Result) int {
	if o.ContextLines != nil && *o.ContextLines >= 0 {
		return *o.ContextLines
	}
	return d.Metadata.Options.Context()
}

// Formatted is a format-specific rendering of a diff. Changes is populated
// for TrackChanges; Text for Inline and Unified.
type Formatted struct {
	Format  Format   `json:"format"`
	Changes []Change `json:"changes,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Render produces the requested rendering of d.
func Render(d *diff.Result, format Format, opts Options) (*Formatted, error) {
	switch format {
	case TrackChanges:
		return &Formatted{Format: format, Changes: Changes(d, opts)}, nil
	case Inline:
		return &Formatted{Format: format, Text: renderInline(d, opts.markers())}, nil
	case Unified:
		return &Formatted{Format: format, Text: renderUnified(d, opts.context(d))}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
