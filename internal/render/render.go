package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/fanyi/internal/translation"
)

// Format selects the output encoding.
type Format string

const (
	FormatText   Format = "text"
	FormatAlfred Format = "alfred"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// DefaultPageURL is the web translator page that Alfred items open.
const DefaultPageURL = "https://fanyi.baidu.com/mtpe-individual/transText?query="

// Options configures a Renderer.
type Options struct {
	Format Format
	// PageURL is prefixed to the query to build the Alfred item argument.
	PageURL       string
	IconPath      string
	ErrorIconPath string
}

// Renderer writes outcomes in one format.
type Renderer struct {
	opts Options
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatAlfred, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (want text, alfred, json or yaml)", ErrUnknownFormat, name)
	}
}

// New creates a renderer.
func New(opts Options) (*Renderer, error) {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	opts.Format = format
	if opts.PageURL == "" {
		opts.PageURL = DefaultPageURL
	}
	if opts.IconPath == "" {
		opts.IconPath = "icon.png"
	}
	if opts.ErrorIconPath == "" {
		opts.ErrorIconPath = "error.png"
	}
	return &Renderer{opts: opts}, nil
}

// Format returns the renderer's format.
func (r *Renderer) Format() Format {
	return r.opts.Format
}

// Render writes all outcomes to w as a single document.
func (r *Renderer) Render(w io.Writer, outcomes ...translation.Outcome) error {
	views := make([]View, 0, len(outcomes))
	for _, o := range outcomes {
		views = append(views, NewView(o))
	}

	switch r.opts.Format {
	case FormatAlfred:
		return r.writeAlfred(w, views)
	case FormatJSON:
		return writeJSON(w, views)
	case FormatYAML:
		return writeYAML(w, views)
	default:
		return writeText(w, views)
	}
}
