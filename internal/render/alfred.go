package render

import (
	"encoding/json"
	"fmt"
	"io"
)

type alfredIcon struct {
	Path string `json:"path"`
}

type alfredItem struct {
	UID      string      `json:"uid"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle,omitempty"`
	Arg      string      `json:"arg,omitempty"`
	Icon     *alfredIcon `json:"icon,omitempty"`
}

type alfredOutput struct {
	Items []alfredItem `json:"items"`
}

// writeAlfred emits a Script Filter document. Items of several outcomes
// are concatenated; uids get a per-outcome prefix when there is more than
// one.
func (r *Renderer) writeAlfred(w io.Writer, views []View) error {
	out := alfredOutput{Items: []alfredItem{}}
	for i, v := range views {
		prefix := ""
		if len(views) > 1 {
			prefix = fmt.Sprintf("q%03d_", i)
		}
		out.Items = append(out.Items, r.alfredItems(prefix, v)...)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func (r *Renderer) alfredItems(prefix string, v View) []alfredItem {
	icon := &alfredIcon{Path: r.opts.IconPath}
	arg := r.opts.PageURL + v.Outcome.Request.Query

	if v.Error != "" {
		return []alfredItem{{
			UID:      prefix + "error",
			Title:    LabelFailure,
			Subtitle: v.Error,
			Arg:      v.Error,
			Icon:     &alfredIcon{Path: r.opts.ErrorIconPath},
		}}
	}

	if v.Text != "" {
		return []alfredItem{{
			UID:      prefix + "translation",
			Title:    LabelResult,
			Subtitle: v.Text,
			Arg:      v.Text,
			Icon:     icon,
		}}
	}

	var items []alfredItem
	if v.Headline != "" {
		items = append(items, alfredItem{UID: prefix + "main_translation", Title: v.Headline, Arg: arg, Icon: icon})
	}
	for i, line := range v.Details {
		items = append(items, alfredItem{
			UID:   fmt.Sprintf("%sdetail_%03d", prefix, i),
			Title: line,
			Arg:   arg,
			Icon:  icon,
		})
	}
	return items
}
