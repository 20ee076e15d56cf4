package render

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/fanyi/internal/stream"
)

// Document is the structured form of an outcome used by the json and
// yaml formats.
type Document struct {
	Query      string      `json:"query" yaml:"query"`
	From       string      `json:"from,omitempty" yaml:"from,omitempty"`
	To         string      `json:"to,omitempty" yaml:"to,omitempty"`
	Kind       string      `json:"kind" yaml:"kind"`
	Event      string      `json:"event,omitempty" yaml:"event,omitempty"`
	Text       string      `json:"text,omitempty" yaml:"text,omitempty"`
	Dictionary *Dictionary `json:"dictionary,omitempty" yaml:"dictionary,omitempty"`
	Lines      []string    `json:"lines,omitempty" yaml:"lines,omitempty"`
	Error      string      `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind  string      `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
}

// Dictionary is the structured form of a dictionary result.
type Dictionary struct {
	Word     string              `json:"word" yaml:"word"`
	Symbols  []Symbol            `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Exchange map[string][]string `json:"exchange,omitempty" yaml:"exchange,omitempty"`
}

// Symbol is one pronunciation with its meanings.
type Symbol struct {
	UK     string   `json:"uk,omitempty" yaml:"uk,omitempty"`
	US     string   `json:"us,omitempty" yaml:"us,omitempty"`
	Pinyin string   `json:"pinyin,omitempty" yaml:"pinyin,omitempty"`
	Parts  []string `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// NewDocument converts a view.
func NewDocument(v View) Document {
	o := v.Outcome
	doc := Document{
		Query: o.Request.Query,
		From:  o.Request.From,
		To:    o.Request.To,
		Kind:  o.Kind.String(),
		Event: o.Event,
		Text:  v.Text,
		Error: v.Error,
	}
	if o.Failure != nil {
		doc.ErrorKind = o.Failure.Kind.String()
	}
	if o.Dictionary != nil {
		doc.Dictionary = newDictionary(o.Dictionary)
		for _, line := range v.Details {
			if line != "" {
				doc.Lines = append(doc.Lines, line)
			}
		}
	}
	return doc
}

func newDictionary(d *stream.DictEvent) *Dictionary {
	dict := &Dictionary{Word: d.WordName}
	for _, s := range d.Symbols {
		sym := Symbol{UK: s.PhoneticUK, US: s.PhoneticUS, Pinyin: s.WordSymbol}
		for _, p := range s.Parts {
			sym.Parts = append(sym.Parts, partLines(p)...)
		}
		dict.Symbols = append(dict.Symbols, sym)
	}

	if !d.Exchange.Empty() {
		dict.Exchange = map[string][]string{}
		add := func(key string, forms []string) {
			if len(forms) > 0 {
				dict.Exchange[key] = forms
			}
		}
		add("third", d.Exchange.Third)
		add("ing", d.Exchange.Ing)
		add("past", d.Exchange.Past)
		add("done", d.Exchange.Done)
	}
	return dict
}

func partLines(p stream.Part) []string {
	if len(p.Entries) == 0 {
		return []string{joinMeans(p.Part, p.Means)}
	}
	lines := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		lines = append(lines, e.Text+": "+joinMeans(e.Part, e.Means))
	}
	return lines
}

func documents(views []View) []Document {
	docs := make([]Document, 0, len(views))
	for _, v := range views {
		docs = append(docs, NewDocument(v))
	}
	return docs
}

// writeJSON emits a single object for one outcome and an array otherwise.
func writeJSON(w io.Writer, views []View) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	docs := documents(views)
	if len(docs) == 1 {
		return enc.Encode(docs[0])
	}
	return enc.Encode(docs)
}

func writeYAML(w io.Writer, views []View) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	var v interface{} = documents(views)
	if len(views) == 1 {
		v = NewDocument(views[0])
	}
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
