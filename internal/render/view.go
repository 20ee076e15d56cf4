package render

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/fanyi/internal/stream"
	"codeberg.org/snonux/fanyi/internal/translation"
)

// Labels shown to the user. The service is Chinese-facing, so are they.
const (
	LabelResult      = "翻译结果"
	LabelFailure     = "翻译失败"
	LabelInflections = "词形变化:"
)

var inflectionLabels = []struct {
	label string
	forms func(stream.Exchange) []string
}{
	{"第三人称单数", func(e stream.Exchange) []string { return e.Third }},
	{"现在进行时", func(e stream.Exchange) []string { return e.Ing }},
	{"过去式", func(e stream.Exchange) []string { return e.Past }},
	{"过去分词", func(e stream.Exchange) []string { return e.Done }},
}

// View is the format-independent presentation of one outcome.
type View struct {
	Outcome translation.Outcome
	// Headline is the first line of a dictionary result; empty for
	// Chinese words, which have no phonetic headline.
	Headline string
	// Details are the remaining dictionary lines. Empty strings separate
	// pronunciations.
	Details []string
	Text    string
	Error   string
}

// NewView lays out an outcome.
func NewView(o translation.Outcome) View {
	v := View{Outcome: o}

	switch o.Kind {
	case translation.KindDictionary:
		if o.Request.From == translation.LangChinese {
			v.Details = chineseDetails(o.Dictionary)
		} else {
			v.Headline, v.Details = englishDetails(o.Request.Query, o.Dictionary)
		}
	case translation.KindText:
		v.Text = o.Text
	default:
		v.Error = failureMessage(o.Failure)
	}
	return v
}

func englishDetails(query string, d *stream.DictEvent) (string, []string) {
	word := d.WordName
	if word == "" {
		word = query
	}

	var sym stream.Symbol
	if len(d.Symbols) > 0 {
		sym = d.Symbols[0]
	}
	headline := fmt.Sprintf("%s - 英/%s/    美/%s/", word, sym.PhoneticUK, sym.PhoneticUS)

	var details []string
	for _, p := range sym.Parts {
		details = append(details, joinMeans(p.Part, p.Means))
	}

	if !d.Exchange.Empty() {
		details = append(details, LabelInflections)
		for _, l := range inflectionLabels {
			if forms := l.forms(d.Exchange); len(forms) > 0 {
				details = append(details, fmt.Sprintf("%s：%s", l.label, strings.Join(forms, ", ")))
			}
		}
	}
	return headline, details
}

func chineseDetails(d *stream.DictEvent) []string {
	var details []string
	for _, sym := range d.Symbols {
		details = append(details, "["+sym.WordSymbol+"]")
		for _, p := range sym.Parts {
			for _, e := range p.Entries {
				details = append(details, e.Text)
				details = append(details, joinMeans(e.Part, e.Means))
			}
		}
		details = append(details, "")
	}
	return details
}

func failureMessage(f *translation.Failure) string {
	if f == nil {
		return "unknown error"
	}
	if f.Kind == translation.ErrInvalidQuery {
		return f.Reason
	}
	return f.Error()
}

// joinMeans renders a part of speech followed by its meanings.
func joinMeans(part string, means []string) string {
	return strings.TrimSpace(part + " " + strings.Join(means, "；"))
}
