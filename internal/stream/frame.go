package stream

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

const (
	// DataPrefix marks the lines of the stream that carry a frame.
	DataPrefix = "data:"

	// StatusOK is the frame status of a legitimate payload.
	StatusOK = 0

	// StatusAuthRejected is the frame status sent when the capability
	// token is no longer accepted.
	StatusAuthRejected = 995
)

// ErrMalformedFrame is returned for data lines that cannot be decoded.
var ErrMalformedFrame = errors.New("malformed frame")

// Frame is one decoded data line.
type Frame struct {
	Status  int64
	Message string
	// Event is nil when Status is non-zero or the payload names no event.
	Event Event
}

// DecodeFrame decodes the payload of a data line (prefix already stripped).
func DecodeFrame(payload string) (Frame, error) {
	if !gjson.Valid(payload) {
		return Frame{}, fmt.Errorf("%w: invalid json", ErrMalformedFrame)
	}

	root := gjson.Parse(payload)
	if !root.IsObject() {
		return Frame{}, fmt.Errorf("%w: payload is not an object", ErrMalformedFrame)
	}

	errno := root.Get("errno")
	if errno.Type != gjson.Number {
		return Frame{}, fmt.Errorf("%w: missing errno", ErrMalformedFrame)
	}

	frame := Frame{
		Status:  errno.Int(),
		Message: root.Get("errmsg").String(),
	}
	if frame.Status != StatusOK {
		return frame, nil
	}

	data := root.Get("data")
	if !data.IsObject() {
		return Frame{}, fmt.Errorf("%w: missing data object", ErrMalformedFrame)
	}

	if name := data.Get("event"); name.Exists() {
		frame.Event = decodeEvent(name.String(), data)
	}
	return frame, nil
}

func decodeEvent(name string, data gjson.Result) Event {
	switch name {
	case EventDict:
		return decodeDict(data.Get("dictResult.simple_means"))
	case EventInterpreting:
		return InterpretingEvent{Content: data.Get("content").String()}
	case EventTranslating:
		var segments []Segment
		for _, item := range data.Get("list").Array() {
			segments = append(segments, Segment{
				Src: item.Get("src").String(),
				Dst: item.Get("dst").String(),
			})
		}
		return TranslatingEvent{Segments: segments}
	default:
		return UnknownEvent{EventName: name, Raw: data.Raw}
	}
}

func decodeDict(means gjson.Result) DictEvent {
	if !means.IsObject() {
		return DictEvent{}
	}

	dict := DictEvent{
		Found:    true,
		WordName: means.Get("word_name").String(),
		Exchange: Exchange{
			Third: stringList(means.Get("exchange.word_third")),
			Ing:   stringList(means.Get("exchange.word_ing")),
			Past:  stringList(means.Get("exchange.word_past")),
			Done:  stringList(means.Get("exchange.word_done")),
		},
	}

	for _, sym := range means.Get("symbols").Array() {
		symbol := Symbol{
			PhoneticUK: sym.Get("ph_en").String(),
			PhoneticUS: sym.Get("ph_am").String(),
			WordSymbol: sym.Get("word_symbol").String(),
		}
		for _, p := range sym.Get("parts").Array() {
			part := Part{Part: p.Get("part").String()}
			for _, m := range p.Get("means").Array() {
				if m.IsObject() {
					part.Entries = append(part.Entries, MeanEntry{
						Text:  m.Get("text").String(),
						Part:  m.Get("part").String(),
						Means: stringList(m.Get("means")),
					})
					continue
				}
				part.Means = append(part.Means, m.String())
			}
			symbol.Parts = append(symbol.Parts, part)
		}
		dict.Symbols = append(dict.Symbols, symbol)
	}

	return dict
}

func stringList(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
