package translation

import (
	"strings"

	"codeberg.org/snonux/fanyi/internal/stream"
)

// ReasonNoUsableResult is the failure reason when no known event arrived.
const ReasonNoUsableResult = "no usable result"

// precedence lists the events Select considers, richest first.
var precedence = []string{
	stream.EventDict,
	stream.EventInterpreting,
	stream.EventTranslating,
}

// Select picks the best result from a completed stream. Events without
// usable content are passed over in favour of the next one.
func Select(req Request, events stream.EventMap) Outcome {
	for _, name := range precedence {
		ev, ok := events[name]
		if !ok {
			continue
		}

		switch e := ev.(type) {
		case stream.DictEvent:
			if !e.Found {
				continue
			}
			dict := e
			return Outcome{Kind: KindDictionary, Request: req, Event: name, Dictionary: &dict}
		case stream.InterpretingEvent:
			if strings.TrimSpace(e.Content) == "" {
				continue
			}
			return Outcome{Kind: KindText, Request: req, Event: name, Text: e.Content}
		case stream.TranslatingEvent:
			if text := joinSegments(e.Segments); text != "" {
				return Outcome{Kind: KindText, Request: req, Event: name, Text: text}
			}
		}
	}
	return failure(req, ErrNoUsableResult, ReasonNoUsableResult, nil)
}

func joinSegments(segments []stream.Segment) string {
	var parts []string
	for _, s := range segments {
		if s.Dst != "" {
			parts = append(parts, s.Dst)
		}
	}
	return strings.Join(parts, "\n")
}
