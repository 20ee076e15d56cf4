package stream

// Event names emitted by the translate endpoint.
const (
	EventDict         = "GetDictSucceed"
	EventInterpreting = "InterpretingSucceed"
	EventTranslating  = "Translating"
)

// Event is one decoded stream event. The concrete type is one of DictEvent,
// InterpretingEvent, TranslatingEvent or UnknownEvent.
type Event interface {
	Name() string
	isEvent()
}

// EventMap holds the latest event received for each event name.
type EventMap map[string]Event

// DictEvent carries the dictionary breakdown of a single word.
type DictEvent struct {
	// Found is false when the event arrived without a simple_means block.
	Found    bool
	WordName string
	Symbols  []Symbol
	Exchange Exchange
}

// Symbol is one pronunciation entry of a dictionary result.
type Symbol struct {
	PhoneticUK string
	PhoneticUS string
	WordSymbol string // pinyin for Chinese words
	Parts      []Part
}

// Part groups the meanings of a word for one part of speech.
// English words carry plain Means; Chinese words carry Entries.
type Part struct {
	Part    string
	Means   []string
	Entries []MeanEntry
}

// MeanEntry is a structured meaning used by Chinese dictionary results.
type MeanEntry struct {
	Text  string
	Part  string
	Means []string
}

// Exchange lists the inflected forms of an English word.
type Exchange struct {
	Third []string
	Ing   []string
	Past  []string
	Done  []string
}

// Empty reports whether no inflection is known.
func (e Exchange) Empty() bool {
	return len(e.Third) == 0 && len(e.Ing) == 0 && len(e.Past) == 0 && len(e.Done) == 0
}

// InterpretingEvent carries a free-form interpretation of the query.
type InterpretingEvent struct {
	Content string
}

// TranslatingEvent carries the segments of a streaming translation.
type TranslatingEvent struct {
	Segments []Segment
}

// Segment is a source/destination pair of a streaming translation.
type Segment struct {
	Src string
	Dst string
}

// UnknownEvent keeps events this package has no decoder for.
type UnknownEvent struct {
	EventName string
	Raw       string
}

func (DictEvent) Name() string         { return EventDict }
func (InterpretingEvent) Name() string { return EventInterpreting }
func (TranslatingEvent) Name() string  { return EventTranslating }
func (e UnknownEvent) Name() string    { return e.EventName }

func (DictEvent) isEvent()         {}
func (InterpretingEvent) isEvent() {}
func (TranslatingEvent) isEvent()  {}
func (UnknownEvent) isEvent()      {}
