package translation

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/tidwall/sjson"
)

// Language tags understood by the endpoint.
const (
	LangChinese = "zh"
	LangEnglish = "en"
)

// ErrEmptyQuery is returned by NewRequest for blank input.
var ErrEmptyQuery = errors.New("empty query")

// requestTemplate holds the fixed fields of every translate request.
const requestTemplate = `{"isAi":false,"corpusIds":[],"needPhonetic":false,"domain":"ai_advanced","detectLang":"","isIncognitoAI":false}`

// Request is one translate request. A retry builds a new Request for the
// same query.
type Request struct {
	Query string
	From  string
	To    string
	// Timestamp is the millisecond nonce sent as milliTimestamp.
	Timestamp int64
}

// NewRequest validates the query and detects the language pair.
func NewRequest(query string, at time.Time) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, ErrEmptyQuery
	}

	from := DetectLanguage(query)
	return Request{
		Query:     query,
		From:      from,
		To:        TargetLanguage(from),
		Timestamp: at.UnixMilli(),
	}, nil
}

// Body encodes the request as the endpoint's JSON body.
func (r Request) Body() ([]byte, error) {
	body := []byte(requestTemplate)
	fields := []struct {
		path  string
		value interface{}
	}{
		{"sseStartTime", r.Timestamp - 100},
		{"query", r.Query},
		{"from", r.From},
		{"to", r.To},
		{"milliTimestamp", r.Timestamp},
	}

	var err error
	for _, f := range fields {
		if body, err = sjson.SetBytes(body, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// DetectLanguage returns LangChinese if text contains a Han character and
// LangEnglish otherwise.
func DetectLanguage(text string) string {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return LangChinese
		}
	}
	return LangEnglish
}

// TargetLanguage returns the other language of the zh/en pair.
func TargetLanguage(from string) string {
	if from == LangEnglish {
		return LangChinese
	}
	return LangEnglish
}
