package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tidwall/sjson"
)

// StatusFrame builds a data line carrying only a status and message.
func StatusFrame(t testing.TB, errno int, errmsg string) string {
	t.Helper()

	body, err := sjson.Set(`{}`, "errno", errno)
	if err != nil {
		t.Fatalf("Failed to build frame: %v", err)
	}
	if errmsg != "" {
		if body, err = sjson.Set(body, "errmsg", errmsg); err != nil {
			t.Fatalf("Failed to build frame: %v", err)
		}
	}
	return "data: " + body + "\n\n"
}

// EventFrame builds a successful data line for the named event. fields are
// path/value pairs set below the frame's data object.
func EventFrame(t testing.TB, event string, fields ...interface{}) string {
	t.Helper()

	if len(fields)%2 != 0 {
		t.Fatalf("EventFrame: odd number of field arguments")
	}

	body := `{"errno":0,"data":{}}`
	body, err := sjson.Set(body, "data.event", event)
	if err != nil {
		t.Fatalf("Failed to build frame: %v", err)
	}
	for i := 0; i < len(fields); i += 2 {
		path, ok := fields[i].(string)
		if !ok {
			t.Fatalf("EventFrame: field path %v is not a string", fields[i])
		}
		if body, err = sjson.Set(body, "data."+path, fields[i+1]); err != nil {
			t.Fatalf("Failed to set %s: %v", path, err)
		}
	}
	return "data: " + body + "\n\n"
}

// ErrReader returns a reader whose every Read fails with err.
func ErrReader(err error) io.Reader {
	return errReader{err: err}
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }

// RecordedRequest is a request received by an SSEServer.
type RecordedRequest struct {
	Header http.Header
	Body   []byte
}

// SSEServer answers every request with the next scripted event stream,
// writing and flushing one chunk at a time. The last script repeats.
type SSEServer struct {
	*httptest.Server

	mu       sync.Mutex
	scripts  [][]string
	requests []RecordedRequest
}

// NewSSEServer starts a server that is closed when the test ends.
func NewSSEServer(t testing.TB, scripts ...[]string) *SSEServer {
	t.Helper()

	s := &SSEServer{scripts: scripts}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *SSEServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{Header: r.Header.Clone(), Body: body})
	n := len(s.requests)
	var chunks []string
	if len(s.scripts) > 0 {
		i := n - 1
		if i >= len(s.scripts) {
			i = len(s.scripts) - 1
		}
		chunks = s.scripts[i]
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/event-stream;charset=utf-8")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	for _, chunk := range chunks {
		io.WriteString(w, chunk)
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// Requests returns the requests received so far.
func (s *SSEServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}
