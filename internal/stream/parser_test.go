package stream

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/fanyi/internal/testutil"
)

func sampleStream(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(": keep-alive\n\n")
	b.WriteString(testutil.EventFrame(t, EventTranslating, "list", []map[string]string{{"src": "hello", "dst": "你"}}))
	b.WriteString(testutil.EventFrame(t, EventTranslating, "list", []map[string]string{{"src": "hello", "dst": "你好"}}))
	b.WriteString(testutil.EventFrame(t, EventInterpreting, "content", "你好，世界"))
	b.WriteString(testutil.EventFrame(t, "Finished"))
	b.WriteString("event: message\n\n")
	return b.String()
}

func parseChunks(chunks ...string) Result {
	p := NewParser()
	for _, c := range chunks {
		p.Feed([]byte(c))
	}
	return p.Finish()
}

func TestParser_WholeStream(t *testing.T) {
	res := parseChunks(sampleStream(t))

	if res.State != StateCompleted {
		t.Fatalf("State = %v, want %v", res.State, StateCompleted)
	}
	if res.Frames != 4 {
		t.Errorf("Frames = %d, want 4", res.Frames)
	}

	got, ok := res.Events[EventTranslating].(TranslatingEvent)
	if !ok {
		t.Fatalf("Translating event missing or wrong type: %#v", res.Events[EventTranslating])
	}
	if got.Segments[0].Dst != "你好" {
		t.Errorf("Translating dst = %q, want %q", got.Segments[0].Dst, "你好")
	}

	if ev, ok := res.Events["Finished"].(UnknownEvent); !ok || ev.EventName != "Finished" {
		t.Errorf("Finished event = %#v, want UnknownEvent", res.Events["Finished"])
	}
}

func TestParser_ChunkBoundaryIndependence(t *testing.T) {
	stream := sampleStream(t)
	want := parseChunks(stream)

	for size := 1; size <= len(stream); size++ {
		var chunks []string
		for i := 0; i < len(stream); i += size {
			end := i + size
			if end > len(stream) {
				end = len(stream)
			}
			chunks = append(chunks, stream[i:end])
		}

		got := parseChunks(chunks...)
		if !reflect.DeepEqual(got.Events, want.Events) {
			t.Fatalf("chunk size %d: events differ\n got: %#v\nwant: %#v", size, got.Events, want.Events)
		}
	}

	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		var chunks []string
		rest := stream
		for len(rest) > 0 {
			n := 1 + rng.Intn(len(rest))
			chunks = append(chunks, rest[:n])
			rest = rest[n:]
		}
		got := parseChunks(chunks...)
		if !reflect.DeepEqual(got.Events, want.Events) {
			t.Fatalf("round %d: events differ for chunks %q", round, chunks)
		}
	}
}

func TestParser_MalformedFrameTolerance(t *testing.T) {
	stream := sampleStream(t)
	want := parseChunks(stream)

	frames := strings.SplitAfter(stream, "\n\n")
	bad := []string{
		"data: {not json\n\n",
		"data: [1,2,3]\n\n",
		"data: {\"data\":{\"event\":\"Translating\"}}\n\n",
		"data: {\"errno\":0}\n\n",
	}

	for _, line := range bad {
		for pos := 0; pos <= len(frames); pos++ {
			mixed := append([]string{}, frames[:pos]...)
			mixed = append(mixed, line)
			mixed = append(mixed, frames[pos:]...)

			got := parseChunks(strings.Join(mixed, ""))
			if got.State != StateCompleted {
				t.Fatalf("line %q at %d: State = %v", line, pos, got.State)
			}
			if got.Skipped != 1 {
				t.Errorf("line %q at %d: Skipped = %d, want 1", line, pos, got.Skipped)
			}
			if !reflect.DeepEqual(got.Events, want.Events) {
				t.Fatalf("line %q at %d: events differ", line, pos)
			}
		}
	}
}

func TestParser_LastWriteWins(t *testing.T) {
	stream := testutil.EventFrame(t, "A", "content", "X") + testutil.EventFrame(t, "A", "content", "Y")

	res := parseChunks(stream)
	ev, ok := res.Events["A"].(UnknownEvent)
	if !ok {
		t.Fatalf("event A = %#v, want UnknownEvent", res.Events["A"])
	}
	if !strings.Contains(ev.Raw, `"Y"`) || strings.Contains(ev.Raw, `"X"`) {
		t.Errorf("event A raw = %s, want the second payload", ev.Raw)
	}
	if len(res.Events) != 1 {
		t.Errorf("len(Events) = %d, want 1", len(res.Events))
	}
}

func TestParser_AuthRejected(t *testing.T) {
	stream := testutil.EventFrame(t, EventInterpreting, "content", "early") +
		testutil.StatusFrame(t, StatusAuthRejected, "token invalid") +
		testutil.EventFrame(t, EventTranslating, "list", []map[string]string{{"dst": "late"}})

	p := NewParser()
	if p.Feed([]byte(stream)) {
		t.Error("Feed returned true after an auth rejection")
	}
	if p.Feed([]byte(testutil.EventFrame(t, "B"))) {
		t.Error("Feed accepted input after a terminal state")
	}

	res := p.Finish()
	if res.State != StateAuthRejected {
		t.Fatalf("State = %v, want %v", res.State, StateAuthRejected)
	}
	if res.Status != StatusAuthRejected {
		t.Errorf("Status = %d, want %d", res.Status, StatusAuthRejected)
	}
	if _, ok := res.Events[EventTranslating]; ok {
		t.Error("events after the rejection must not be aggregated")
	}
	if !strings.Contains(res.Reason, "token invalid") {
		t.Errorf("Reason = %q, want server message", res.Reason)
	}
}

func TestParser_ProtocolFailure(t *testing.T) {
	res := parseChunks(testutil.StatusFrame(t, 1001, ""))
	if res.State != StateProtocolFailure {
		t.Fatalf("State = %v, want %v", res.State, StateProtocolFailure)
	}
	if res.Reason != "server returned status 1001" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestParser_UnterminatedTail(t *testing.T) {
	frame := strings.TrimRight(testutil.EventFrame(t, EventInterpreting, "content", "tail"), "\n")

	res := parseChunks(frame[:10], frame[10:])
	ev, ok := res.Events[EventInterpreting].(InterpretingEvent)
	if !ok || ev.Content != "tail" {
		t.Fatalf("Interpreting event = %#v, want content %q", res.Events[EventInterpreting], "tail")
	}
}

func TestParser_IgnoresNonDataLines(t *testing.T) {
	stream := "event: ping\nid: 7\n: comment\n\n   \ndata:\ndata:    \n"
	res := parseChunks(stream)
	if res.State != StateCompleted || res.Frames != 0 || res.Skipped != 0 || len(res.Events) != 0 {
		t.Errorf("unexpected result %#v", res)
	}
}

func TestParser_CRLFLines(t *testing.T) {
	stream := strings.ReplaceAll(testutil.EventFrame(t, EventInterpreting, "content", "crlf"), "\n", "\r\n")
	res := parseChunks(stream)
	if ev, ok := res.Events[EventInterpreting].(InterpretingEvent); !ok || ev.Content != "crlf" {
		t.Errorf("Interpreting event = %#v", res.Events[EventInterpreting])
	}
}
