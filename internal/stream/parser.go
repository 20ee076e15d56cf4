package stream

import (
	"bytes"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// State is the position of a Parser in its lifecycle.
type State int

const (
	// StateStreaming means the parser still accepts chunks.
	StateStreaming State = iota
	// StateCompleted means the stream ended normally.
	StateCompleted
	// StateAuthRejected means a frame reported StatusAuthRejected.
	StateAuthRejected
	// StateProtocolFailure means a frame reported any other non-zero status.
	StateProtocolFailure
)

func (s State) String() string {
	switch s {
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateAuthRejected:
		return "auth-rejected"
	case StateProtocolFailure:
		return "protocol-failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is the outcome of one stream consumption.
type Result struct {
	Events EventMap
	State  State
	// Status and Reason describe the frame that ended the stream early.
	Status int64
	Reason string
	// Frames counts decoded frames, Skipped counts malformed data lines.
	Frames  int
	Skipped int
}

// Parser turns arbitrarily sized chunks of the response body into an
// EventMap. Bytes after the last line terminator are carried over to the
// next chunk. Once the parser leaves StateStreaming further input is ignored.
type Parser struct {
	carry   []byte
	events  EventMap
	state   State
	status  int64
	reason  string
	frames  int
	skipped int
}

// NewParser returns a parser ready for the first chunk.
func NewParser() *Parser {
	return &Parser{events: make(EventMap)}
}

// Feed consumes one chunk. It returns false once the parser reached a
// terminal state and no more input is wanted.
func (p *Parser) Feed(chunk []byte) bool {
	if p.state != StateStreaming {
		return false
	}

	p.carry = append(p.carry, chunk...)
	for {
		i := bytes.IndexByte(p.carry, '\n')
		if i < 0 {
			break
		}
		line := string(p.carry[:i])
		p.carry = p.carry[i+1:]

		p.processLine(line)
		if p.state != StateStreaming {
			p.carry = nil
			return false
		}
	}
	return true
}

// Finish marks the end of the stream. An unterminated trailing line is
// processed as if it had been terminated.
func (p *Parser) Finish() Result {
	if p.state == StateStreaming {
		if len(p.carry) > 0 {
			tail := string(p.carry)
			p.carry = nil
			p.processLine(tail)
		}
		if p.state == StateStreaming {
			p.state = StateCompleted
		}
	}
	return p.Result()
}

// Result returns the current state of the consumption.
func (p *Parser) Result() Result {
	return Result{
		Events:  p.events,
		State:   p.state,
		Status:  p.status,
		Reason:  p.reason,
		Frames:  p.frames,
		Skipped: p.skipped,
	}
}

func (p *Parser) processLine(line string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, DataPrefix) {
		return
	}
	payload := strings.TrimSpace(line[len(DataPrefix):])
	if payload == "" {
		return
	}

	frame, err := DecodeFrame(payload)
	if err != nil {
		p.skipped++
		log.WithError(err).Debug("stream: skipping data line")
		return
	}
	p.frames++

	switch {
	case frame.Status == StatusAuthRejected:
		p.state = StateAuthRejected
		p.status = frame.Status
		p.reason = frameReason("capability token rejected", frame)
	case frame.Status != StatusOK:
		p.state = StateProtocolFailure
		p.status = frame.Status
		p.reason = frameReason(fmt.Sprintf("server returned status %d", frame.Status), frame)
	case frame.Event != nil:
		p.events[frame.Event.Name()] = frame.Event
	}
}

func frameReason(base string, frame Frame) string {
	if frame.Message == "" {
		return base
	}
	return base + ": " + frame.Message
}
