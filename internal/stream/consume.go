package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

const readChunkSize = 1024

// ErrTimeout is returned when the stream did not end before the deadline.
var ErrTimeout = errors.New("stream timed out")

// Consume reads r until end of stream, a terminal frame or a read error,
// feeding every chunk to p. A deadline expiring on ctx while reading is
// reported as ErrTimeout; any other read error is returned as is.
func Consume(ctx context.Context, r io.Reader, p *Parser) (Result, error) {
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 && !p.Feed(buf[:n]) {
			return p.Result(), nil
		}
		if errors.Is(err, io.EOF) {
			return p.Finish(), nil
		}
		if err != nil {
			if isTimeout(ctx, err) {
				return p.Result(), fmt.Errorf("%w after %d frames: %v", ErrTimeout, p.frames, err)
			}
			return p.Result(), fmt.Errorf("reading stream: %w", err)
		}
	}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
