package tokenprovider

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"codeberg.org/snonux/fanyi/internal/tokenstore"
)

// CommandProvider runs an external helper (for example a Playwright script)
// and reads the token from the first non-empty line of its output.
type CommandProvider struct {
	args    []string
	timeout time.Duration
}

// NewCommandProvider parses the helper command line. Arguments are split on
// whitespace; no shell quoting is applied.
func NewCommandProvider(command string, timeout time.Duration) (*CommandProvider, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, fmt.Errorf("token command is empty")
	}
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &CommandProvider{args: args, timeout: timeout}, nil
}

func (c *CommandProvider) Acquire(ctx context.Context, seed string) (tokenstore.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(append([]string{}, c.args[1:]...), seed)
	cmd := exec.CommandContext(ctx, c.args[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("token command timed out after %v: %w", c.timeout, ctx.Err())
		}
		return "", fmt.Errorf("token command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stderr.Len() > 0 {
		log.Debugf("tokenprovider: helper stderr: %s", strings.TrimSpace(stderr.String()))
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return tokenstore.Token(line), nil
		}
	}
	return "", ErrNoToken
}
