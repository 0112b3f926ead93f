// Package keyboard implements the optional hotkey trigger: typing the
// configured key on the bot's terminal fires one broadcast. When the process
// has no terminal attached the trigger reports itself unavailable and the
// rest of the bot runs unaffected.
package keyboard

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"

	"enquetebot/internal/core/ports"
)

type Trigger struct {
	in     *os.File
	key    string
	logger *slog.Logger
}

func New(key string, logger *slog.Logger) ports.TriggerSource {
	return &Trigger{
		in:     os.Stdin,
		key:    key,
		logger: logger,
	}
}

func (t *Trigger) Available() bool {
	info, err := t.in.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Run reads lines from the terminal until ctx is done or the configured key
// is typed, then calls fire once and returns.
func (t *Trigger) Run(ctx context.Context, fire func()) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.EqualFold(strings.TrimSpace(line), t.key) {
				t.logger.Info("hotkey trigger fired", "key", t.key)
				fire()
				return
			}
		}
	}
}
