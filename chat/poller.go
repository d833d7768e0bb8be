// Package chat is the polling community chat client. The backend owns
// ordering and storage; the client just re-fetches the full window on a
// fixed interval. Ticks never wait for the previous fetch, but concurrent
// fetches collapse onto a single in-flight request so a slow response cannot
// pile up duplicate polls.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"agriconnect/backend"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultLimit    = 100
)

// Backend is the slice of the backend client the poller needs.
type Backend interface {
	ChatMessages(ctx context.Context, token string, limit int) ([]backend.ChatMessage, error)
	PostChatMessage(ctx context.Context, token, message, language string) error
}

// Poller keeps a local copy of the chat window fresh.
type Poller struct {
	backend  Backend
	token    string
	interval time.Duration
	limit    int
	logger   *zap.Logger

	group singleflight.Group

	mu       sync.RWMutex
	messages []backend.ChatMessage
	onUpdate func([]backend.ChatMessage)
}

// NewPoller builds a Poller for the given session token.
func NewPoller(b Backend, token string) *Poller {
	return &Poller{
		backend:  b,
		token:    token,
		interval: DefaultInterval,
		limit:    DefaultLimit,
		logger:   zap.NewNop(),
	}
}

// WithInterval overrides the poll interval.
func (p *Poller) WithInterval(d time.Duration) *Poller {
	p.interval = d
	return p
}

// WithLimit overrides the fetch window size.
func (p *Poller) WithLimit(limit int) *Poller {
	p.limit = limit
	return p
}

// WithLogger sets the logger for fetch failures.
func (p *Poller) WithLogger(logger *zap.Logger) *Poller {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// OnUpdate registers the callback invoked with the full message list after
// each successful refresh. Must be set before Run.
func (p *Poller) OnUpdate(fn func([]backend.ChatMessage)) *Poller {
	p.onUpdate = fn
	return p
}

// Run polls until the context is cancelled. An immediate refresh precedes
// the first tick. Each tick fires asynchronously; the singleflight group
// makes overlapping ticks share one request instead of stacking.
func (p *Poller) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.Refresh(ctx)
		}
	}
}

// Refresh fetches the message window once, sharing any in-flight fetch. A
// failed fetch is logged and the last-known messages are kept.
func (p *Poller) Refresh(ctx context.Context) {
	_, err, _ := p.group.Do("poll", func() (any, error) {
		messages, err := p.backend.ChatMessages(ctx, p.token, p.limit)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.messages = messages
		fn := p.onUpdate
		p.mu.Unlock()
		if fn != nil {
			fn(messages)
		}
		return nil, nil
	})
	if err != nil {
		p.logger.Error("load chat messages", zap.Error(err))
	}
}

// Messages returns the last successfully fetched window.
func (p *Poller) Messages() []backend.ChatMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.messages
}

// Send posts a message and refreshes the window. Blank input is a no-op.
func (p *Poller) Send(ctx context.Context, text, language string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if err := p.backend.PostChatMessage(ctx, p.token, text, language); err != nil {
		p.logger.Error("send chat message", zap.Error(err))
		return err
	}
	p.Refresh(ctx)
	return nil
}

// Participants counts distinct senders in the current window.
func (p *Poller) Participants() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	seen := make(map[string]struct{}, len(p.messages))
	for _, m := range p.messages {
		seen[m.UserID] = struct{}{}
	}
	return len(seen)
}
