package notification

import (
	"sync"
	"time"
)

// Severity classifies a transient console message
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DismissReason distinguishes how a message was cleared. A clickaway is not
// an acknowledgment; both reasons only clear the slot.
type DismissReason string

const (
	DismissExplicit  DismissReason = "explicit"
	DismissClickaway DismissReason = "clickaway"
)

// DefaultTTL is how long a message stays visible before auto-dismissal
const DefaultTTL = 3500 * time.Millisecond

// Message is one transient notification
type Message struct {
	Text      string    `json:"text"`
	Severity  Severity  `json:"severity"`
	PostedAt  time.Time `json:"posted_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Channel is a single-slot message queue: publishing overwrites whatever is
// currently displayed, and messages auto-dismiss after the TTL.
type Channel struct {
	mu      sync.Mutex
	current *Message
	ttl     time.Duration
	now     func() time.Time
}

// NewChannel creates a channel with the given TTL; non-positive falls back
// to DefaultTTL
func NewChannel(ttl time.Duration) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{
		ttl: ttl,
		now: time.Now,
	}
}

// Publish replaces the current message and returns the published value
func (c *Channel) Publish(text string, severity Severity) Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	posted := c.now()
	msg := Message{
		Text:      text,
		Severity:  severity,
		PostedAt:  posted,
		ExpiresAt: posted.Add(c.ttl),
	}
	c.current = &msg
	return msg
}

// Current returns the displayed message, or nil once it has expired or been
// dismissed
func (c *Channel) Current() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	if !c.now().Before(c.current.ExpiresAt) {
		c.current = nil
		return nil
	}
	msg := *c.current
	return &msg
}

// Dismiss clears the slot. The reason carries no state consequence; an error
// message dismissed by clicking elsewhere is not treated as acknowledged.
func (c *Channel) Dismiss(reason DismissReason) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = nil
}
