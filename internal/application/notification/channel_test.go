package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelPublish(t *testing.T) {
	t.Run("publishes with severity and expiry", func(t *testing.T) {
		ch := NewChannel(3 * time.Second)

		msg := ch.Publish("Fees saved successfully!", SeveritySuccess)

		assert.Equal(t, "Fees saved successfully!", msg.Text)
		assert.Equal(t, SeveritySuccess, msg.Severity)
		assert.Equal(t, msg.PostedAt.Add(3*time.Second), msg.ExpiresAt)
	})

	t.Run("new message overwrites the displayed one", func(t *testing.T) {
		ch := NewChannel(0)

		ch.Publish("first", SeverityInfo)
		ch.Publish("second", SeverityError)

		current := ch.Current()
		require.NotNil(t, current)
		assert.Equal(t, "second", current.Text)
		assert.Equal(t, SeverityError, current.Severity)
	})

	t.Run("zero ttl falls back to default", func(t *testing.T) {
		ch := NewChannel(0)

		msg := ch.Publish("hello", SeverityInfo)

		assert.Equal(t, DefaultTTL, msg.ExpiresAt.Sub(msg.PostedAt))
	})
}

func TestChannelCurrent(t *testing.T) {
	t.Run("empty slot yields nil", func(t *testing.T) {
		ch := NewChannel(0)

		assert.Nil(t, ch.Current())
	})

	t.Run("expired message is cleared", func(t *testing.T) {
		ch := NewChannel(time.Second)
		clock := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
		ch.now = func() time.Time { return clock }

		ch.Publish("gone soon", SeverityInfo)
		clock = clock.Add(2 * time.Second)

		assert.Nil(t, ch.Current())
	})

	t.Run("unexpired message stays visible", func(t *testing.T) {
		ch := NewChannel(4 * time.Second)

		ch.Publish("still here", SeverityInfo)

		require.NotNil(t, ch.Current())
	})
}

func TestChannelDismiss(t *testing.T) {
	t.Run("explicit dismissal clears the slot", func(t *testing.T) {
		ch := NewChannel(0)
		ch.Publish("bye", SeverityError)

		ch.Dismiss(DismissExplicit)

		assert.Nil(t, ch.Current())
	})

	t.Run("clickaway clears the slot the same way", func(t *testing.T) {
		ch := NewChannel(0)
		ch.Publish("bye", SeverityError)

		ch.Dismiss(DismissClickaway)

		assert.Nil(t, ch.Current())
	})
}
