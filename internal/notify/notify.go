// Package notify computes notification audiences for domain events and
// delivers messages through an injected channel, enforcing the per-day
// skill-match cap.
package notify

import (
	"context"
	"fmt"
)

// Button is an optional inline deep-link button attached to a message.
type Button struct {
	Text string
	URL  string
}

// Channel is the delivery transport contract: send a message to a
// numeric recipient, fire-and-forget. Implementations must isolate each
// call; a failure only affects that recipient.
type Channel interface {
	Send(ctx context.Context, chatID int64, text string, button *Button) error
}

// LinkBuilder builds Mini App deep links for the two addressable
// resource types.
type LinkBuilder struct {
	BotUsername string
	AppSlug     string
}

// ProfileLink deep-links into the app at a profile (user<id>).
func (l LinkBuilder) ProfileLink(userID int64) string {
	return fmt.Sprintf("https://t.me/%s/%s?startapp=user%d", l.BotUsername, l.AppSlug, userID)
}

// PostLink deep-links into the app at a post (p_<id>).
func (l LinkBuilder) PostLink(postID uint) string {
	return fmt.Sprintf("https://t.me/%s/%s?startapp=p_%d", l.BotUsername, l.AppSlug, postID)
}

// Preview returns the first 50 characters of content, with an ellipsis
// when truncated.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= 50 {
		return content
	}
	return string(runes[:50]) + "..."
}
