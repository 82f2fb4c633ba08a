// Package flash stores one-shot user messages in the signed session cookie
// so they survive the redirect that follows a form post.
package flash

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

// Message is a flash message with its display category.
type Message struct {
	Category string
	Text     string
}

// Add queues a message for the next rendered page.
func Add(c *gin.Context, category, text string) {
	s := sessions.Default(c)
	s.AddFlash(category + "|" + text)
	if err := s.Save(); err != nil {
		_ = c.Error(err)
	}
}

// Pop returns and clears the queued messages.
func Pop(c *gin.Context) []Message {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		_ = c.Error(err)
	}

	msgs := make([]Message, 0, len(raw))
	for _, r := range raw {
		str, ok := r.(string)
		if !ok {
			continue
		}
		category, text, found := strings.Cut(str, "|")
		if !found {
			category, text = Info, str
		}
		msgs = append(msgs, Message{Category: category, Text: text})
	}
	return msgs
}
