// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers user-facing messages from the stores to whatever
// surface shows them. Delivery is fire-and-forget: senders never wait for or
// inspect a result.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink receives user-facing notifications.
type Sink interface {
	AddError(message string)
	AddSuccess(message string)
}

// Level distinguishes error notifications from success notifications.
type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// Notification is one delivered message.
type Notification struct {
	ID      string    `json:"id" yaml:"id"`
	Level   Level     `json:"level" yaml:"level"`
	Message string    `json:"message" yaml:"message"`
	At      time.Time `json:"at" yaml:"at"`
}

// Center records notifications in delivery order and echoes each one to an
// optional writer. It is safe for concurrent use.
type Center struct {
	mu    sync.Mutex
	items []Notification
	w     io.Writer
	now   func() time.Time
}

// NewCenter returns a Center that echoes to w. A nil w only records.
func NewCenter(w io.Writer) *Center {
	return &Center{w: w, now: time.Now}
}

// AddError records an error notification.
func (c *Center) AddError(message string) { c.add(LevelError, message) }

// AddSuccess records a success notification.
func (c *Center) AddSuccess(message string) { c.add(LevelSuccess, message) }

func (c *Center) add(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      c.now(),
	}
	c.items = append(c.items, n)
	if c.w != nil {
		fmt.Fprintf(c.w, "%-7s %s\n", level, message)
	}
}

// All returns a copy of every notification recorded so far.
func (c *Center) All() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Errors returns the messages of the recorded error notifications.
func (c *Center) Errors() []string {
	return c.messages(LevelError)
}

// Successes returns the messages of the recorded success notifications.
func (c *Center) Successes() []string {
	return c.messages(LevelSuccess)
}

func (c *Center) messages(level Level) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, n := range c.items {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}

// Clear drops every recorded notification.
func (c *Center) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

type discard struct{}

func (discard) AddError(string)   {}
func (discard) AddSuccess(string) {}

// Discard is a Sink that drops every notification.
var Discard Sink = discard{}
