// Package utils carries small cross-cutting helpers, currently the one-shot
// flash notifier the views render their dialogs from.
package utils

import (
	"encoding/json"

	"eventdesk/logger"
	"eventdesk/store"
)

// Notification kinds, mirroring the dialog icon classes.
const (
	KindSuccess  = "success"
	KindError    = "error"
	KindWarning  = "warning"
	KindInfo     = "info"
	KindQuestion = "question"
)

const flashKey = "flash"

// Message is a single user-visible notification.
type Message struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Flash stores at most one pending notification in the persistence adapter
// and hands it out exactly once, on the next page render.
type Flash struct {
	store store.Store
}

func NewFlash(st store.Store) *Flash {
	return &Flash{store: st}
}

// Notify queues a notification, replacing any pending one.
func (f *Flash) Notify(kind, title, text string) {
	raw, err := json.Marshal(Message{Kind: kind, Title: title, Text: text})
	if err != nil {
		return
	}
	if err := f.store.Set(flashKey, string(raw)); err != nil {
		logger.Debugf("could not queue notification: %v", err)
	}
}

// Pop returns the pending notification and clears it, or nil when there is
// none.
func (f *Flash) Pop() *Message {
	raw, ok, err := f.store.Get(flashKey)
	if err != nil || !ok {
		return nil
	}
	_ = f.store.Remove(flashKey)

	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil
	}
	return &msg
}
