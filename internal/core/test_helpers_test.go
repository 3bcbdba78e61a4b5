package core

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func identity(id, name string, kind Kind) Identity {
	return Identity{ID: id, DisplayName: name, Kind: kind}
}

// fakeStore is an in-memory MessageStore with optional forced failure.
type fakeStore struct {
	messages map[string][]ChatMessage
	nextID   int
	fail     bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{messages: make(map[string][]ChatMessage)}
}

func (f *fakeStore) PersistMessage(_ context.Context, msg ChatMessage) (string, error) {
	if f.fail {
		return "", context.DeadlineExceeded
	}
	f.nextID++
	msg.PersistedID = strconv.Itoa(f.nextID)
	f.messages[msg.Room] = append(f.messages[msg.Room], msg)
	return msg.PersistedID, nil
}

func (f *fakeStore) LoadRecentMessages(_ context.Context, room string, limit int) ([]ChatMessage, error) {
	msgs := f.messages[room]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}
