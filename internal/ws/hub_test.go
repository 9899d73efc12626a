package ws

import (
	"log/slog"
	"testing"
	"time"
)

func recv(t *testing.T, c *Client, name string) []byte {
	t.Helper()
	select {
	case got := <-c.Send:
		return got
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting %s", name)
	}
	return nil
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c1 := &Client{Send: make(chan []byte, 1)}
	c2 := &Client{Send: make(chan []byte, 1)}
	h.Register(c1)
	h.Register(c2)

	h.Broadcast(EntityEmployee, []byte("hello"))

	if got := recv(t, c1, "c1"); string(got) != "hello" {
		t.Fatalf("c1 got %q", got)
	}
	if got := recv(t, c2, "c2"); string(got) != "hello" {
		t.Fatalf("c2 got %q", got)
	}
}

// cliente inscrito em contact não recebe eventos de employee
func TestHub_EntityFilter(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	contacts := &Client{Entity: EntityContact, Send: make(chan []byte, 2)}
	all := &Client{Send: make(chan []byte, 2)}
	h.Register(contacts)
	h.Register(all)

	h.Broadcast(EntityEmployee, []byte("emp"))
	h.Broadcast(EntityContact, []byte("con"))

	if got := recv(t, contacts, "contacts"); string(got) != "con" {
		t.Fatalf("contacts got %q", got)
	}
	if got := recv(t, all, "all#1"); string(got) != "emp" {
		t.Fatalf("all got %q", got)
	}
	if got := recv(t, all, "all#2"); string(got) != "con" {
		t.Fatalf("all got %q", got)
	}

	select {
	case extra := <-contacts.Send:
		t.Fatalf("unexpected message for contacts: %q", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SendToClient(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	c := &Client{ID: "abc", Send: make(chan []byte, 1)}
	h.Register(c)
	h.SendToClient("abc", []byte("only-you"))

	if got := recv(t, c, "abc"); string(got) != "only-you" {
		t.Fatalf("got %q", got)
	}
}
