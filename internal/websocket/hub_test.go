package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := &Client{hub: hub, send: make(chan []byte, 4), ID: "conn-1"}
	c2 := &Client{hub: hub, send: make(chan []byte, 4), ID: "conn-2"}
	hub.register <- c1
	hub.register <- c2

	hub.Publish("PART_ARRIVED", map[string]uint{"inventoryId": 7})

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.send:
			var ev Event
			if err := json.Unmarshal(msg, &ev); err != nil {
				t.Fatalf("Client %s got invalid JSON: %v", c.ID, err)
			}
			if ev.Type != "PART_ARRIVED" {
				t.Errorf("Client %s: expected event type PART_ARRIVED, got %s", c.ID, ev.Type)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Client %s never received the event", c.ID)
		}
	}
}

func TestHubSecondConnectionDoesNotEvictFirst(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := &Client{hub: hub, send: make(chan []byte, 4), ID: "conn-1"}
	c2 := &Client{hub: hub, send: make(chan []byte, 4), ID: "conn-2"}
	hub.register <- c1
	hub.register <- c2

	hub.Publish("JOB_STARTED", map[string]uint{"jobId": 3})

	select {
	case _, ok := <-c1.send:
		if !ok {
			t.Fatal("First connection's send channel was closed by registering a second one")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("First connection never received the event")
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := &Client{hub: hub, send: make(chan []byte, 4), ID: "conn-1"}
	hub.register <- c
	hub.unregister <- c

	select {
	case _, ok := <-c.send:
		if ok {
			t.Fatal("Expected send channel to be closed, got a message instead")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send channel was not closed after unregister")
	}
}
