package kafka

import (
	"testing"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{
		Brokers:  []string{"localhost:9092", "localhost:9093"},
		ClientID: "origination",
	})
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestMessageConstruction(t *testing.T) {
	msg := Message{
		Key:   []byte("session-123"),
		Value: []byte(`{"event_type":"origination.sanction.issued"}`),
		Headers: map[string]string{
			"content-type": "application/json",
		},
	}

	if string(msg.Key) != "session-123" {
		t.Errorf("expected key session-123, got %s", string(msg.Key))
	}
	if msg.Headers["content-type"] != "application/json" {
		t.Errorf("unexpected header: %s", msg.Headers["content-type"])
	}
}

func TestGetOrCreateWriterReuse(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("origination.events")
	w2 := p.getOrCreateWriter("origination.events")
	if w1 != w2 {
		t.Error("expected writer to be reused for the same topic")
	}
	if len(p.writers) != 1 {
		t.Errorf("expected 1 cached writer, got %d", len(p.writers))
	}
}
