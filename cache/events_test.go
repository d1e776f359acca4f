package cache

import (
	"context"
	"encoding/json"
	"testing"
)

type recorder struct {
	events   []string
	payloads []interface{}
}

func (r *recorder) Broadcast(event string, payload interface{}) {
	r.events = append(r.events, event)
	r.payloads = append(r.payloads, payload)
}

func TestPublishWithoutRedisBroadcastsLocally(t *testing.T) {
	rec := &recorder{}
	bus := NewEventBus(nil, rec)

	bus.Publish(context.Background(), "company.saved", map[string]string{"id": "1"})

	if len(rec.events) != 1 || rec.events[0] != "company.saved" {
		t.Fatalf("expected one local event, got %v", rec.events)
	}

	// Run returns immediately without Redis
	bus.Run(context.Background())
}

func TestRelay(t *testing.T) {
	rec := &recorder{}
	bus := NewEventBus(nil, rec)

	own, _ := json.Marshal(envelope{Origin: bus.instance, Event: "quarter.saved", Payload: json.RawMessage(`{}`)})
	other, _ := json.Marshal(envelope{Origin: "another-instance", Event: "quarter.imported", Payload: json.RawMessage(`{"quarter":"2024TRI1"}`)})

	bus.relay(own)
	bus.relay(other)
	bus.relay([]byte("not json"))
	bus.relay([]byte(`{"origin":"x"}`))

	if len(rec.events) != 1 {
		t.Fatalf("expected only the foreign event to be relayed, got %v", rec.events)
	}
	if rec.events[0] != "quarter.imported" {
		t.Errorf("unexpected event %s", rec.events[0])
	}
	raw, ok := rec.payloads[0].(json.RawMessage)
	if !ok || string(raw) != `{"quarter":"2024TRI1"}` {
		t.Errorf("payload should be relayed verbatim, got %v", rec.payloads[0])
	}
}

func TestImportStatusStoreWithoutRedis(t *testing.T) {
	store := NewImportStatusStore(nil)
	ctx := context.Background()

	if err := store.Save(ctx, "c1", ImportStatus{Outcome: "success"}); err != nil {
		t.Errorf("Save: %v", err)
	}
	got, err := store.Last(ctx, "c1")
	if err != nil || got != nil {
		t.Errorf("Last() = %v, %v; want nil, nil", got, err)
	}
	if err := store.Forget(ctx, "c1"); err != nil {
		t.Errorf("Forget: %v", err)
	}

	var nilStore *ImportStatusStore
	if err := nilStore.Save(ctx, "c1", ImportStatus{}); err != nil {
		t.Errorf("nil store Save: %v", err)
	}
}
