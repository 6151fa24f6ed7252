package sim

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEventLogEmitBeforeStart(t *testing.T) {
	el := NewEventLog()

	if el.EmitSimple(EventTypeTick, 1, "", TickPayload{}) {
		t.Error("emit before Start should be dropped")
	}
	if el.GetTotalCount() != 0 {
		t.Errorf("total = %d, want 0", el.GetTotalCount())
	}
}

func TestEventLogInMemory(t *testing.T) {
	el := NewEventLog()
	if err := el.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer el.Stop()

	for i := 0; i < 5; i++ {
		if !el.EmitSimple(EventTypeSpawn, uint64(i), "", SpawnPayload{EntityID: "e"}) {
			t.Fatalf("emit %d dropped", i)
		}
	}
	if el.GetTotalCount() != 5 {
		t.Errorf("total = %d, want 5", el.GetTotalCount())
	}

	stats := el.GetStats()
	if stats["running"] != true {
		t.Errorf("stats = %v", stats)
	}
}

func TestEventLogWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")

	el := NewEventLog()
	if err := el.Start(path); err != nil {
		t.Fatalf("Start: %v", err)
	}

	el.EmitSimple(EventTypeDamage, 3, "attacker", DamagePayload{
		SourceID: "attacker", TargetID: "victim", Amount: 20, Remaining: 80,
	})
	el.EmitSimple(EventTypeDeath, 4, "victim", DeathPayload{EntityID: "victim"})

	// Stop drains the buffer and flushes the final batch.
	el.Stop()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("bad JSONL line: %v", err)
		}
		events = append(events, ev)
	}
	if len(events) != 2 {
		t.Fatalf("log holds %d events, want 2", len(events))
	}
	if events[0].Type != EventTypeDamage || events[0].TickNum != 3 {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Type != EventTypeDeath || events[1].SourceID != "victim" {
		t.Errorf("second event = %+v", events[1])
	}
	if events[1].Sequence <= events[0].Sequence {
		t.Error("sequence numbers must increase")
	}

	var dmg DamagePayload
	if err := json.Unmarshal(events[0].Payload, &dmg); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if dmg.Amount != 20 || dmg.Remaining != 80 {
		t.Errorf("payload = %+v", dmg)
	}
}

func TestEventLogPerSourceLimit(t *testing.T) {
	el := NewEventLog()
	if err := el.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer el.Stop()

	// One noisy source floods well past its per-second budget; the limiter
	// drops the excess instead of blocking.
	accepted := 0
	for i := 0; i < MaxEventsPerSource*3; i++ {
		if el.EmitSimple(EventTypeDamage, uint64(i), "noisy", DamagePayload{}) {
			accepted++
		}
	}
	if accepted >= MaxEventsPerSource*3 {
		t.Error("per-source limiter never dropped anything")
	}
	if el.GetDroppedCount() == 0 {
		t.Error("dropped counter not incremented")
	}

	// A different source is unaffected by the noisy one.
	if !el.EmitSimple(EventTypeSpawn, 1, "quiet", SpawnPayload{}) {
		t.Error("independent source was throttled")
	}
}

func TestEventLogStopIsIdempotent(t *testing.T) {
	el := NewEventLog()
	if err := el.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		el.Stop()
		el.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop deadlocked")
	}
}
