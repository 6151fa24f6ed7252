package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"slipstream/internal/sim"
)

// stubEngine implements EngineInterface without a tick loop.
type stubEngine struct {
	snapshot *sim.WorldSnapshot

	queuedID string
	queued   sim.Intents

	thrownID  string
	throwErr  error
	spawnErr  error
	lastSpawn sim.EntityOptions
}

func newStubEngine() *stubEngine {
	return &stubEngine{
		snapshot: &sim.WorldSnapshot{
			TickNumber:  7,
			EntityCount: 2,
			AliveCount:  2,
			Dilation:    sim.DilationSnapshot{Level: 1, TargetScale: 0.5, AppliedScale: 0.6},
		},
	}
}

func (s *stubEngine) GetSnapshot() *sim.WorldSnapshot { return s.snapshot }

func (s *stubEngine) GetEntity(id string) *sim.Entity { return nil }

func (s *stubEngine) GetEventLogStats() map[string]interface{} {
	return map[string]interface{}{"total": uint64(0)}
}

func (s *stubEngine) GetLimits() sim.ResourceLimits { return sim.DefaultLimits }

func (s *stubEngine) AddPlayer(name string, opts sim.EntityOptions) (*sim.Entity, error) {
	if s.spawnErr != nil {
		return nil, s.spawnErr
	}
	s.lastSpawn = opts
	opts.Kind = sim.KindPlayer
	return sim.NewEntity(name, opts), nil
}

func (s *stubEngine) AddEnemy(name string, opts sim.EntityOptions) (*sim.Entity, error) {
	if s.spawnErr != nil {
		return nil, s.spawnErr
	}
	s.lastSpawn = opts
	opts.Kind = sim.KindEnemy
	return sim.NewEntity(name, opts), nil
}

func (s *stubEngine) AddTurret(name string, opts sim.EntityOptions, targetID string) (*sim.Turret, error) {
	if s.spawnErr != nil {
		return nil, s.spawnErr
	}
	opts.Kind = sim.KindTurret
	return sim.NewTurret(sim.NewEntity(name, opts), targetID)
}

func (s *stubEngine) QueueIntents(entityID string, in sim.Intents) {
	s.queuedID = entityID
	s.queued = in
}

func (s *stubEngine) ThrowGrenade(ownerID string, dir sim.Vec3) error {
	if s.throwErr != nil {
		return s.throwErr
	}
	s.thrownID = ownerID
	return nil
}

func newTestRouter(engine EngineInterface) http.Handler {
	return NewRouter(RouterConfig{
		Engine: engine,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			CleanupInterval:   time.Minute,
		},
		DisableLogging: true,
	})
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetState(t *testing.T) {
	engine := newStubEngine()
	router := newTestRouter(engine)

	req := httptest.NewRequest("GET", "/api/state", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap sim.WorldSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.TickNumber != 7 || snap.Dilation.Level != 1 {
		t.Errorf("snapshot = tick %d level %d, want 7/1", snap.TickNumber, snap.Dilation.Level)
	}
}

func TestGetStats(t *testing.T) {
	router := newTestRouter(newStubEngine())

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var stats map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"tick", "entityCount", "dilation", "eventLog", "limits"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("stats missing %q", key)
		}
	}
}

func TestGetArchetypes(t *testing.T) {
	router := newTestRouter(newStubEngine())

	req := httptest.NewRequest("GET", "/api/archetypes", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var archetypes []sim.WeaponArchetype
	if err := json.Unmarshal(rec.Body.Bytes(), &archetypes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(archetypes) != len(sim.Archetypes) {
		t.Errorf("archetypes = %d, want %d", len(archetypes), len(sim.Archetypes))
	}
}

func TestGetFrameWithoutRenderer(t *testing.T) {
	router := newTestRouter(newStubEngine())

	req := httptest.NewRequest("GET", "/api/frame.png", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no renderer is wired", rec.Code)
	}
}

func TestSpawnPlayer(t *testing.T) {
	engine := newStubEngine()
	router := newTestRouter(engine)

	rec := postJSON(t, router, "/api/spawn/player", map[string]interface{}{
		"name":   "hero",
		"pos":    map[string]float64{"x": 30, "z": 30},
		"weapon": "rifle",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] == "" || resp["name"] != "hero" {
		t.Errorf("response = %v", resp)
	}
	if engine.lastSpawn.Weapon != "rifle" || engine.lastSpawn.Pos.X != 30 {
		t.Errorf("spawn options = %+v", engine.lastSpawn)
	}
}

func TestSpawnValidation(t *testing.T) {
	router := newTestRouter(newStubEngine())

	tests := []struct {
		name string
		path string
		body interface{}
		want int
	}{
		{"player without name", "/api/spawn/player", map[string]string{}, http.StatusBadRequest},
		{"enemy without name", "/api/spawn/enemy", map[string]string{}, http.StatusBadRequest},
		{"turret without name", "/api/spawn/turret", map[string]string{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postJSON(t, router, tt.path, tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	// Malformed JSON
	req := httptest.NewRequest("POST", "/api/spawn/player", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}
}

func TestSpawnPlayerEngineFull(t *testing.T) {
	engine := newStubEngine()
	engine.spawnErr = errors.New("engine: entity limit reached")
	router := newTestRouter(engine)

	rec := postJSON(t, router, "/api/spawn/player", map[string]string{"name": "hero"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSpawnTurretEngineFull(t *testing.T) {
	engine := newStubEngine()
	engine.spawnErr = errors.New("engine: entity limit reached")
	router := newTestRouter(engine)

	// At the entity cap nothing spawns: a clean 503, same as the other
	// spawn endpoints, not a disabled-turret response.
	rec := postJSON(t, router, "/api/spawn/turret", map[string]string{"name": "north"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, body %s, want 503", rec.Code, rec.Body.String())
	}
}

func TestSpawnTurretWithoutTarget(t *testing.T) {
	router := newTestRouter(newStubEngine())

	// Missing target is a config fault: the turret spawns disabled and the
	// response carries both the ID and the error.
	rec := postJSON(t, router, "/api/spawn/turret", map[string]string{"name": "north"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["disabled"] != true || resp["id"] == "" || resp["error"] == "" {
		t.Errorf("response = %v", resp)
	}

	rec = postJSON(t, router, "/api/spawn/turret", map[string]string{"name": "south", "targetId": "abc"})
	var ok map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &ok)
	if ok["disabled"] != false {
		t.Errorf("targeted turret response = %v", ok)
	}
}

func TestIntentRouting(t *testing.T) {
	engine := newStubEngine()
	router := newTestRouter(engine)

	rec := postJSON(t, router, "/api/intent", map[string]interface{}{
		"entityId":  "e1",
		"move":      map[string]float64{"x": 1},
		"fire":      true,
		"catchHeld": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if engine.queuedID != "e1" {
		t.Errorf("queued for %q, want e1", engine.queuedID)
	}
	if !engine.queued.Fire || !engine.queued.CatchHeld || engine.queued.MoveDir.X != 1 {
		t.Errorf("queued intents = %+v", engine.queued)
	}

	rec = postJSON(t, router, "/api/intent", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing entityId: status = %d, want 400", rec.Code)
	}
}

func TestDilationEndpoints(t *testing.T) {
	engine := newStubEngine()
	router := newTestRouter(engine)

	postJSON(t, router, "/api/dilation/increase", map[string]string{"entityId": "e1"})
	if !engine.queued.DilationUp {
		t.Error("increase did not queue a DilationUp edge")
	}

	postJSON(t, router, "/api/dilation/decrease", map[string]string{"entityId": "e1"})
	if !engine.queued.DilationDown {
		t.Error("decrease did not queue a DilationDown edge")
	}

	if rec := postJSON(t, router, "/api/dilation/increase", map[string]string{}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing entityId: status = %d, want 400", rec.Code)
	}
}

func TestGrenadeEndpoint(t *testing.T) {
	engine := newStubEngine()
	router := newTestRouter(engine)

	rec := postJSON(t, router, "/api/grenade", map[string]interface{}{
		"entityId": "e1",
		"dir":      map[string]float64{"z": 1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if engine.thrownID != "e1" {
		t.Errorf("thrown for %q, want e1", engine.thrownID)
	}

	engine.throwErr = errors.New("engine: grenade limit reached")
	rec = postJSON(t, router, "/api/grenade", map[string]interface{}{"entityId": "e1"})
	if rec.Code != http.StatusConflict {
		t.Errorf("engine rejection: status = %d, want 409", rec.Code)
	}
}

func TestRootRedirects(t *testing.T) {
	router := newTestRouter(newStubEngine())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/state" {
		t.Errorf("Location = %q, want /api/state", loc)
	}
}

func TestRateLimitRejects(t *testing.T) {
	router := NewRouter(RouterConfig{
		Engine: newStubEngine(),
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
			CleanupInterval:   time.Minute,
		},
		DisableLogging: true,
	})

	limited := false
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/api/state", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("burst of requests was never rate limited")
	}
}
