package api

import (
	"encoding/json"
	"net/http"

	"slipstream/internal/sim"
)

// Handler methods for routerHandlers.
// These are used by both the standalone router (for testing) and the full Server.

// vecReq is the wire form of a direction or position on the arena plane.
type vecReq struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v vecReq) vec() sim.Vec3 { return sim.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	// Lock-free snapshot: no engine mutex contention on the poll path.
	writeJSON(w, h.engine.GetSnapshot())
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	snapshot := h.engine.GetSnapshot()
	stats := map[string]interface{}{
		"tick":            snapshot.TickNumber,
		"entityCount":     snapshot.EntityCount,
		"aliveCount":      snapshot.AliveCount,
		"projectileCount": len(snapshot.Projectiles),
		"grenadeCount":    len(snapshot.Grenades),
		"dilation":        snapshot.Dilation,
		"eventLog":        h.engine.GetEventLogStats(),
		"limits":          h.engine.GetLimits(),
	}
	writeJSON(w, stats)
}

func (h *routerHandlers) handleGetArchetypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, sim.AllArchetypes())
}

func (h *routerHandlers) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	if h.frame == nil {
		writeError(w, "frame rendering not enabled", http.StatusNotFound)
		return
	}
	png, err := h.frame.RenderPNG(h.engine.GetSnapshot())
	if err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

type spawnRequest struct {
	Name     string  `json:"name"`
	Pos      vecReq  `json:"pos"`
	Weapon   string  `json:"weapon"`
	Health   float64 `json:"health"`
	TargetID string  `json:"targetId"` // turrets only
}

func (h *routerHandlers) handleSpawnPlayer(w http.ResponseWriter, r *http.Request) {
	var req spawnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	ent, err := h.engine.AddPlayer(req.Name, sim.EntityOptions{
		Pos:       req.Pos.vec(),
		Weapon:    req.Weapon,
		MaxHealth: req.Health,
	})
	if err != nil {
		writeError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{"id": ent.ID, "name": ent.Name})
}

func (h *routerHandlers) handleSpawnEnemy(w http.ResponseWriter, r *http.Request) {
	var req spawnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	ent, err := h.engine.AddEnemy(req.Name, sim.EntityOptions{
		Pos:       req.Pos.vec(),
		Weapon:    req.Weapon,
		MaxHealth: req.Health,
	})
	if err != nil {
		writeError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{"id": ent.ID, "name": ent.Name})
}

func (h *routerHandlers) handleSpawnTurret(w http.ResponseWriter, r *http.Request) {
	var req spawnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	t, err := h.engine.AddTurret(req.Name, sim.EntityOptions{
		Pos:       req.Pos.vec(),
		Weapon:    req.Weapon,
		MaxHealth: req.Health,
	}, req.TargetID)
	if err != nil {
		if t == nil {
			// Entity cap: nothing spawned at all.
			writeError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		// The turret spawns disabled on a missing target; report the fault
		// but include the ID so callers can still inspect it.
		writeJSON(w, map[string]interface{}{
			"id":       t.E.ID,
			"disabled": true,
			"error":    err.Error(),
		})
		return
	}
	writeJSON(w, map[string]interface{}{"id": t.E.ID, "disabled": false})
}

type intentRequest struct {
	EntityID     string  `json:"entityId"`
	Move         *vecReq `json:"move"`
	StopMove     bool    `json:"stopMove"`
	Facing       *vecReq `json:"facing"`
	Fire         bool    `json:"fire"`
	Throw        bool    `json:"throw"`
	CatchHeld    bool    `json:"catchHeld"`
	DilationUp   bool    `json:"dilationUp"`
	DilationDown bool    `json:"dilationDown"`
}

func (req intentRequest) intents() sim.Intents {
	in := sim.Intents{
		StopMove:     req.StopMove,
		Fire:         req.Fire,
		Throw:        req.Throw,
		CatchHeld:    req.CatchHeld,
		DilationUp:   req.DilationUp,
		DilationDown: req.DilationDown,
	}
	if req.Move != nil {
		in.MoveDir = req.Move.vec()
	}
	if req.Facing != nil {
		in.Facing = req.Facing.vec()
	}
	return in
}

func (h *routerHandlers) handleIntent(w http.ResponseWriter, r *http.Request) {
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.EntityID == "" {
		writeError(w, "entityId is required", http.StatusBadRequest)
		return
	}

	h.engine.QueueIntents(req.EntityID, req.intents())
	writeJSON(w, map[string]bool{"queued": true})
}

type dilationRequest struct {
	EntityID string `json:"entityId"`
}

func (h *routerHandlers) handleDilationIncrease(w http.ResponseWriter, r *http.Request) {
	var req dilationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EntityID == "" {
		writeError(w, "entityId is required", http.StatusBadRequest)
		return
	}
	h.engine.QueueIntents(req.EntityID, sim.Intents{DilationUp: true})
	writeJSON(w, map[string]bool{"queued": true})
}

func (h *routerHandlers) handleDilationDecrease(w http.ResponseWriter, r *http.Request) {
	var req dilationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EntityID == "" {
		writeError(w, "entityId is required", http.StatusBadRequest)
		return
	}
	h.engine.QueueIntents(req.EntityID, sim.Intents{DilationDown: true})
	writeJSON(w, map[string]bool{"queued": true})
}

type grenadeRequest struct {
	EntityID string `json:"entityId"`
	Dir      vecReq `json:"dir"`
}

func (h *routerHandlers) handleThrowGrenade(w http.ResponseWriter, r *http.Request) {
	var req grenadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EntityID == "" {
		writeError(w, "entityId is required", http.StatusBadRequest)
		return
	}
	if err := h.engine.ThrowGrenade(req.EntityID, req.Dir.vec()); err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]bool{"thrown": true})
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
