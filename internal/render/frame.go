// Package render draws top-down debug frames of the simulation. The output
// backs GET /api/frame.png; it is a diagnostic view, not a game client.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"slipstream/internal/sim"

	"github.com/fogleman/gg"
)

// Renderer draws WorldSnapshots onto a fixed-size canvas. Safe for
// concurrent use; rendering is serialized on an internal mutex since the
// gg context is stateful.
type Renderer struct {
	mu     sync.Mutex
	dc     *gg.Context
	width  int
	height int

	arenaSize float64
	scale     float64 // pixels per meter
	offsetX   float64
	offsetY   float64
}

// NewRenderer creates a renderer for an arenaSize x arenaSize world.
func NewRenderer(width, height int, arenaSize float64) *Renderer {
	margin := 40.0
	usable := float64(width) - 2*margin
	if h := float64(height) - 2*margin; h < usable {
		usable = h
	}
	return &Renderer{
		dc:        gg.NewContext(width, height),
		width:     width,
		height:    height,
		arenaSize: arenaSize,
		scale:     usable / arenaSize,
		offsetX:   margin,
		offsetY:   margin,
	}
}

// px maps world X/Z coordinates to canvas pixels.
func (r *Renderer) px(x, z float64) (float64, float64) {
	return r.offsetX + x*r.scale, r.offsetY + z*r.scale
}

// RenderPNG draws the snapshot and returns an encoded PNG.
func (r *Renderer) RenderPNG(snap *sim.WorldSnapshot) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dc := r.dc

	r.drawBackground(dc)
	r.drawArena(dc)
	r.drawWakes(dc, snap)
	r.drawGrenades(dc, snap)
	r.drawProjectiles(dc, snap)
	r.drawEntities(dc, snap)
	r.drawHUD(dc, snap)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawBackground(dc *gg.Context) {
	dc.SetColor(color.RGBA{12, 12, 28, 255})
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	dc.Fill()
}

func (r *Renderer) drawArena(dc *gg.Context) {
	x0, y0 := r.px(0, 0)
	side := r.arenaSize * r.scale

	dc.SetColor(color.RGBA{22, 22, 40, 255})
	dc.DrawRectangle(x0, y0, side, side)
	dc.Fill()

	// Meter grid every 10m
	dc.SetColor(color.RGBA{30, 30, 45, 255})
	dc.SetLineWidth(1)
	for m := 10.0; m < r.arenaSize; m += 10 {
		gx, _ := r.px(m, 0)
		dc.DrawLine(gx, y0, gx, y0+side)
		dc.Stroke()
		_, gy := r.px(0, m)
		dc.DrawLine(x0, gy, x0+side, gy)
		dc.Stroke()
	}

	dc.SetColor(color.RGBA{70, 70, 110, 255})
	dc.SetLineWidth(2)
	dc.DrawRectangle(x0, y0, side, side)
	dc.Stroke()
}

func (r *Renderer) drawWakes(dc *gg.Context, snap *sim.WorldSnapshot) {
	for _, p := range snap.WakePoints {
		x, y := r.px(p.X, p.Z)
		if p.Danger {
			dc.SetColor(color.RGBA{255, 120, 40, 180})
		} else {
			dc.SetColor(color.RGBA{90, 160, 255, 120})
		}
		dc.DrawCircle(x, y, 3)
		dc.Fill()
	}

	for _, w := range snap.Shockwaves {
		x, y := r.px(w.X, w.Z)
		dc.SetColor(color.RGBA{255, 200, 60, 220})
		dc.SetLineWidth(2)
		dc.DrawCircle(x, y, w.Radius*r.scale)
		dc.Stroke()
	}
}

func (r *Renderer) drawGrenades(dc *gg.Context, snap *sim.WorldSnapshot) {
	for _, g := range snap.Grenades {
		x, y := r.px(g.X, g.Z)
		dc.SetColor(color.RGBA{90, 220, 90, 255})
		dc.DrawCircle(x, y, 4)
		dc.Fill()
		// Fuse ring shrinks toward detonation
		if g.FuseLeft > 0 {
			dc.SetColor(color.RGBA{90, 220, 90, 120})
			dc.SetLineWidth(1)
			dc.DrawCircle(x, y, 4+g.FuseLeft*3)
			dc.Stroke()
		}
	}
}

func (r *Renderer) drawProjectiles(dc *gg.Context, snap *sim.WorldSnapshot) {
	for _, p := range snap.Projectiles {
		x, y := r.px(p.X, p.Z)
		if p.Held {
			dc.SetColor(color.RGBA{120, 255, 255, 255})
		} else {
			dc.SetColor(color.RGBA{255, 240, 160, 255})
		}
		dc.DrawCircle(x, y, 2.5)
		dc.Fill()
	}
}

func (r *Renderer) drawEntities(dc *gg.Context, snap *sim.WorldSnapshot) {
	radius := sim.EntityRadius * r.scale
	if radius < 4 {
		radius = 4
	}

	for _, e := range snap.Entities {
		x, y := r.px(e.X, e.Z)

		var body color.RGBA
		switch e.Kind {
		case "player":
			body = color.RGBA{80, 200, 255, 255}
		case "turret":
			body = color.RGBA{200, 120, 255, 255}
		default:
			body = color.RGBA{255, 90, 90, 255}
		}
		if e.IsDead {
			body.A = 70
		}

		dc.SetColor(body)
		dc.DrawCircle(x, y, radius)
		dc.Fill()

		// Facing tick
		if !e.IsDead {
			dc.SetColor(color.White)
			dc.SetLineWidth(2)
			dc.DrawLine(x, y, x+e.FacingX*radius*1.6, y+e.FacingZ*radius*1.6)
			dc.Stroke()
		}

		// Health bar
		if !e.IsDead && e.MaxHP > 0 {
			frac := e.HP / e.MaxHP
			barW := radius * 2
			dc.SetColor(color.RGBA{40, 40, 40, 200})
			dc.DrawRectangle(x-radius, y-radius-8, barW, 4)
			dc.Fill()
			dc.SetColor(color.RGBA{90, 220, 90, 255})
			dc.DrawRectangle(x-radius, y-radius-8, barW*frac, 4)
			dc.Fill()
		}
	}
}

func (r *Renderer) drawHUD(dc *gg.Context, snap *sim.WorldSnapshot) {
	d := snap.Dilation

	dc.SetColor(color.RGBA{18, 18, 24, 245})
	dc.DrawRoundedRectangle(8, 8, 230, 64, 6)
	dc.Fill()

	dc.SetColor(color.RGBA{0, 212, 255, 255})
	dc.DrawRoundedRectangle(8, 8, 4, 64, 2)
	dc.Fill()

	dc.SetColor(color.White)
	dc.DrawString(fmt.Sprintf("tick %d  L%d  x%.2f", snap.TickNumber, d.Level, d.AppliedScale), 22, 28)
	dc.DrawString(fmt.Sprintf("entities %d/%d alive", snap.EntityCount, snap.AliveCount), 22, 44)

	// Focus bar
	frac := 0.0
	if d.FocusMax > 0 {
		frac = d.Focus / d.FocusMax
	}
	dc.SetColor(color.RGBA{40, 40, 40, 255})
	dc.DrawRectangle(22, 54, 200, 8)
	dc.Fill()
	dc.SetColor(color.RGBA{0, 212, 255, 255})
	dc.DrawRectangle(22, 54, 200*frac, 8)
	dc.Fill()
}
