// Package locals provides sim.Local implementations: fixed-geometry,
// single-particle capabilities such as walls, grounded on
// original_source/src/dynamics/liouvillean/NewtonL.cpp's
// getWallCollision/runWallCollision (the Liouvillean-side half of a Local
// that a CLWall-style plugin would drive).
package locals

import "github.com/dynamo-sim/dynamo/sim"

// Wall is a flat, fixed, infinite reflecting plane at Point with outward
// unit Normal. Every dynamic particle is tracked, wherever it is (a
// local typically governs one bounding face of a rectangular box).
type Wall struct {
	NameStr    string
	Point      sim.Vector
	Normal     sim.Vector
	Elasticity float64
}

func NewWall(name string, point, normal sim.Vector, elasticity float64) *Wall {
	return &Wall{NameStr: name, Point: point, Normal: normal, Elasticity: elasticity}
}

func (w *Wall) Name() string                    { return w.NameStr }
func (w *Wall) Initialise(ctx *sim.Context)      {}
func (w *Wall) IsInteraction(p *sim.Particle) bool { return p.IsDynamic() }

func (w *Wall) GetEvent(ctx *sim.Context, p *sim.Particle) sim.Event {
	ctx.Dynamics.UpdateParticle(p, ctx.SystemTime)
	dt := ctx.Dynamics.WallCollision(p, ctx.BC, w.Point, w.Normal)
	return sim.Event{Kind: sim.KindLocal, Dt: dt, PluginName: w.NameStr}
}

func (w *Wall) RunEvent(ctx *sim.Context, p *sim.Particle, ev sim.Event) sim.ParticleEventData {
	return ctx.Dynamics.RunWallCollision(p, w.Normal, w.Elasticity)
}

// ValidateState flags a particle that has already penetrated the wall.
func (w *Wall) ValidateState(ctx *sim.Context, p *sim.Particle) int {
	rij := sim.Sub(p.Position, w.Point)
	if sim.Dot(rij, w.Normal) < 0 {
		return 1
	}
	return 0
}

var _ sim.Local = (*Wall)(nil)
