package sim

import "fmt"

// Metrics aggregates whole-system physical observables for final
// reporting (spec.md §5's testable properties: energy/momentum
// conservation, measured temperature).
type Metrics struct {
	EventsProcessed uint64
	SystemTime      float64

	TotalKE       float64 // sum of 1/2 m v^2 across all particles
	TotalMomentum Vector  // sum of m v across all particles
	TotalU        float64 // potential energy; Snapshot does not compute it, so it stays 0
}

// Snapshot recomputes whole-system kinetic energy and momentum directly
// from particle state, used at checkpoints to detect drift rather than
// trusting accumulated deltas (spec.md §8's conservation tests).
func Snapshot(ctx *Context, sched *Scheduler) Metrics {
	m := Metrics{EventsProcessed: sched.EventsProcessed, SystemTime: ctx.SystemTime}
	n := ctx.Store.N()
	for id := 0; id < n; id++ {
		p := ctx.Store.Get(id)
		ctx.Dynamics.UpdateParticle(p, ctx.SystemTime)
		speed2 := Dot(p.Velocity, p.Velocity)
		m.TotalKE += 0.5 * p.Mass * speed2
		m.TotalMomentum = Add(m.TotalMomentum, Scale(p.Mass, p.Velocity))
	}
	return m
}

// Temperature returns the instantaneous temperature implied by
// equipartition over 3N degrees of freedom (k_B = 1, spec.md's reduced
// units).
func (m Metrics) Temperature(n int) float64 {
	if n == 0 {
		return 0
	}
	return 2 * m.TotalKE / (3 * float64(n))
}

// Print writes a human-readable summary to stdout, in the teacher's
// end-of-run report style (sim/metrics.go's Print).
func (m Metrics) Print(n int) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("System time          : %.6f\n", m.SystemTime)
	fmt.Printf("Events processed     : %d\n", m.EventsProcessed)
	fmt.Printf("Total kinetic energy : %.6f\n", m.TotalKE)
	fmt.Printf("Total momentum       : (%.6g, %.6g, %.6g)\n", m.TotalMomentum.X, m.TotalMomentum.Y, m.TotalMomentum.Z)
	fmt.Printf("Temperature          : %.6f\n", m.Temperature(n))
}
