package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector is the 3D algebra type used throughout the engine: particle
// positions, velocities, impulses, and cell coordinates are all Vectors.
// It is a thin alias over gonum's r3.Vec so the engine gets a tested,
// allocation-free vector implementation instead of a hand-rolled one.
type Vector = r3.Vec

// NewVector builds a Vector from components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Dot returns the scalar (dot) product, written r·v in spec.md.
func Dot(a, b Vector) float64 { return r3.Dot(a, b) }

// Cross returns the vector cross product.
func Cross(a, b Vector) Vector { return r3.Cross(a, b) }

// Add returns a+b.
func Add(a, b Vector) Vector { return r3.Add(a, b) }

// Sub returns a-b.
func Sub(a, b Vector) Vector { return r3.Sub(a, b) }

// Scale returns s*v.
func Scale(s float64, v Vector) Vector { return r3.Scale(s, v) }

// Norm2 returns |v|^2, avoiding the sqrt of Norm.
func Norm2(v Vector) float64 { return r3.Dot(v, v) }

// Norm returns |v|.
func Norm(v Vector) float64 { return r3.Norm(v) }

// Quaternion represents a rigid-body orientation (spec.md §3: "optional
// angular velocity and orientation"). Only the operations needed by the
// dumbbell/rigid-body interaction catalogue are provided.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion is the no-rotation orientation.
func IdentityQuaternion() Quaternion { return Quaternion{W: 1} }

// Normalize returns q scaled to unit length; the identity quaternion is
// returned for a (degenerate) zero input rather than dividing by zero.
func (q Quaternion) Normalize() Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Rotate applies q's rotation to v.
func (q Quaternion) Rotate(v Vector) Vector {
	qv := Vector{X: q.X, Y: q.Y, Z: q.Z}
	uv := Cross(qv, v)
	uuv := Cross(qv, uv)
	uv = Scale(2*q.W, uv)
	uuv = Scale(2, uuv)
	return Add(v, Add(uv, uuv))
}

// IntegrateAngular advances an orientation by angular velocity omega over
// dt using the standard small-angle quaternion derivative, then
// renormalizes to counter floating point drift.
func (q Quaternion) IntegrateAngular(omega Vector, dt float64) Quaternion {
	dq := Quaternion{
		W: -0.5 * dt * Dot(omega, Vector{X: q.X, Y: q.Y, Z: q.Z}),
		X: q.W*omega.X*0.5*dt + q.Y*omega.Z*0.5*dt - q.Z*omega.Y*0.5*dt,
		Y: q.W*omega.Y*0.5*dt + q.Z*omega.X*0.5*dt - q.X*omega.Z*0.5*dt,
		Z: q.W*omega.Z*0.5*dt + q.X*omega.Y*0.5*dt - q.Y*omega.X*0.5*dt,
	}
	return Quaternion{
		W: q.W + dq.W,
		X: q.X + dq.X,
		Y: q.Y + dq.Y,
		Z: q.Z + dq.Z,
	}.Normalize()
}
