package field

import "github.com/go-gl/mathgl/mgl64"

// UniformB is a constant-B-field region, e.g. a dipole bending magnet.
// It contributes (0, B) wherever the current position is inside its
// (possibly infinite) region, and (0, 0) elsewhere. Region
// is expressed in the source's own local frame (Center, Orientation),
// so a rotated dipole still gets an axis-aligned containment test.
type UniformB struct {
	Center mgl64.Vec3
	Orientation mgl64.Quat
	Region Box
	B mgl64.Vec3

	enabled bool
}

// NewUniformB builds an enabled uniform-B source over the given region,
// at the origin with identity orientation; callers reposition via
// Center/Orientation.
func NewUniformB(region Box, b mgl64.Vec3) *UniformB {
	return &UniformB{Orientation: mgl64.QuatIdent(), Region: region, B: b, enabled: true}
}

func (u *UniformB) toLocal(pos mgl64.Vec3) mgl64.Vec3 {
	return u.Orientation.Conjugate().Rotate(pos.Sub(u.Center))
}

func (u *UniformB) Evaluate(pos mgl64.Vec3, t float64) Value {
	if !u.Inside(pos) {
		return Zero
	}
	return Value{B: u.B}
}

func (u *UniformB) Bounds() Box {
	return Box{Min: u.Center.Add(u.Region.Min), Max: u.Center.Add(u.Region.Max)}
}

func (u *UniformB) Inside(pos mgl64.Vec3) bool {
	return u.Region.Contains(u.toLocal(pos))
}

func (u *UniformB) Enabled() bool { return u.enabled }

func (u *UniformB) SetEnabled(enabled bool) { u.enabled = enabled }
