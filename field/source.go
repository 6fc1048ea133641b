package field

import "github.com/go-gl/mathgl/mgl64"

// Source is the capability trait every field source implements: evaluate
// the field at a position and time, report a bounding box, test
// containment, and report whether the source currently contributes.
// A narrow interface rather than a class hierarchy, since the set of
// concrete sources is small and closed.
type Source interface {
	// Evaluate returns the field contribution at pos at time t, or Zero
	// when pos is outside the source's region. It does not check Enabled;
	// callers do that themselves (the Manager does this for superposition).
	Evaluate(pos mgl64.Vec3, t float64) Value
	// Bounds returns the source's axis-aligned bounding box.
	Bounds() Box
	// Inside reports whether pos lies within the source's active region.
	Inside(pos mgl64.Vec3) bool
	// Enabled reports whether the source currently contributes.
	Enabled() bool
	// SetEnabled toggles whether the source contributes.
	SetEnabled(enabled bool)
}
