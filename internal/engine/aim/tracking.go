package aim

import (
	"image"

	"github.com/ConserveLee/aim-assist/internal/constants"
)

// Tracking remembers the last engaged target across ticks.
// LastCenter is maintained but nothing reads it for selection yet.
type Tracking struct {
	LastCenter image.Point
	HasLast    bool
	Misses     int
}

// Engaged records a successful engagement at center
func (t Tracking) Engaged(center image.Point) Tracking {
	return Tracking{LastCenter: center, HasLast: true, Misses: 0}
}

// Missed records a tick without engagement. The last center is forgotten once the
// streak passes the threshold; the counter keeps growing.
func (t Tracking) Missed() Tracking {
	t.Misses++
	if t.Misses > constants.MissResetThreshold {
		t.LastCenter = image.Point{}
		t.HasLast = false
	}
	return t
}
