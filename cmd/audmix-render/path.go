// SPDX-License-Identifier: EPL-2.0

package main

import (
	"math"
	"time"

	"github.com/ik5/audmix/spatial"
)

// path gives the source position and velocity at a point in time.
type path struct {
	orbit    bool
	speed    float64
	distance float64
	half     float64 // seconds to the closest point of a line
}

func newPath(o options) path {
	return path{
		orbit:    o.path == "orbit",
		speed:    o.speed,
		distance: o.distance,
		half:     o.duration.Seconds() / 2,
	}
}

// at places a line path so that the source passes in front of the
// listener halfway through. An orbit circles the listener counterclockwise
// seen from above, starting straight ahead.
func (p path) at(d time.Duration) (spatial.Vec3, spatial.Vec3) {
	t := d.Seconds()

	if !p.orbit {
		x := p.speed * (t - p.half)
		return spatial.Vec3{X: float32(x), Z: float32(-p.distance)},
			spatial.Vec3{X: float32(p.speed)}
	}

	w := p.speed / p.distance
	sin, cos := math.Sincos(w * t)
	r, v := p.distance, p.speed

	return spatial.Vec3{X: float32(-r * sin), Z: float32(-r * cos)},
		spatial.Vec3{X: float32(-v * cos), Z: float32(v * sin)}
}
