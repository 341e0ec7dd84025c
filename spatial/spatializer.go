// SPDX-License-Identifier: EPL-2.0

package spatial

import "math"

const (
	// SpeedOfSound in air, metres per second.
	SpeedOfSound = 343.0

	headRadius = 0.1075

	// positionSmoothing is how long a source takes to glide to a newly
	// published position.
	positionSmoothing = 0.5
)

type ear struct {
	pos Vec3
	dir Vec3 // direction of greatest sensitivity
}

var ears = [2]ear{
	{pos: Vec3{X: -headRadius}, dir: Vec3{X: -math.Sqrt2 / 2, Z: -math.Sqrt2 / 2}},
	{pos: Vec3{X: headRadius}, dir: Vec3{X: math.Sqrt2 / 2, Z: -math.Sqrt2 / 2}},
}

// earState is what one ear hears of a source at one instant.
type earState struct {
	delay float64 // seconds
	gain  float32
}

// hear computes the state for a source at p relative to the listener.
// Gain falls off as radius/distance beyond radius and is halved for sources
// perpendicular to the ear, vanishing directly behind it.
func hear(p Vec3, e ear, radius float32, c float64) earState {
	distance := p.Sub(e.pos).Len()

	stereo := float32(1)
	if d := p.Len(); d >= 1e-3 {
		stereo = 0.5 + e.dir.Dot(p.Scale(0.5/d))
	}

	return earState{
		delay: float64(distance) / c,
		gain:  stereo * DistanceGain(distance, radius),
	}
}

// DistanceGain is the attenuation of a source of the given radius heard at
// distance. It is 1 inside the radius, so it never diverges near zero.
func DistanceGain(distance, radius float32) float32 {
	return radius / max(distance, radius)
}

// DopplerFactor returns the playback-rate multiplier for a source whose
// distance changes from prev to next over elapsed seconds, with sound
// travelling at c. It is above 1 while approaching and below 1 while
// receding.
func DopplerFactor(prev, next, elapsed, c float64) float64 {
	return readRate(prev/c, next/c, elapsed)
}

// readRate is how fast the delay line is read when the delay changes from
// prev to next seconds over elapsed seconds.
func readRate(prev, next, elapsed float64) float64 {
	return 1 - (next-prev)/elapsed
}

// motion is a published source or listener trajectory.
type motion struct {
	position      Vec3
	velocity      Vec3
	discontinuity bool
}

// track smooths jumps between published motions by gliding from where the
// previous trajectory would have been to the new one.
type track struct {
	prev Vec3    // position when the current motion was received
	dt   float64 // seconds since then
}

// at returns the smoothed position dt seconds after the current block start.
func (tr *track) at(dt float64, m motion) Vec3 {
	t := tr.dt + dt
	change := m.velocity.Scale(float32(t))
	naive := tr.prev.Add(change)
	intended := m.position.Add(change)

	return naive.Lerp(intended, float32(min(t/positionSmoothing, 1)))
}

// follow restarts the track when a new motion has arrived.
func (tr *track) follow(old, cur motion, fresh bool) {
	if !fresh {
		return
	}

	if cur.discontinuity {
		tr.prev = cur.position
	} else {
		tr.prev = tr.at(0, old)
	}
	tr.dt = 0
}
