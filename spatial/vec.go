// SPDX-License-Identifier: EPL-2.0

package spatial

import "math"

// Vec3 is a point or direction in metres. The listener's unrotated frame
// has +X to the right, +Y up and faces -Z.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3             { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3             { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float32) Vec3        { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float32          { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float32                { return float32(math.Sqrt(float64(v.Dot(v)))) }
func (v Vec3) Lerp(o Vec3, t float32) Vec3 { return v.Add(o.Sub(v).Scale(t)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Quat is a rotation stored as a unit quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// Identity is the rotation that does nothing.
func Identity() Quat { return Quat{W: 1} }

// AxisAngle returns a rotation of radians about axis, counter-clockwise when
// looking down the axis towards the origin.
func AxisAngle(axis Vec3, radians float64) Quat {
	l := axis.Len()
	if l == 0 {
		return Identity()
	}

	s := float32(math.Sin(radians/2)) / l
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, float32(math.Cos(radians / 2))}
}

// Inverse returns the opposite rotation.
func (q Quat) Inverse() Quat { return Quat{-q.X, -q.Y, -q.Z, q.W} }

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

func (q Quat) isZero() bool { return q == Quat{} }
