// Package driving computes the per-tick control commands from a car and
// track snapshot. All functions are pure; the caller owns every input.
package driving

import (
	"math"

	"github.com/S191857/robot/pkg/core"
)

// Drive produces one tick's control output. Brake and throttle never overlap.
func Drive(car *core.Car, p Params) core.Control {
	ctrl := core.Control{
		Steer: Steer(car, p),
		Gear:  Gear(car, p),
		Brake: Brake(car, p),
	}
	if ctrl.Brake == 0 {
		ctrl.Accel = Accel(car, p)
	}
	return ctrl
}

// NormPiPi wraps an angle into [-π, π].
func NormPiPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Steer aligns the car with the track tangent and pulls it toward the centre line.
func Steer(car *core.Car, p Params) float64 {
	angle := NormPiPi(car.Pos.TangentAngle - car.Yaw)
	angle -= p.SteerGain * car.Pos.ToMiddle / car.Pos.Seg.Width
	return angle / car.SteerLock
}

// Gear picks the gear for this tick, moving at most one step from the current one.
func Gear(car *core.Car, p Params) int {
	if car.Gear <= 0 {
		return 1
	}
	if len(car.GearRatios) == 0 {
		return car.Gear
	}
	top := max(car.TopGear(), 1)
	if car.Gear > top {
		return top
	}

	omega := car.RedlineRPM / gearRatio(car, car.Gear)
	if car.Speed > omega*car.WheelRadius*p.ShiftUpRatio {
		if car.Gear == top {
			return top
		}
		return car.Gear + 1
	}

	if car.Gear > 1 {
		omega = car.RedlineRPM / gearRatio(car, car.Gear-1)
		if car.Speed+p.ShiftDownMargin < omega*car.WheelRadius*p.ShiftUpRatio {
			return car.Gear - 1
		}
	}
	return car.Gear
}

// AllowedSpeed is the lateral-friction speed bound for seg. Straights are unbounded.
func AllowedSpeed(seg *core.Segment, p Params) float64 {
	if seg.IsStraight() {
		return math.MaxFloat64
	}
	return math.Sqrt(seg.Friction * p.Gravity * seg.Radius)
}

// DistToSegEnd is the distance left before the car leaves its current segment.
func DistToSegEnd(car *core.Car) float64 {
	seg := car.Pos.Seg
	if seg.IsStraight() {
		return seg.Length - car.Pos.ToStart
	}
	return (seg.Arc - car.Pos.ToStart) * seg.Radius
}

// Accel returns full throttle below the allowed speed and a soft cap above it.
func Accel(car *core.Car, p Params) float64 {
	allowed := AllowedSpeed(car.Pos.Seg, p)
	if car.Speed+p.AccelMargin < allowed {
		return 1.0
	}
	return allowed / car.WheelRadius * gearRatio(car, car.Gear) / car.RedlineRPM
}

// Brake returns 1.0 when the car is too fast for its segment or cannot slow
// down in time for one ahead within its stopping distance, else 0.0.
func Brake(car *core.Car, p Params) float64 {
	seg := car.Pos.Seg
	speedSqr := car.Speed * car.Speed
	mu := seg.Friction
	horizon := speedSqr / (2 * mu * p.Gravity)
	lookahead := DistToSegEnd(car)

	if car.Speed > AllowedSpeed(seg, p) {
		return 1.0
	}

	for seg = seg.Next; lookahead < horizon; seg = seg.Next {
		allowed := AllowedSpeed(seg, p)
		if car.Speed > allowed {
			brakeDist := (speedSqr - allowed*allowed) / (2 * mu * p.Gravity)
			if brakeDist > lookahead {
				return 1.0
			}
		}
		lookahead += seg.Length
	}
	return 0.0
}

// gearRatio looks up the ratio for gear, clamped to the ends of the table.
// An empty table yields 0.
func gearRatio(car *core.Car, gear int) float64 {
	if len(car.GearRatios) == 0 {
		return 0
	}
	idx := min(max(car.RatioIndex(gear), 0), len(car.GearRatios)-1)
	return car.GearRatios[idx]
}
