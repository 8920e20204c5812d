// pkg/core/car.go
package core

// TrackPos locates a car relative to its current segment.
type TrackPos struct {
	SegID int
	Seg   *Segment

	// ToStart is metres into a straight, radians into a curve.
	ToStart  float64
	ToMiddle float64

	// TangentAngle is the track side tangent angle at the car.
	TangentAngle float64
}

// Car is one tick's snapshot of the vehicle state.
type Car struct {
	Speed       float64
	Yaw         float64
	SteerLock   float64
	Gear        int
	GearOffset  int
	GearRatios  []float64
	RedlineRPM  float64
	WheelRadius float64
	Pos         TrackPos
}

// RatioIndex returns the gear ratio table index for gear.
func (c *Car) RatioIndex(gear int) int {
	return gear + c.GearOffset
}

// TopGear is the highest forward gear with a non-zero ratio. The host pads
// the ratio table with zeros past the last gear. Returns 0 when the car has
// no forward gear.
func (c *Car) TopGear() int {
	for i := len(c.GearRatios) - 1; i > c.GearOffset; i-- {
		if c.GearRatios[i] != 0 {
			return i - c.GearOffset
		}
	}
	return 0
}

// Situation is the race-wide state handed to every callback.
type Situation struct {
	CurrentTime float64
	DeltaTime   float64
	TotalLaps   int
	NumCars     int
}
