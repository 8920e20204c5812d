package driving

// Params holds the tunable constants of the heuristics.
type Params struct {
	Gravity         float64
	SteerGain       float64
	ShiftUpRatio    float64
	ShiftDownMargin float64
	AccelMargin     float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Gravity:         9.81,
		SteerGain:       1.0,
		ShiftUpRatio:    0.9,
		ShiftDownMargin: 4.0,
		AccelMargin:     1.0,
	}
}
