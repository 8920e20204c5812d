// pkg/core/control.go
package core

// Control is the command set written back to the host once per tick.
type Control struct {
	Steer float64
	Accel float64
	Brake float64
	Gear  int
}
