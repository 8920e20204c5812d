// Package robot holds the driver that answers the host's robot callbacks.
package robot

import (
	"github.com/S191857/robot/pkg/core"
)

// Robot is the callback table a host module exposes for one car.
// There is no pit-command callback.
type Robot interface {
	// NewTrack is called for every track change or new race.
	NewTrack(track *core.Track, s core.Situation)
	// NewRace starts a new race.
	NewRace(car *core.Car, s core.Situation)
	// Drive is called once per simulation tick.
	Drive(car *core.Car, s core.Situation) core.Control
	// EndRace ends the current race.
	EndRace(car *core.Car, s core.Situation)
	// Shutdown is called before the module is unloaded.
	Shutdown()
}
