//go:build torcs

package torcs

/*
#cgo linux LDFLAGS: -lrobottools -ltgf
#cgo windows LDFLAGS: -lrobottools -ltgf

#include "bridge.h"
*/
import "C"

import (
	"log/slog"

	"github.com/S191857/robot/pkg/core"
)

// called by the host when the module is loaded
//
//export S191857
func S191857(modInfo *C.tModInfo) C.int {
	C.s191857ClearModInfo(modInfo, MaxRobots)

	if registry == nil {
		slog.Default().Error("Module loaded before a registry was set")
		return -1
	}

	for row, m := range registry.Modules() {
		// the host keeps these pointers for the module's lifetime
		C.s191857FillModInfo(modInfo, C.int(row), C.CString(m.Name), C.CString(m.Desc), C.int(m.Index))
	}
	return 0
}

//export goNewTrack
func goNewTrack(index C.int, track *C.tTrack, s *C.tSituation) {
	withRegistry(CmdNewTrack, index, func(r *Registry) error {
		return r.NewTrack(int(index), readTrack(track), readSituation(s))
	})
}

//export goNewRace
func goNewRace(index C.int, car *C.tCarElt, s *C.tSituation) {
	withRegistry(CmdNewRace, index, func(r *Registry) error {
		return r.NewRace(int(index), readCar(car), readSituation(s))
	})
}

//export goDrive
func goDrive(index C.int, car *C.tCarElt, s *C.tSituation) {
	var ctrl core.Control
	withRegistry(CmdDrive, index, func(r *Registry) error {
		var err error
		ctrl, err = r.Drive(int(index), readCar(car), readSituation(s))
		return err
	})
	C.s191857WriteCtrl(car, C.float(ctrl.Steer), C.float(ctrl.Accel), C.float(ctrl.Brake), C.int(ctrl.Gear))
}

//export goEndRace
func goEndRace(index C.int, car *C.tCarElt, s *C.tSituation) {
	withRegistry(CmdEndRace, index, func(r *Registry) error {
		return r.EndRace(int(index), readCar(car), readSituation(s))
	})
}

//export goShutdown
func goShutdown(index C.int) {
	withRegistry(CmdShutdown, index, func(r *Registry) error {
		return r.Shutdown(int(index))
	})
}

// withRegistry runs fn against the installed registry. The host has no error
// channel, so failures are only logged.
func withRegistry(command string, index C.int, fn func(*Registry) error) {
	if registry == nil {
		slog.Default().Error("Callback without a registry", "command", command, "index", int(index))
		return
	}
	if !registry.HasRobot(int(index)) {
		registry.logger.Error("Callback for an unregistered robot", "command", command, "index", int(index))
		return
	}
	if err := fn(registry); err != nil {
		registry.logger.Error("Callback failed", "command", command, "index", int(index), "error", err)
	}
}

func readTrack(track *C.tTrack) *core.Track {
	n := int(C.s191857SegCount(track))
	segs := make([]*core.Segment, 0, n)

	seg := C.s191857FirstSeg(track)
	for i := 0; i < n; i++ {
		var s C.s191857Seg
		C.s191857ReadSeg(seg, &s)
		segs = append(segs, &core.Segment{
			ID:       int(s.id),
			Type:     core.SegmentType(s._type),
			Length:   float64(s.length),
			Arc:      float64(s.arc),
			Radius:   float64(s.radius),
			Width:    float64(s.width),
			Friction: float64(s.friction),
		})
		seg = C.s191857NextSeg(seg)
	}

	return core.NewTrack(C.GoString(C.s191857TrackName(track)), segs)
}

func readCar(car *C.tCarElt) *core.Car {
	var c C.s191857Car
	C.s191857ReadCar(car, &c)

	ratios := make([]float64, len(c.gearRatio))
	for i := range ratios {
		ratios[i] = float64(c.gearRatio[i])
	}

	return &core.Car{
		Speed:       float64(c.speedX),
		Yaw:         float64(c.yaw),
		SteerLock:   float64(c.steerLock),
		Gear:        int(c.gear),
		GearOffset:  int(c.gearOffset),
		GearRatios:  ratios,
		RedlineRPM:  float64(c.redline),
		WheelRadius: float64(c.wheelRadius),
		Pos: core.TrackPos{
			SegID:        int(c.segId),
			ToStart:      float64(c.toStart),
			ToMiddle:     float64(c.toMiddle),
			TangentAngle: float64(c.tangent),
		},
	}
}

func readSituation(s *C.tSituation) core.Situation {
	var out C.s191857Situation
	C.s191857ReadSituation(s, &out)

	return core.Situation{
		CurrentTime: float64(out.currentTime),
		DeltaTime:   float64(out.deltaTime),
		TotalLaps:   int(out.totLaps),
		NumCars:     int(out.ncars),
	}
}
