package torcs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/S191857/robot/internal/dispatcher"
	"github.com/S191857/robot/internal/robot"
	"github.com/S191857/robot/pkg/core"
)

// ModuleName is the entry point symbol and the shared library's base name.
const ModuleName = "S191857"

// MaxRobots is the number of module-info rows the host hands the entry point.
const MaxRobots = 10

// Host callback names, used as dispatcher commands.
const (
	CmdNewTrack = "rbNewTrack"
	CmdNewRace  = "rbNewRace"
	CmdDrive    = "rbDrive"
	CmdEndRace  = "rbEndRace"
	CmdShutdown = "rbShutdown"
)

// ModuleInfo is one row of the host's module table.
type ModuleInfo struct {
	Name  string
	Desc  string
	Index int
}

// TrackPayload carries a track-change callback.
type TrackPayload struct {
	Track     *core.Track
	Situation core.Situation
}

// CarPayload carries the new-race, drive and end-race callbacks.
type CarPayload struct {
	Car       *core.Car
	Situation core.Situation
}

type entry struct {
	info  ModuleInfo
	robot robot.Robot
}

// Registry maps host robot indexes to robots and routes callbacks to them.
type Registry struct {
	robots     map[int]*entry
	dispatcher *dispatcher.Dispatcher
	logger     *slog.Logger
}

// NewRegistry creates a registry that routes through d.
func NewRegistry(d *dispatcher.Dispatcher, logger *slog.Logger) *Registry {
	r := &Registry{
		robots:     make(map[int]*entry),
		dispatcher: d,
		logger:     logger,
	}

	d.Register(CmdNewTrack, r.handleNewTrack, dispatcher.Logged())
	d.Register(CmdNewRace, r.handleNewRace, dispatcher.Logged())
	d.Register(CmdDrive, r.handleDrive)
	d.Register(CmdEndRace, r.handleEndRace, dispatcher.Logged())
	d.Register(CmdShutdown, r.handleShutdown, dispatcher.Logged())

	return r
}

// Register adds a robot at the given host index.
func (r *Registry) Register(index int, name, desc string, rb robot.Robot) error {
	if index < 0 || index >= MaxRobots {
		return fmt.Errorf("robot index %d out of range [0,%d)", index, MaxRobots)
	}
	if _, ok := r.robots[index]; ok {
		return fmt.Errorf("robot index %d already registered", index)
	}
	r.robots[index] = &entry{
		info:  ModuleInfo{Name: name, Desc: desc, Index: index},
		robot: rb,
	}
	return nil
}

// Modules returns the module-info rows in index order.
func (r *Registry) Modules() []ModuleInfo {
	var out []ModuleInfo
	for i := 0; i < MaxRobots; i++ {
		if e, ok := r.robots[i]; ok {
			out = append(out, e.info)
		}
	}
	return out
}

// HasRobot reports whether index has a robot.
func (r *Registry) HasRobot(index int) bool {
	_, ok := r.robots[index]
	return ok
}

// NewTrack routes a track-change callback.
func (r *Registry) NewTrack(index int, track *core.Track, s core.Situation) error {
	_, err := r.dispatch(CmdNewTrack, index, TrackPayload{Track: track, Situation: s})
	return err
}

// NewRace routes a new-race callback.
func (r *Registry) NewRace(index int, car *core.Car, s core.Situation) error {
	_, err := r.dispatch(CmdNewRace, index, CarPayload{Car: car, Situation: s})
	return err
}

// Drive routes a tick and returns the robot's control.
func (r *Registry) Drive(index int, car *core.Car, s core.Situation) (core.Control, error) {
	res, err := r.dispatch(CmdDrive, index, CarPayload{Car: car, Situation: s})
	if err != nil {
		return core.Control{}, err
	}
	return res.(core.Control), nil
}

// EndRace routes an end-race callback.
func (r *Registry) EndRace(index int, car *core.Car, s core.Situation) error {
	_, err := r.dispatch(CmdEndRace, index, CarPayload{Car: car, Situation: s})
	return err
}

// Shutdown routes the unload callback.
func (r *Registry) Shutdown(index int) error {
	_, err := r.dispatch(CmdShutdown, index, nil)
	return err
}

func (r *Registry) dispatch(command string, index int, payload any) (any, error) {
	return r.dispatcher.Dispatch(dispatcher.Event{
		Command:   command,
		Index:     index,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

func (r *Registry) lookup(e dispatcher.Event) (robot.Robot, error) {
	en, ok := r.robots[e.Index]
	if !ok {
		return nil, fmt.Errorf("no robot registered at index %d", e.Index)
	}
	return en.robot, nil
}

func (r *Registry) handleNewTrack(e dispatcher.Event) (any, error) {
	rb, err := r.lookup(e)
	if err != nil {
		return nil, err
	}
	p := e.Payload.(TrackPayload)
	rb.NewTrack(p.Track, p.Situation)
	return nil, nil
}

func (r *Registry) handleNewRace(e dispatcher.Event) (any, error) {
	rb, err := r.lookup(e)
	if err != nil {
		return nil, err
	}
	p := e.Payload.(CarPayload)
	rb.NewRace(p.Car, p.Situation)
	return nil, nil
}

func (r *Registry) handleDrive(e dispatcher.Event) (any, error) {
	rb, err := r.lookup(e)
	if err != nil {
		return nil, err
	}
	p := e.Payload.(CarPayload)
	return rb.Drive(p.Car, p.Situation), nil
}

func (r *Registry) handleEndRace(e dispatcher.Event) (any, error) {
	rb, err := r.lookup(e)
	if err != nil {
		return nil, err
	}
	p := e.Payload.(CarPayload)
	rb.EndRace(p.Car, p.Situation)
	return nil, nil
}

func (r *Registry) handleShutdown(e dispatcher.Event) (any, error) {
	rb, err := r.lookup(e)
	if err != nil {
		return nil, err
	}
	rb.Shutdown()
	return nil, nil
}
