package robot

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/S191857/robot/internal/driving"
	"github.com/S191857/robot/pkg/core"
)

// Stats summarises one race.
type Stats struct {
	Ticks      int
	BrakeTicks int
	UpShifts   int
	DownShifts int
	TopSpeed   float64
}

// Driver is the heuristic robot. The host calls it from one thread, so it
// holds no locks.
type Driver struct {
	params driving.Params
	logger *slog.Logger
	flush  func()
	metric *instruments

	// replaced on every track change
	track *core.Track

	raceID uuid.UUID
	stats  Stats
}

var _ Robot = (*Driver)(nil)

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// WithFlush registers a hook run at race end and shutdown, used to push
// buffered metrics and logs out.
func WithFlush(fn func()) Option {
	return func(d *Driver) {
		d.flush = fn
	}
}

// NewDriver creates a Driver with the given tuning.
func NewDriver(params driving.Params, opts ...Option) (*Driver, error) {
	d := &Driver{
		params: params,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	var err error
	d.metric, err = newInstruments()
	if err != nil {
		return nil, err
	}

	return d, nil
}

// NewTrack caches the track for later Drive calls.
func (d *Driver) NewTrack(track *core.Track, s core.Situation) {
	d.track = track
	d.logger.Info("Track loaded", "name", track.Name, "segments", track.Len(), "length", track.Length)
}

// NewRace starts a fresh race context.
func (d *Driver) NewRace(car *core.Car, s core.Situation) {
	d.raceID = uuid.New()
	d.stats = Stats{}
	d.logger.Info("New race", "laps", s.TotalLaps, "cars", s.NumCars, "gears", car.TopGear())
}

// Drive computes this tick's control.
func (d *Driver) Drive(car *core.Car, s core.Situation) core.Control {
	if car.Pos.Seg == nil {
		car.Pos.Seg = d.track.Segment(car.Pos.SegID)
		if car.Pos.Seg == nil {
			d.logger.Error("Car is on an unknown segment", "segment", car.Pos.SegID, "segments", d.track.Len())
			return core.Control{}
		}
	}

	ctrl := driving.Drive(car, d.params)
	d.record(car, ctrl)
	return ctrl
}

func (d *Driver) record(car *core.Car, ctrl core.Control) {
	braking := ctrl.Brake > 0

	d.stats.Ticks++
	if braking {
		d.stats.BrakeTicks++
	}
	if car.Gear > 0 && ctrl.Gear > car.Gear {
		d.stats.UpShifts++
	} else if car.Gear > 0 && ctrl.Gear < car.Gear {
		d.stats.DownShifts++
	}
	d.stats.TopSpeed = max(d.stats.TopSpeed, car.Speed)

	d.metric.record(car.Speed, ctrl.Gear, car.Gear, braking)
}

// EndRace logs the race summary.
func (d *Driver) EndRace(car *core.Car, s core.Situation) {
	d.logger.Info("Race finished",
		"time", s.CurrentTime,
		"ticks", d.stats.Ticks,
		"brakeTicks", d.stats.BrakeTicks,
		"upShifts", d.stats.UpShifts,
		"downShifts", d.stats.DownShifts,
		"topSpeed", d.stats.TopSpeed,
	)
	d.runFlush()
}

// Shutdown is called before the module is unloaded.
func (d *Driver) Shutdown() {
	d.logger.Info("Shutting down")
	d.runFlush()
}

func (d *Driver) runFlush() {
	if d.flush != nil {
		d.flush()
	}
}

// Stats returns the current race statistics.
func (d *Driver) Stats() Stats {
	return d.stats
}

// Track returns the cached track, nil before the first track change.
func (d *Driver) Track() *core.Track {
	return d.track
}

// Context returns the race id and track name for log enrichment.
func (d *Driver) Context() (raceID, track string) {
	if d.raceID != uuid.Nil {
		raceID = d.raceID.String()
	}
	if d.track != nil {
		track = d.track.Name
	}
	return raceID, track
}
