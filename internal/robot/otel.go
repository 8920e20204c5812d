package robot

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/S191857/robot/internal/robot"

var (
	shiftUp   = metric.WithAttributes(attribute.String("direction", "up"))
	shiftDown = metric.WithAttributes(attribute.String("direction", "down"))
)

type instruments struct {
	ticks      metric.Int64Counter
	brakeTicks metric.Int64Counter
	shifts     metric.Int64Counter
	speed      metric.Float64Histogram
}

func newInstruments() (*instruments, error) {
	m := otel.Meter(instrumentationName)
	in := &instruments{}

	var err error

	in.ticks, err = m.Int64Counter("robot.ticks",
		metric.WithDescription("Drive callbacks handled"))
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	in.brakeTicks, err = m.Int64Counter("robot.brake.ticks",
		metric.WithDescription("Ticks with the brake applied"))
	if err != nil {
		return nil, fmt.Errorf("creating brake counter: %w", err)
	}

	in.shifts, err = m.Int64Counter("robot.gear.shifts",
		metric.WithDescription("Gear changes commanded"))
	if err != nil {
		return nil, fmt.Errorf("creating shift counter: %w", err)
	}

	in.speed, err = m.Float64Histogram("robot.speed",
		metric.WithDescription("Longitudinal speed per tick"),
		metric.WithUnit("m/s"),
		metric.WithExplicitBucketBoundaries(0, 10, 20, 30, 40, 50, 60, 70, 80, 90),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speed histogram: %w", err)
	}

	return in, nil
}

func (in *instruments) record(speed float64, gear, prevGear int, braking bool) {
	ctx := context.Background()

	in.ticks.Add(ctx, 1)
	in.speed.Record(ctx, speed)
	if braking {
		in.brakeTicks.Add(ctx, 1)
	}
	switch {
	case prevGear > 0 && gear > prevGear:
		in.shifts.Add(ctx, 1, shiftUp)
	case prevGear > 0 && gear < prevGear:
		in.shifts.Add(ctx, 1, shiftDown)
	}
}
