package torcs

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S191857/robot/internal/dispatcher"
	"github.com/S191857/robot/pkg/core"
)

// fakeRobot records the callbacks it receives.
type fakeRobot struct {
	calls []string
	track *core.Track
	ctrl  core.Control
}

func (f *fakeRobot) NewTrack(track *core.Track, s core.Situation) {
	f.calls = append(f.calls, CmdNewTrack)
	f.track = track
}

func (f *fakeRobot) NewRace(car *core.Car, s core.Situation) {
	f.calls = append(f.calls, CmdNewRace)
}

func (f *fakeRobot) Drive(car *core.Car, s core.Situation) core.Control {
	f.calls = append(f.calls, CmdDrive)
	return f.ctrl
}

func (f *fakeRobot) EndRace(car *core.Car, s core.Situation) {
	f.calls = append(f.calls, CmdEndRace)
}

func (f *fakeRobot) Shutdown() {
	f.calls = append(f.calls, CmdShutdown)
}

func newTestRegistry(t *testing.T) (*Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d, err := dispatcher.New(logger)
	require.NoError(t, err)

	return NewRegistry(d, logger), &buf
}

func TestRegistry_Lifecycle(t *testing.T) {
	r, _ := newTestRegistry(t)
	rb := &fakeRobot{ctrl: core.Control{Steer: 0.1, Accel: 1, Gear: 2}}
	require.NoError(t, r.Register(1, ModuleName, "heuristic driver", rb))

	track := core.NewTrack("t", []*core.Segment{{ID: 0, Type: core.Straight, Length: 10}})
	car := &core.Car{}

	require.NoError(t, r.NewTrack(1, track, core.Situation{}))
	require.NoError(t, r.NewRace(1, car, core.Situation{}))
	ctrl, err := r.Drive(1, car, core.Situation{})
	require.NoError(t, err)
	require.NoError(t, r.EndRace(1, car, core.Situation{}))
	require.NoError(t, r.Shutdown(1))

	assert.Equal(t, rb.ctrl, ctrl)
	assert.Same(t, track, rb.track)
	assert.Equal(t, []string{CmdNewTrack, CmdNewRace, CmdDrive, CmdEndRace, CmdShutdown}, rb.calls)
}

func TestRegistry_UnknownIndex(t *testing.T) {
	r, logs := newTestRegistry(t)
	require.NoError(t, r.Register(1, ModuleName, "", &fakeRobot{}))

	_, err := r.Drive(3, &core.Car{}, core.Situation{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 3")

	err = r.EndRace(3, &core.Car{}, core.Situation{})
	require.Error(t, err)
	assert.Contains(t, logs.String(), "event failed", "lifecycle callbacks are logged")
}

func TestRegistry_Register(t *testing.T) {
	r, _ := newTestRegistry(t)

	require.NoError(t, r.Register(1, ModuleName, "", &fakeRobot{}))
	assert.Error(t, r.Register(1, "dup", "", &fakeRobot{}))
	assert.Error(t, r.Register(MaxRobots, "overflow", "", &fakeRobot{}))
	assert.Error(t, r.Register(-1, "negative", "", &fakeRobot{}))

	assert.True(t, r.HasRobot(1))
	assert.False(t, r.HasRobot(0))
}

func TestRegistry_Modules(t *testing.T) {
	r, _ := newTestRegistry(t)
	require.NoError(t, r.Register(4, "second", "b", &fakeRobot{}))
	require.NoError(t, r.Register(1, ModuleName, "a", &fakeRobot{}))

	assert.Equal(t, []ModuleInfo{
		{Name: ModuleName, Desc: "a", Index: 1},
		{Name: "second", Desc: "b", Index: 4},
	}, r.Modules())
}

func TestRegistry_DriveIsNotLogged(t *testing.T) {
	r, logs := newTestRegistry(t)
	require.NoError(t, r.Register(1, ModuleName, "", &fakeRobot{}))

	_, err := r.Drive(1, &core.Car{}, core.Situation{})
	require.NoError(t, err)
	assert.Empty(t, logs.String())

	require.NoError(t, r.NewRace(1, &core.Car{}, core.Situation{}))
	assert.Contains(t, logs.String(), "command=rbNewRace")
}

func TestSetRegistry(t *testing.T) {
	t.Cleanup(func() { SetRegistry(nil) })

	assert.Nil(t, GetRegistry())
	r, _ := newTestRegistry(t)
	SetRegistry(r)
	assert.Same(t, r, GetRegistry())
}
