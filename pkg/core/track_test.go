package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrack_LinksRing(t *testing.T) {
	segs := []*Segment{
		{ID: 0, Type: Straight, Length: 100},
		{ID: 1, Type: Left, Length: 50, Arc: 1, Radius: 50},
		{ID: 2, Type: Straight, Length: 200},
	}

	tr := NewTrack("oval", segs)

	require.Equal(t, 3, tr.Len())
	assert.Same(t, segs[1], segs[0].Next)
	assert.Same(t, segs[2], segs[1].Next)
	assert.Same(t, segs[0], segs[2].Next)
	assert.Equal(t, 350.0, tr.Length)
}

func TestTrack_Segment(t *testing.T) {
	segs := []*Segment{{ID: 7, Type: Straight}, {ID: 8, Type: Right}}
	tr := NewTrack("t", segs)

	assert.Same(t, segs[1], tr.Segment(8))
	assert.Nil(t, tr.Segment(99))

	var nilTrack *Track
	assert.Nil(t, nilTrack.Segment(7))
	assert.Equal(t, 0, nilTrack.Len())
}

func TestSegmentType_String(t *testing.T) {
	assert.Equal(t, "straight", Straight.String())
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "unknown", SegmentType(0).String())
}

func TestCar_GearTable(t *testing.T) {
	c := &Car{GearOffset: 1, GearRatios: []float64{-3, 0, 3.5, 2.5, 1.8}}

	assert.Equal(t, 3, c.RatioIndex(2))
	assert.Equal(t, 3, c.TopGear())
}

func TestCar_TopGear(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		ratios []float64
		want   int
	}{
		{name: "trailing zeros ignored", offset: 1, ratios: []float64{-3, 0, 3.5, 2.5, 1.8, 1.4, 1.1, 0.9, 0, 0}, want: 7},
		{name: "full table", offset: 1, ratios: []float64{-3, 0, 3.5, 2.5}, want: 2},
		{name: "no forward gears", offset: 1, ratios: []float64{-3, 0, 0, 0}, want: 0},
		{name: "empty table", offset: 1, ratios: nil, want: 0},
		{name: "zero offset", offset: 0, ratios: []float64{0, 3.5, 2.5, 0}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Car{GearOffset: tt.offset, GearRatios: tt.ratios}
			assert.Equal(t, tt.want, c.TopGear())
		})
	}
}
