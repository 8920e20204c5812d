// pkg/core/track.go
package core

// SegmentType is the host's segment kind. Values match the host headers.
type SegmentType int

const (
	Right    SegmentType = 1
	Left     SegmentType = 2
	Straight SegmentType = 3
)

func (t SegmentType) String() string {
	switch t {
	case Right:
		return "right"
	case Left:
		return "left"
	case Straight:
		return "straight"
	default:
		return "unknown"
	}
}

// Segment is one track-geometry primitive. Curves measure Arc in radians.
type Segment struct {
	ID       int
	Type     SegmentType
	Length   float64
	Arc      float64
	Radius   float64
	Width    float64
	Friction float64
	Next     *Segment
}

// IsStraight reports whether the segment has no curvature.
func (s *Segment) IsStraight() bool {
	return s.Type == Straight
}

// Track is the host track copied at track-change time.
type Track struct {
	Name     string
	Length   float64
	Segments []*Segment

	byID map[int]*Segment
}

// NewTrack links segs in order into a ring and indexes them by ID.
func NewTrack(name string, segs []*Segment) *Track {
	t := &Track{
		Name:     name,
		Segments: segs,
		byID:     make(map[int]*Segment, len(segs)),
	}
	for i, s := range segs {
		s.Next = segs[(i+1)%len(segs)]
		t.byID[s.ID] = s
		t.Length += s.Length
	}
	return t
}

// Segment returns the segment with the given host id, or nil.
func (t *Track) Segment(id int) *Segment {
	if t == nil {
		return nil
	}
	return t.byID[id]
}

// Len returns the number of segments.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Segments)
}
