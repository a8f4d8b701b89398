package avatar

// PlaybackState reports whether speech audio is being produced.
type PlaybackState int32

const (
	Idle PlaybackState = iota
	Speaking
)

// Speaking reports whether the state is Speaking.
func (s PlaybackState) Speaking() bool {
	return s == Speaking
}

func (s PlaybackState) String() string {
	if s == Speaking {
		return "speaking"
	}
	return "idle"
}
