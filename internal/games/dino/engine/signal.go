package engine

// Signal is a fire-and-forget notification for sound or effects.
// Ignoring signals never changes the simulation.
type Signal int

const (
	SignalJump Signal = iota
	SignalMilestone
	SignalCollision
)

func (s Signal) String() string {
	switch s {
	case SignalJump:
		return "jump"
	case SignalMilestone:
		return "milestone"
	case SignalCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// Listener receives signals synchronously from the simulation goroutine.
type Listener interface {
	Signal(Signal)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Signal)

// Signal calls f(sig).
func (f ListenerFunc) Signal(sig Signal) { f(sig) }

// Listeners fans a signal out to every member. Nil members are skipped.
type Listeners []Listener

// Signal forwards sig to every listener in order.
func (ls Listeners) Signal(sig Signal) {
	for _, l := range ls {
		if l != nil {
			l.Signal(sig)
		}
	}
}

type nopListener struct{}

func (nopListener) Signal(Signal) {}
