package game

// eventLog is the bounded player-facing table log. The oldest entries are
// discarded once the cap is reached.
type eventLog struct {
	entries []string
	cap     int
}

func newEventLog(cap int) *eventLog {
	return &eventLog{cap: cap}
}

func (l *eventLog) add(msg string) {
	l.entries = append(l.entries, msg)
	if len(l.entries) > l.cap {
		l.entries = l.entries[len(l.entries)-l.cap:]
	}
}

// tail returns a copy of the most recent n entries, oldest first.
func (l *eventLog) tail(n int) []string {
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]string, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
