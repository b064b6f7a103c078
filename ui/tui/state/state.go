package state

import (
	"time"

	"simsiac/internal/collector"
	"simsiac/internal/engine"
)

// AppState holds what the status panel shows. The menu itself lives in the
// model; this is only the result of the actions it fired.
type AppState struct {
	ActiveProbe string
	Last        collector.Reading
	LastCheck   engine.CheckResult
	LastUpdate  time.Time
	InFlight    int
	Err         error
	History     map[string][]float64
	Activity    []string
}

// Push appends v to the named history, keeping at most capacity values.
func (s *AppState) Push(name string, v float64, capacity int) {
	if s.History == nil {
		s.History = make(map[string][]float64)
	}
	h := append(s.History[name], v)
	if len(h) > capacity {
		h = h[len(h)-capacity:]
	}
	s.History[name] = h
}

// Log appends an activity line, keeping the last 100.
func (s *AppState) Log(line string) {
	s.Activity = append(s.Activity, line)
	if len(s.Activity) > 100 {
		s.Activity = s.Activity[1:]
	}
}
