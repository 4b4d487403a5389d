package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pygacity/sandlersteam/pkg/log"
)

// Phase is the serving state of a Server.
type Phase int

const (
	PhaseStopped Phase = iota
	PhaseStarting
	PhaseServing
	PhaseDraining
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "stopped"
	case PhaseStarting:
		return "starting"
	case PhaseServing:
		return "serving"
	case PhaseDraining:
		return "draining"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// ErrAlreadyRunning is returned by Run while a previous Run is active.
var ErrAlreadyRunning = errors.New("server already running")

// phases tracks a server through
//
//	stopped -> starting -> serving -> draining -> stopped
//
// Any running phase may move to failed; failed may start again.
type phases struct {
	mu     sync.RWMutex
	phase  Phase
	logger log.Logger
}

func (m *phases) current() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

func (m *phases) transition(to Phase, reason string) error {
	m.mu.Lock()
	from := m.phase
	if !validTransition(from, to) {
		m.mu.Unlock()
		if to == PhaseStarting {
			return ErrAlreadyRunning
		}
		return fmt.Errorf("server phase %s -> %s not allowed", from, to)
	}
	m.phase = to
	m.mu.Unlock()

	m.logger.Debug("server phase",
		log.Stringer("from", from),
		log.Stringer("to", to),
		log.String("reason", reason))
	return nil
}

func validTransition(from, to Phase) bool {
	switch from {
	case PhaseStopped, PhaseFailed:
		return to == PhaseStarting
	case PhaseStarting:
		return to == PhaseServing || to == PhaseFailed
	case PhaseServing:
		return to == PhaseDraining || to == PhaseFailed
	case PhaseDraining:
		return to == PhaseStopped || to == PhaseFailed
	}
	return false
}
