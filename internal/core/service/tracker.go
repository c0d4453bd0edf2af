package service

import (
	"cmdbus/internal/core/domain"
	"context"
	"maps"
	"sync"

	"github.com/rs/zerolog/log"
)

// Stats counts the dispatch outcomes of one command.
type Stats struct {
	Started  int
	Executed int
	Failed   int
	Finished int
}

// Tracker is a port.Hooks implementation counting dispatches per command id. It is safe for concurrent
// dispatches.
type Tracker struct {
	commands map[string]Stats
	inflight map[string]string
	mutex    *sync.Mutex
}

func NewTracker() *Tracker {
	return &Tracker{
		commands: make(map[string]Stats),
		inflight: make(map[string]string),
		mutex:    &sync.Mutex{},
	}
}

func (t *Tracker) BeforeExecuteCommand(ctx context.Context, id string, _ domain.Command) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	s := t.commands[id]
	s.Started++
	t.commands[id] = s

	if dispatchID := domain.DispatchID(ctx); dispatchID != "" {
		t.inflight[dispatchID] = id
	}
}

func (t *Tracker) OnCommandExecuted(_ context.Context, id string, _ domain.Command, _ *domain.Result) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	s := t.commands[id]
	s.Executed++
	t.commands[id] = s
}

func (t *Tracker) OnCommandException(_ context.Context, id string, _ domain.Command, _ error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	s := t.commands[id]
	s.Failed++
	t.commands[id] = s
}

func (t *Tracker) AfterHandleFinally(ctx context.Context) {
	dispatchID := domain.DispatchID(ctx)

	t.mutex.Lock()
	defer t.mutex.Unlock()

	id, ok := t.inflight[dispatchID]
	if !ok {
		log.Debug().Str("dispatchId", dispatchID).Msg("finished dispatch was not tracked")
		return
	}

	delete(t.inflight, dispatchID)

	s := t.commands[id]
	s.Finished++
	t.commands[id] = s
}

// Snapshot returns a copy of the current counters keyed by command id.
func (t *Tracker) Snapshot() map[string]Stats {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return maps.Clone(t.commands)
}

// InFlight returns the number of dispatches that started and have not finished yet.
func (t *Tracker) InFlight() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return len(t.inflight)
}
