// Package registry hosts every running game in the process. A two-level
// reader-writer locking scheme lets unrelated games progress concurrently:
// the outer lock guards membership of the game map, the inner per-game lock
// serializes access to one game's state. Every acquisition is bounded, so a
// wedged game surfaces as a lock timeout instead of a stalled server.
package registry

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/quizshow/internal/game"
)

var (
	// ErrLockTimeout is returned when a lock cannot be acquired within the
	// configured bound. No state has been touched; callers may retry.
	ErrLockTimeout = errors.New("registry: lock acquire timed out")
	// ErrUnknownGame is returned when a game id is not registered.
	ErrUnknownGame = errors.New("registry: no such game")
)

// Options tune the lock bound and the idle-game sweep.
type Options struct {
	// LockTimeout bounds every lock acquisition.
	LockTimeout time.Duration
	// SweepInterval is how often the background sweep runs.
	SweepInterval time.Duration
	// MaxAge is how old a game may grow before the sweep evicts it.
	MaxAge time.Duration
}

// DefaultOptions match the production tuning: a five second lock bound, a
// sweep every half hour, eviction after a day.
func DefaultOptions() Options {
	return Options{
		LockTimeout:   5 * time.Second,
		SweepInterval: 30 * time.Minute,
		MaxAge:        24 * time.Hour,
	}
}

type entry struct {
	mu *timedLock
	g  *game.Game
}

// Registry is the process-wide game map.
type Registry struct {
	logger *log.Logger
	clock  quartz.Clock
	opts   Options

	mu    *timedLock
	games map[game.GameID]*entry
}

// New builds an empty registry. Zero option fields fall back to defaults.
func New(logger *log.Logger, clock quartz.Clock, opts Options) *Registry {
	def := DefaultOptions()
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = def.LockTimeout
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = def.SweepInterval
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = def.MaxAge
	}
	return &Registry{
		logger: logger.WithPrefix("registry"),
		clock:  clock,
		opts:   opts,
		mu:     newTimedLock(opts.LockTimeout),
		games:  make(map[game.GameID]*entry),
	}
}

// Insert registers a new game under a fresh id. This is one of the two
// operations that write-lock the map itself.
func (r *Registry) Insert(g *game.Game) (game.GameID, error) {
	if err := r.mu.lock(); err != nil {
		return game.GameID{}, err
	}
	defer r.mu.unlock()

	id := game.NewGameID()
	r.games[id] = &entry{mu: newTimedLock(r.opts.LockTimeout), g: g}
	r.logger.Info("game registered", "game", id, "total", len(r.games))
	return id, nil
}

// Remove deletes a game from the map, write-locking the map.
func (r *Registry) Remove(id game.GameID) error {
	if err := r.mu.lock(); err != nil {
		return err
	}
	defer r.mu.unlock()

	if _, ok := r.games[id]; !ok {
		return ErrUnknownGame
	}
	delete(r.games, id)
	r.logger.Info("game removed", "game", id, "total", len(r.games))
	return nil
}

// View runs fn with read access to one game. Concurrent views of the same
// game proceed together; a concurrent Update excludes them.
func (r *Registry) View(id game.GameID, fn func(g *game.Game) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	defer r.mu.runlock()

	if err := e.mu.rlock(); err != nil {
		return err
	}
	defer e.mu.runlock()
	return fn(e.g)
}

// Update runs fn with exclusive access to one game. The map stays
// read-locked, so updates to different games never contend. fn runs only
// once both locks are held; on a lock timeout no state has changed.
func (r *Registry) Update(id game.GameID, fn func(g *game.Game) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	defer r.mu.runlock()

	if err := e.mu.lock(); err != nil {
		return err
	}
	defer e.mu.unlock()
	return fn(e.g)
}

// lookup read-locks the map and resolves id. On success the caller owns a
// map read lock and must release it.
func (r *Registry) lookup(id game.GameID) (*entry, error) {
	if err := r.mu.rlock(); err != nil {
		return nil, err
	}
	e, ok := r.games[id]
	if !ok {
		r.mu.runlock()
		return nil, ErrUnknownGame
	}
	return e, nil
}

// ForEach runs fn under a read lock for every game it can reach within the
// lock bound. Games whose inner lock cannot be acquired in time are skipped
// rather than failing the whole pass; the lobby listing prefers a partial
// answer over none.
func (r *Registry) ForEach(fn func(id game.GameID, g *game.Game)) error {
	if err := r.mu.rlock(); err != nil {
		return err
	}
	defer r.mu.runlock()

	for id, e := range r.games {
		if err := e.mu.rlock(); err != nil {
			r.logger.Warn("skipping wedged game", "game", id)
			continue
		}
		fn(id, e.g)
		e.mu.runlock()
	}
	return nil
}

// Count reports how many games are registered.
func (r *Registry) Count() (int, error) {
	if err := r.mu.rlock(); err != nil {
		return 0, err
	}
	defer r.mu.runlock()
	return len(r.games), nil
}

// Sweep evicts every game older than MaxAge and returns how many went. It
// write-locks the map for the duration; games whose inner lock cannot be
// read in time survive until the next pass.
func (r *Registry) Sweep() (int, error) {
	if err := r.mu.lock(); err != nil {
		return 0, err
	}
	defer r.mu.unlock()

	now := r.clock.Now("registry.sweep")
	evicted := 0
	for id, e := range r.games {
		if err := e.mu.rlock(); err != nil {
			r.logger.Warn("sweep skipping wedged game", "game", id)
			continue
		}
		age := now.Sub(e.g.StartedAt)
		e.mu.runlock()

		if age > r.opts.MaxAge {
			delete(r.games, id)
			evicted++
			r.logger.Info("swept idle game", "game", id, "age", age)
		}
	}
	return evicted, nil
}

// Run sweeps on the configured interval until ctx is done. A sweep that
// cannot take the map lock is logged and retried on the next tick.
func (r *Registry) Run(ctx context.Context) error {
	r.logger.Info("sweeper running", "interval", r.opts.SweepInterval, "max_age", r.opts.MaxAge)
	return r.clock.TickerFunc(ctx, r.opts.SweepInterval, func() error {
		evicted, err := r.Sweep()
		if err != nil {
			r.logger.Warn("sweep failed", "error", err)
			return nil
		}
		if evicted > 0 {
			r.logger.Info("sweep complete", "evicted", evicted)
		}
		return nil
	}, "registry.sweep").Wait()
}
