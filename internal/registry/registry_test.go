package registry

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/quizshow/internal/game"
)

func newTestRegistry(t *testing.T, clock quartz.Clock, opts Options) *Registry {
	t.Helper()
	return New(log.New(io.Discard), clock, opts)
}

func TestInsertRemove(t *testing.T) {
	r := newTestRegistry(t, quartz.NewReal(), Options{})

	id, err := r.Insert(game.New("Alex", "", time.Now()))
	require.NoError(t, err)

	count, err := r.Count()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, r.Remove(id))
	require.ErrorIs(t, r.Remove(id), ErrUnknownGame)

	count, err = r.Count()
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestUnknownGame(t *testing.T) {
	r := newTestRegistry(t, quartz.NewReal(), Options{})

	err := r.View(game.NewGameID(), func(*game.Game) error { return nil })
	require.ErrorIs(t, err, ErrUnknownGame)

	err = r.Update(game.NewGameID(), func(*game.Game) error { return nil })
	require.ErrorIs(t, err, ErrUnknownGame)
}

func TestUpdateIsObservedByView(t *testing.T) {
	r := newTestRegistry(t, quartz.NewReal(), Options{})

	id, err := r.Insert(game.New("Alex", "", time.Now()))
	require.NoError(t, err)

	err = r.Update(id, func(g *game.Game) error {
		g.Ended = true
		return nil
	})
	require.NoError(t, err)

	err = r.View(id, func(g *game.Game) error {
		require.True(t, g.Ended)
		return nil
	})
	require.NoError(t, err)
}

func TestConcurrentViewsShareTheLock(t *testing.T) {
	r := newTestRegistry(t, quartz.NewReal(), Options{LockTimeout: 25 * time.Millisecond})

	id, err := r.Insert(game.New("Alex", "", time.Now()))
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.View(id, func(*game.Game) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	require.NoError(t, r.View(id, func(*game.Game) error { return nil }))

	close(release)
	require.NoError(t, <-done)
}

func TestHeldUpdateTimesOutOthers(t *testing.T) {
	r := newTestRegistry(t, quartz.NewReal(), Options{LockTimeout: 25 * time.Millisecond})

	id, err := r.Insert(game.New("Alex", "", time.Now()))
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.Update(id, func(*game.Game) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	err = r.Update(id, func(*game.Game) error { return nil })
	require.ErrorIs(t, err, ErrLockTimeout)

	err = r.View(id, func(*game.Game) error { return nil })
	require.ErrorIs(t, err, ErrLockTimeout)

	close(release)
	require.NoError(t, <-done)
}

func TestUpdatesToDifferentGamesDoNotContend(t *testing.T) {
	r := newTestRegistry(t, quartz.NewReal(), Options{LockTimeout: 25 * time.Millisecond})

	idA, err := r.Insert(game.New("Alex", "", time.Now()))
	require.NoError(t, err)
	idB, err := r.Insert(game.New("Blair", "", time.Now()))
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.Update(idA, func(*game.Game) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	require.NoError(t, r.Update(idB, func(*game.Game) error { return nil }))

	close(release)
	require.NoError(t, <-done)
}

func TestInsertWaitsForReaders(t *testing.T) {
	r := newTestRegistry(t, quartz.NewReal(), Options{LockTimeout: 25 * time.Millisecond})

	id, err := r.Insert(game.New("Alex", "", time.Now()))
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.View(id, func(*game.Game) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	_, err = r.Insert(game.New("Blair", "", time.Now()))
	require.ErrorIs(t, err, ErrLockTimeout)

	close(release)
	require.NoError(t, <-done)
}

func TestForEachSkipsWedgedGames(t *testing.T) {
	r := newTestRegistry(t, quartz.NewReal(), Options{LockTimeout: 25 * time.Millisecond})

	idA, err := r.Insert(game.New("Alex", "", time.Now()))
	require.NoError(t, err)
	idB, err := r.Insert(game.New("Blair", "", time.Now()))
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.Update(idA, func(*game.Game) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	visited := make(map[game.GameID]bool)
	err = r.ForEach(func(id game.GameID, _ *game.Game) {
		visited[id] = true
	})
	require.NoError(t, err)
	require.Equal(t, map[game.GameID]bool{idB: true}, visited)

	close(release)
	require.NoError(t, <-done)
}

func TestSweepEvictsOldGames(t *testing.T) {
	mock := quartz.NewMock(t)
	r := newTestRegistry(t, mock, Options{MaxAge: time.Hour})
	now := mock.Now()

	oldID, err := r.Insert(game.New("Alex", "", now.Add(-2*time.Hour)))
	require.NoError(t, err)
	freshID, err := r.Insert(game.New("Blair", "", now.Add(-time.Minute)))
	require.NoError(t, err)

	evicted, err := r.Sweep()
	require.NoError(t, err)
	require.Equal(t, 1, evicted)

	err = r.View(oldID, func(*game.Game) error { return nil })
	require.ErrorIs(t, err, ErrUnknownGame)
	require.NoError(t, r.View(freshID, func(*game.Game) error { return nil }))
}

func TestRunSweepsOnInterval(t *testing.T) {
	mock := quartz.NewMock(t)
	trap := mock.Trap().TickerFunc("registry.sweep")
	defer trap.Close()

	r := newTestRegistry(t, mock, Options{SweepInterval: time.Minute, MaxAge: time.Hour})
	_, err := r.Insert(game.New("Alex", "", mock.Now().Add(-2*time.Hour)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	trap.MustWait(ctx).Release(ctx)
	mock.Advance(time.Minute).MustWait(ctx)

	count, err := r.Count()
	require.NoError(t, err)
	require.Equal(t, 0, count)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
