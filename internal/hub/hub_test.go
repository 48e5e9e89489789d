package hub

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func newTestHub(t *testing.T) (*Hub, *time.Time) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := New(log, time.Minute, rand.New(rand.NewPCG(1, 2)))
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return clock }
	return h, &clock
}

func testSettings() mines.Settings {
	s := mines.DefaultSettings()
	s.Difficulty = mines.CustomDifficulty(mines.Dimensions{Width: 4, Height: 4, MineCount: 2})
	return s
}

func TestCreateAndView(t *testing.T) {
	t.Parallel()

	h, _ := newTestHub(t)
	id, view := h.Create(testSettings())
	assert.Len(t, id, 16)
	assert.Equal(t, mines.NotStarted, view.Status)
	assert.Equal(t, 1, h.Len())

	got, err := h.View(id)
	require.NoError(t, err)
	assert.Equal(t, view, got)

	other, _ := h.Create(testSettings())
	assert.NotEqual(t, id, other)

	_, err = h.View("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOwner(t *testing.T) {
	t.Parallel()

	h, _ := newTestHub(t)
	anon, _ := h.Create(testSettings())
	owned, _ := h.CreateFor(7, testSettings())

	owner, err := h.Owner(anon)
	require.NoError(t, err)
	assert.Equal(t, Anonymous, owner)

	owner, err = h.Owner(owned)
	require.NoError(t, err)
	assert.Equal(t, int64(7), owner)

	_, err = h.Owner("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoPublishesChanges(t *testing.T) {
	t.Parallel()

	h, _ := newTestHub(t)
	id, _ := h.Create(testSettings())
	updates, cancel, err := h.Subscribe(id)
	require.NoError(t, err)
	defer cancel()

	view, err := h.Do(id, func(s *mines.Session) bool {
		s.Press(0, mines.ButtonLeft)
		return s.Release(0, mines.ButtonLeft)
	})
	require.NoError(t, err)
	assert.NotEqual(t, mines.NotStarted, view.Status)

	select {
	case pushed := <-updates:
		assert.Equal(t, view, pushed)
	default:
		t.Fatal("expected a pushed view")
	}

	_, err = h.Do(id, func(*mines.Session) bool { return false })
	require.NoError(t, err)
	assert.Empty(t, updates, "unchanged sessions are not pushed")

	cancel()
	_, err = h.Do(id, func(*mines.Session) bool { return true })
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestDoRecoversAssertions(t *testing.T) {
	t.Parallel()

	h, _ := newTestHub(t)
	id, _ := h.Create(testSettings())
	_, err := h.Do(id, func(s *mines.Session) bool {
		panic(mines.AssertionError{})
	})
	assert.Error(t, err)

	assert.Panics(t, func() {
		h.Do(id, func(s *mines.Session) bool { panic("boom") })
	})
}

func TestTick(t *testing.T) {
	t.Parallel()

	h, _ := newTestHub(t)
	idle, _ := h.Create(testSettings())
	running, _ := h.Create(testSettings())
	_, err := h.Do(running, func(s *mines.Session) bool {
		s.Press(0, mines.ButtonLeft)
		return s.Release(0, mines.ButtonLeft)
	})
	require.NoError(t, err)

	h.Tick()
	h.Tick()

	v, err := h.View(idle)
	require.NoError(t, err)
	assert.Equal(t, 0, v.ElapsedSeconds)

	v, err = h.View(running)
	require.NoError(t, err)
	if v.Status == mines.Active {
		assert.Equal(t, 2, v.ElapsedSeconds)
	}
}

func TestEvict(t *testing.T) {
	t.Parallel()

	h, clock := newTestHub(t)
	stale, _ := h.Create(testSettings())
	watched, _ := h.Create(testSettings())
	_, cancel, err := h.Subscribe(watched)
	require.NoError(t, err)

	*clock = clock.Add(30 * time.Second)
	fresh, _ := h.Create(testSettings())

	*clock = clock.Add(45 * time.Second)
	assert.Equal(t, 1, h.Evict())
	_, err = h.View(stale)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = h.View(fresh)
	assert.NoError(t, err)
	_, err = h.View(watched)
	assert.NoError(t, err)

	cancel()
	*clock = clock.Add(2 * time.Minute)
	assert.Equal(t, 2, h.Evict())
	assert.Equal(t, 0, h.Len())
}

func TestConcurrentCalls(t *testing.T) {
	t.Parallel()

	h, _ := newTestHub(t)
	id, _ := h.Create(mines.DefaultSettings())

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 20 {
				cell := (i*20 + j) % 81
				_, err := h.Do(id, func(s *mines.Session) bool {
					s.Press(cell, mines.ButtonRight)
					return s.Release(cell, mines.ButtonRight)
				})
				assert.NoError(t, err)
			}
			h.Tick()
		}()
	}
	wg.Wait()

	v, err := h.View(id)
	require.NoError(t, err)
	assert.Len(t, v.Grid, 81)
}

func TestRunStopsWithContext(t *testing.T) {
	t.Parallel()

	h, _ := newTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
