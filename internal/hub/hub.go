package hub

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

// Anonymous owns sessions created without a logged-in player.
const Anonymous int64 = 0

const subscriberBuffer = 8

type entry struct {
	owner int64

	mu       sync.Mutex
	session  *mines.Session
	lastSeen time.Time
	subs     map[chan mines.SessionView]struct{}
}

func (e *entry) publish(v mines.SessionView) {
	for ch := range e.subs {
		select {
		case ch <- v:
		default:
			/* slow subscriber, it will catch up on the next update */
		}
	}
}

/*
 * Hub keeps the live game sessions. Every call into a session happens
 * under that session's lock, and subscribers get a fresh view after
 * each change.
 */
type Hub struct {
	log *logrus.Logger
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	seed    *rand.Rand
	entries map[string]*entry
}

func New(log *logrus.Logger, ttl time.Duration, seed *rand.Rand) *Hub {
	return &Hub{
		log:     log,
		ttl:     ttl,
		now:     time.Now,
		seed:    seed,
		entries: make(map[string]*entry),
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Create starts a new anonymous session with the given settings and
// returns its id.
func (h *Hub) Create(settings mines.Settings) (string, mines.SessionView) {
	return h.CreateFor(Anonymous, settings)
}

// CreateFor is [Hub.Create] for a session owned by a player.
func (h *Hub) CreateFor(owner int64, settings mines.Settings) (string, mines.SessionView) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var id string
	for {
		id = fmt.Sprintf("%016x", h.seed.Uint64())
		if _, taken := h.entries[id]; !taken {
			break
		}
	}
	r := rand.New(rand.NewPCG(h.seed.Uint64(), h.seed.Uint64()))
	e := &entry{
		owner:    owner,
		session:  mines.NewSession(settings, r),
		lastSeen: h.now(),
		subs:     make(map[chan mines.SessionView]struct{}),
	}
	h.entries[id] = e

	h.log.WithFields(logrus.Fields{
		"id":         id,
		"owner":      owner,
		"difficulty": settings.Difficulty.String(),
	}).Debug("created game session")

	return id, e.session.Snapshot()
}

func (h *Hub) lookup(id string) (*entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// Owner returns the player that created the session, or [Anonymous].
func (h *Hub) Owner(id string) (int64, error) {
	e, err := h.lookup(id)
	if err != nil {
		return Anonymous, err
	}
	return e.owner, nil
}

func (h *Hub) View(id string) (mines.SessionView, error) {
	return h.Do(id, func(*mines.Session) bool { return false })
}

/*
 * Do runs fn against the session with the session locked. When fn reports
 * a change every subscriber receives the new view. A contract violation
 * inside the engine comes back as an error instead of a panic.
 */
func (h *Hub) Do(id string, fn func(s *mines.Session) bool) (view mines.SessionView, err error) {
	e, err := h.lookup(id)
	if err != nil {
		return view, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastSeen = h.now()
	changed, err := apply(e.session, fn)
	if err != nil {
		h.log.WithError(err).WithField("id", id).Error("game session rejected call")
		return view, err
	}
	view = e.session.Snapshot()
	if changed {
		e.publish(view)
	}
	return view, nil
}

func apply(s *mines.Session, fn func(s *mines.Session) bool) (changed bool, err error) {
	defer mines.Recover(&err)
	return fn(s), nil
}

// Subscribe returns a channel of views pushed after every change and a
// function that cancels the subscription.
func (h *Hub) Subscribe(id string) (<-chan mines.SessionView, func(), error) {
	e, err := h.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan mines.SessionView, subscriberBuffer)
	e.mu.Lock()
	e.subs[ch] = struct{}{}
	e.lastSeen = h.now()
	e.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, ch)
			e.lastSeen = h.now()
			e.mu.Unlock()
		})
	}
	return ch, cancel, nil
}

func (h *Hub) snapshot() []*entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entries := make([]*entry, 0, len(h.entries))
	for _, e := range h.entries {
		entries = append(entries, e)
	}
	return entries
}

// Tick advances the clock of every running game by one second.
func (h *Hub) Tick() {
	for _, e := range h.snapshot() {
		e.mu.Lock()
		if e.session.Tick() {
			e.publish(e.session.Snapshot())
		}
		e.mu.Unlock()
	}
}

// Evict drops sessions nobody has touched for longer than the ttl.
// Sessions with live subscribers are kept.
func (h *Hub) Evict() int {
	deadline := h.now().Add(-h.ttl)

	h.mu.Lock()
	defer h.mu.Unlock()

	evicted := 0
	for id, e := range h.entries {
		e.mu.Lock()
		idle := len(e.subs) == 0 && e.lastSeen.Before(deadline)
		e.mu.Unlock()
		if idle {
			delete(h.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		h.log.WithField("count", evicted).Debug("evicted idle game sessions")
	}
	return evicted
}

// Run drives the game clocks until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	h.log.WithField("ttl", h.ttl.String()).Info("game hub running")
	for {
		select {
		case <-ctx.Done():
			h.log.Info("game hub stopped")
			return nil
		case <-ticker.C:
			h.Tick()
			h.Evict()
		}
	}
}
