// Package queue owns the six per-level review queues. Queue order models
// "soonest to review" at the head; every item id lives in exactly one
// queue at any time.
package queue

import (
	"math/rand"
	"sort"
	"time"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/vocab"
)

// DefaultWindowSize is how many head elements a pick chooses among.
const DefaultWindowSize = 3

// maxQueuePosition caps how far back a correct streak can push an item,
// so positions cannot grow without bound at the level ceiling.
const maxQueuePosition = 100

// Rand is the source of randomness for windowed picks. Tests supply a
// seeded implementation to assert exact selections.
type Rand interface {
	Intn(n int) int
}

// NewRand returns the default time-seeded source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Manager holds one ordered id sequence per level.
type Manager struct {
	queues map[level.Level][]string
	rng    Rand
}

// NewManager rebuilds the queues from catalog order and stored progress.
// Items without a progress entry enter Level0 at their catalog index;
// within a level, stored queue positions decide the order.
func NewManager(items []vocab.Item, progress []vocab.Progress, rng Rand) *Manager {
	if rng == nil {
		rng = NewRand()
	}

	progressByID := make(map[string]vocab.Progress, len(progress))
	for _, p := range progress {
		progressByID[p.ItemID] = p
	}

	type entry struct {
		id       string
		position int
	}
	groups := make(map[level.Level][]entry)
	for i, item := range items {
		lvl, pos := level.Level0, i
		if p, ok := progressByID[item.ID]; ok {
			lvl, pos = p.Level, p.QueuePosition
		}
		groups[lvl] = append(groups[lvl], entry{id: item.ID, position: pos})
	}

	m := &Manager{queues: make(map[level.Level][]string, len(level.All)), rng: rng}
	for _, lvl := range level.All {
		group := groups[lvl]
		sort.SliceStable(group, func(i, j int) bool { return group[i].position < group[j].position })
		ids := make([]string, len(group))
		for i, e := range group {
			ids[i] = e.id
		}
		m.queues[lvl] = ids
	}
	return m
}

// Pick uniformly selects among the first min(window, len) elements of a
// level's queue, favoring due-soon items while keeping variety.
// ok is false on an empty queue.
func (m *Manager) Pick(lvl level.Level, window int) (id string, ok bool) {
	q := m.queues[lvl]
	if len(q) == 0 {
		return "", false
	}
	limit := window
	if limit > len(q) {
		limit = len(q)
	}
	if limit < 1 {
		limit = 1
	}
	return q[m.rng.Intn(limit)], true
}

// Remove deletes the first occurrence of id from a level's queue.
// Removing an absent id is a no-op.
func (m *Manager) Remove(lvl level.Level, id string) {
	q := m.queues[lvl]
	for i, v := range q {
		if v == id {
			m.queues[lvl] = append(q[:i], q[i+1:]...)
			return
		}
	}
}

// Insert places id at min(position, len); out-of-range positions clamp
// to an append rather than erroring. Returns the actual index used.
func (m *Manager) Insert(lvl level.Level, id string, position int) int {
	q := m.queues[lvl]
	idx := position
	if idx > len(q) {
		idx = len(q)
	}
	if idx < 0 {
		idx = 0
	}
	q = append(q, "")
	copy(q[idx+1:], q[idx:])
	q[idx] = id
	m.queues[lvl] = q
	return idx
}

// MoveToLevel removes id from one queue and appends it to another's tail,
// returning the new index for use as the fresh queue position.
func (m *Manager) MoveToLevel(id string, from, to level.Level) int {
	m.Remove(from, id)
	m.queues[to] = append(m.queues[to], id)
	return len(m.queues[to]) - 1
}

// UpdatePosition applies the spacing rule: a correct answer pushes the
// item back proportionally to its streak, a wrong answer snaps it to the
// near-term focus-loop position so it recurs soon. Returns the index the
// item landed on.
func (m *Manager) UpdatePosition(id string, lvl level.Level, correct bool, consecutiveCorrect, focusLoopSize, increment int) int {
	m.Remove(lvl, id)
	position := focusLoopSize
	if correct {
		position = increment * consecutiveCorrect
		if position > maxQueuePosition {
			position = maxQueuePosition
		}
	}
	return m.Insert(lvl, id, position)
}

// ReplenishFocusPool tops the Level1 queue up to maxFocusWords by
// promoting items from the front of Level0, preserving their relative
// order and never promoting excludeID. Returns the promoted ids.
func (m *Manager) ReplenishFocusPool(maxFocusWords int, excludeID string) []string {
	needed := maxFocusWords - len(m.queues[level.Level1])
	if needed <= 0 {
		return nil
	}

	var promote []string
	for _, id := range m.queues[level.Level0] {
		if len(promote) == needed {
			break
		}
		if id == excludeID {
			continue
		}
		promote = append(promote, id)
	}
	for _, id := range promote {
		m.MoveToLevel(id, level.Level0, level.Level1)
	}
	return promote
}

// Len returns the current length of a level's queue.
func (m *Manager) Len(lvl level.Level) int {
	return len(m.queues[lvl])
}

// Snapshot returns a defensive copy of every queue.
func (m *Manager) Snapshot() map[level.Level][]string {
	out := make(map[level.Level][]string, len(m.queues))
	for lvl, q := range m.queues {
		out[lvl] = append([]string(nil), q...)
	}
	return out
}
