package queue

import (
	"fmt"
	"testing"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/vocab"
)

// scriptedRand returns pre-programmed values so picks are deterministic.
type scriptedRand struct {
	values []int
	calls  int
}

func (r *scriptedRand) Intn(n int) int {
	v := 0
	if r.calls < len(r.values) {
		v = r.values[r.calls]
	}
	r.calls++
	if v >= n {
		v = n - 1
	}
	return v
}

func makeItems(n int) []vocab.Item {
	items := make([]vocab.Item, n)
	for i := range items {
		items[i] = vocab.Item{ID: fmt.Sprintf("w%02d", i)}
	}
	return items
}

func TestNewManager_OrdersByStoredPosition(t *testing.T) {
	items := makeItems(3)
	progress := []vocab.Progress{
		{ItemID: "w00", Level: level.Level2, QueuePosition: 5},
		{ItemID: "w01", Level: level.Level2, QueuePosition: 1},
		// w02 has no entry: Level0 at catalog index 2.
	}
	m := NewManager(items, progress, &scriptedRand{})

	snap := m.Snapshot()
	if got := snap[level.Level2]; len(got) != 2 || got[0] != "w01" || got[1] != "w00" {
		t.Errorf("Level2 queue = %v, want [w01 w00]", got)
	}
	if got := snap[level.Level0]; len(got) != 1 || got[0] != "w02" {
		t.Errorf("Level0 queue = %v, want [w02]", got)
	}
}

func TestPick_WindowedSelection(t *testing.T) {
	items := makeItems(5)
	m := NewManager(items, nil, &scriptedRand{values: []int{2, 0}})

	id, ok := m.Pick(level.Level0, DefaultWindowSize)
	if !ok || id != "w02" {
		t.Errorf("first pick = %q, %v; want w02", id, ok)
	}
	id, ok = m.Pick(level.Level0, DefaultWindowSize)
	if !ok || id != "w00" {
		t.Errorf("second pick = %q, %v; want w00", id, ok)
	}
}

func TestPick_EmptyQueue(t *testing.T) {
	m := NewManager(nil, nil, &scriptedRand{})
	if _, ok := m.Pick(level.Level3, DefaultWindowSize); ok {
		t.Error("pick from empty queue should report not ok")
	}
}

func TestPick_WindowLargerThanQueue(t *testing.T) {
	m := NewManager(makeItems(2), nil, &scriptedRand{values: []int{1}})
	id, ok := m.Pick(level.Level0, 10)
	if !ok || id != "w01" {
		t.Errorf("pick = %q, %v; want w01 (window clamps to length)", id, ok)
	}
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	m := NewManager(makeItems(2), nil, &scriptedRand{})
	m.Remove(level.Level0, "missing")
	if m.Len(level.Level0) != 2 {
		t.Errorf("Len = %d, want 2", m.Len(level.Level0))
	}
}

func TestInsert_ClampsPosition(t *testing.T) {
	m := NewManager(makeItems(2), nil, &scriptedRand{})
	idx := m.Insert(level.Level0, "extra", 99)
	if idx != 2 {
		t.Errorf("insert index = %d, want 2 (clamped to append)", idx)
	}
	if got := m.Snapshot()[level.Level0]; got[2] != "extra" {
		t.Errorf("queue = %v, want extra at tail", got)
	}
}

func TestMoveToLevel_AppendsToTail(t *testing.T) {
	items := makeItems(3)
	progress := []vocab.Progress{
		{ItemID: "w00", Level: level.Level1, QueuePosition: 0},
		{ItemID: "w01", Level: level.Level1, QueuePosition: 1},
		{ItemID: "w02", Level: level.Level2, QueuePosition: 0},
	}
	m := NewManager(items, progress, &scriptedRand{})

	idx := m.MoveToLevel("w00", level.Level1, level.Level2)
	if idx != 1 {
		t.Errorf("new index = %d, want 1", idx)
	}
	snap := m.Snapshot()
	if got := snap[level.Level2]; len(got) != 2 || got[1] != "w00" {
		t.Errorf("Level2 = %v, want [w02 w00]", got)
	}
	if got := snap[level.Level1]; len(got) != 1 || got[0] != "w01" {
		t.Errorf("Level1 = %v, want [w01]", got)
	}
}

func TestMoveToLevel_AbsentFromSource(t *testing.T) {
	m := NewManager(makeItems(1), nil, &scriptedRand{})
	// Moving an id not present in from is a no-op removal plus append.
	idx := m.MoveToLevel("ghost", level.Level4, level.Level5)
	if idx != 0 {
		t.Errorf("index = %d, want 0", idx)
	}
	if got := m.Snapshot()[level.Level5]; len(got) != 1 || got[0] != "ghost" {
		t.Errorf("Level5 = %v", got)
	}
}

func TestUpdatePosition_SpacingRule(t *testing.T) {
	items := makeItems(50)
	progress := make([]vocab.Progress, len(items))
	for i, item := range items {
		progress[i] = vocab.Progress{ItemID: item.ID, Level: level.Level1, QueuePosition: i}
	}
	m := NewManager(items, progress, &scriptedRand{})

	// Correct answer with streak 4 and increment 10 lands at position 40.
	if idx := m.UpdatePosition("w00", level.Level1, true, 4, 5, 10); idx != 40 {
		t.Errorf("correct reposition = %d, want 40", idx)
	}

	// Incorrect answer snaps to the focus loop position regardless of streak.
	if idx := m.UpdatePosition("w01", level.Level1, false, 9, 5, 10); idx != 5 {
		t.Errorf("incorrect reposition = %d, want 5", idx)
	}
}

func TestUpdatePosition_CapsStreakGrowth(t *testing.T) {
	items := makeItems(150)
	progress := make([]vocab.Progress, len(items))
	for i, item := range items {
		progress[i] = vocab.Progress{ItemID: item.ID, Level: level.Level5, QueuePosition: i}
	}
	m := NewManager(items, progress, &scriptedRand{})

	if idx := m.UpdatePosition("w00", level.Level5, true, 20, 5, 10); idx != maxQueuePosition {
		t.Errorf("reposition = %d, want cap %d", idx, maxQueuePosition)
	}
}

func TestReplenishFocusPool(t *testing.T) {
	items := makeItems(12)
	var progress []vocab.Progress
	for i := 0; i < 7; i++ {
		progress = append(progress, vocab.Progress{ItemID: items[i].ID, Level: level.Level1, QueuePosition: i})
	}
	for i := 7; i < 12; i++ {
		progress = append(progress, vocab.Progress{ItemID: items[i].ID, Level: level.Level0, QueuePosition: i})
	}
	m := NewManager(items, progress, &scriptedRand{})

	promoted := m.ReplenishFocusPool(10, "")
	if len(promoted) != 3 {
		t.Fatalf("promoted %d items, want 3", len(promoted))
	}
	if promoted[0] != "w07" || promoted[1] != "w08" || promoted[2] != "w09" {
		t.Errorf("promoted = %v, want front of Level0 in order", promoted)
	}
	if m.Len(level.Level1) != 10 || m.Len(level.Level0) != 2 {
		t.Errorf("lengths = %d/%d, want 10/2", m.Len(level.Level1), m.Len(level.Level0))
	}
}

func TestReplenishFocusPool_FullPool(t *testing.T) {
	items := makeItems(3)
	progress := []vocab.Progress{
		{ItemID: "w00", Level: level.Level1, QueuePosition: 0},
		{ItemID: "w01", Level: level.Level1, QueuePosition: 1},
		{ItemID: "w02", Level: level.Level0, QueuePosition: 0},
	}
	m := NewManager(items, progress, &scriptedRand{})
	if promoted := m.ReplenishFocusPool(2, ""); promoted != nil {
		t.Errorf("promoted = %v, want none", promoted)
	}
}

func TestReplenishFocusPool_SkipsExcluded(t *testing.T) {
	items := makeItems(2)
	progress := []vocab.Progress{
		{ItemID: "w00", Level: level.Level0, QueuePosition: 0},
		{ItemID: "w01", Level: level.Level0, QueuePosition: 1},
	}
	m := NewManager(items, progress, &scriptedRand{})

	promoted := m.ReplenishFocusPool(1, "w00")
	if len(promoted) != 1 || promoted[0] != "w01" {
		t.Errorf("promoted = %v, want [w01]", promoted)
	}
	if got := m.Snapshot()[level.Level0]; len(got) != 1 || got[0] != "w00" {
		t.Errorf("Level0 = %v, want excluded id to stay", got)
	}
}

// The union of all queues must always equal the item set, each id once.
func TestQueueInvariant_AfterMixedOperations(t *testing.T) {
	items := makeItems(20)
	m := NewManager(items, nil, &scriptedRand{})

	m.ReplenishFocusPool(5, "")
	m.UpdatePosition("w00", level.Level1, true, 2, 5, 10)
	m.MoveToLevel("w01", level.Level1, level.Level2)
	m.UpdatePosition("w02", level.Level1, false, 0, 5, 10)
	m.MoveToLevel("w01", level.Level2, level.Level3)
	m.ReplenishFocusPool(5, "w02")

	seen := make(map[string]int)
	total := 0
	for _, q := range m.Snapshot() {
		for _, id := range q {
			seen[id]++
			total++
		}
	}
	if total != len(items) {
		t.Fatalf("total queued = %d, want %d", total, len(items))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %s appears %d times", id, n)
		}
	}
}
