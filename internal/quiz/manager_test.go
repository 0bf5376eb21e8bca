package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/lingvo-app/lingvo/internal/level"
	"github.com/lingvo-app/lingvo/internal/vocab"
)

func testOptions() Options {
	return Options{
		MaxFocusWords:             10,
		CorrectAnswersToLevelUp:   3,
		MistakesToLevelDown:       3,
		HistorySizeForDegradation: 10,
		QueuePositionIncrement:    10,
		EnableUsageExamples:       true,
	}
}

func singleItem(lvl level.Level) ([]vocab.Item, []vocab.Progress) {
	items := []vocab.Item{{
		ID:                 "w1",
		SourceText:         "dog",
		SourceLanguage:     "en",
		SourceUsageExample: "The dog barks.",
		TargetText:         "собака",
		TargetLanguage:     "ru",
		TargetUsageExample: "Собака лает.",
	}}
	progress := []vocab.Progress{{ItemID: "w1", Level: lvl, RecentHistory: []bool{}}}
	return items, progress
}

func TestNextQuestion_DirectionAndType(t *testing.T) {
	items, progress := singleItem(level.Level1)
	m := NewManager(items, progress, testOptions(), headRand{})

	res := m.NextQuestion()
	if res.Question == nil {
		t.Fatal("expected a question")
	}
	q := res.Question
	if q.QuestionText != "dog" || q.Direction != level.DirectionNormal || q.QuestionType != level.TypeTranslation {
		t.Errorf("question = %+v", q)
	}
	if q.UsageExample != "" {
		t.Error("translation questions carry no usage example")
	}
}

func TestNextQuestion_UsageLevel(t *testing.T) {
	items, progress := singleItem(level.Level4)
	m := NewManager(items, progress, testOptions(), headRand{})

	if _, err := m.SetLevel(level.Level4); err != nil {
		t.Fatal(err)
	}
	res := m.NextQuestion()
	if res.Question == nil {
		t.Fatal("expected a question")
	}
	q := res.Question
	if q.Direction != level.DirectionReverse || q.QuestionType != level.TypeUsage {
		t.Errorf("question = %+v", q)
	}
	if q.QuestionText != "собака" || q.UsageExample != "Собака лает." {
		t.Errorf("reverse usage question = %+v", q)
	}
}

func TestNextQuestion_AdjustsLevelWhenEmpty(t *testing.T) {
	items, progress := singleItem(level.Level2)
	m := NewManager(items, progress, testOptions(), headRand{})

	res := m.NextQuestion()
	if res.Question == nil {
		t.Fatal("expected a question after level adjustment")
	}
	if !res.LevelAdjusted || res.NewLevel != level.Level2 {
		t.Errorf("adjustment = %+v", res)
	}
	if m.CurrentLevel() != level.Level2 {
		t.Errorf("CurrentLevel = %v", m.CurrentLevel())
	}
}

func TestNextQuestion_EmptyCatalog(t *testing.T) {
	m := NewManager(nil, nil, testOptions(), headRand{})
	res := m.NextQuestion()
	if res.Question != nil {
		t.Error("empty catalog should yield no question, not an error")
	}
}

func TestSubmitAnswer_Promotion(t *testing.T) {
	items, progress := singleItem(level.Level2)
	m := NewManager(items, progress, testOptions(), headRand{})
	if _, err := m.SetLevel(level.Level2); err != nil {
		t.Fatal(err)
	}

	// Level2 asks in reverse, so the expected answer is the source text.
	for i := 0; i < 2; i++ {
		res, err := m.SubmitAnswer("w1", "dog")
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsCorrect || res.LevelChange != nil {
			t.Fatalf("submission %d = %+v", i, res)
		}
	}

	res, err := m.SubmitAnswer("w1", "dog")
	if err != nil {
		t.Fatal(err)
	}
	if res.LevelChange == nil || res.LevelChange.From != level.Level2 || res.LevelChange.To != level.Level3 {
		t.Fatalf("third correct answer should promote: %+v", res.LevelChange)
	}

	p := m.State().Progress[0]
	if p.Level != level.Level3 || p.ConsecutiveCorrect != 0 {
		t.Errorf("progress after promotion = %+v", p)
	}
	if len(p.RecentHistory) == 0 {
		t.Error("promotion must preserve history")
	}
}

func TestSubmitAnswer_DemotionClearsHistory(t *testing.T) {
	items, progress := singleItem(level.Level3)
	m := NewManager(items, progress, testOptions(), headRand{})
	if _, err := m.SetLevel(level.Level3); err != nil {
		t.Fatal(err)
	}

	var last *SubmissionResult
	for i := 0; i < 3; i++ {
		res, err := m.SubmitAnswer("w1", "wrong")
		if err != nil {
			t.Fatal(err)
		}
		last = res
	}
	if last.LevelChange == nil || last.LevelChange.To != level.Level2 {
		t.Fatalf("three misses should demote: %+v", last.LevelChange)
	}

	p := m.State().Progress[0]
	if p.Level != level.Level2 {
		t.Errorf("level = %v", p.Level)
	}
	if len(p.RecentHistory) != 0 {
		t.Errorf("history = %v, want cleared on demotion", p.RecentHistory)
	}
	if p.ConsecutiveCorrect != 0 {
		t.Errorf("consecutive = %d", p.ConsecutiveCorrect)
	}
}

func TestSubmitAnswer_WrongAnswerResetsStreak(t *testing.T) {
	items, progress := singleItem(level.Level1)
	m := NewManager(items, progress, testOptions(), headRand{})

	if _, err := m.SubmitAnswer("w1", "собака"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SubmitAnswer("w1", "nope"); err != nil {
		t.Fatal(err)
	}

	p := m.State().Progress[0]
	if p.ConsecutiveCorrect != 0 {
		t.Errorf("consecutive = %d, want 0 after a miss", p.ConsecutiveCorrect)
	}
	if p.CorrectCount != 1 || p.IncorrectCount != 1 {
		t.Errorf("counters = %d/%d", p.CorrectCount, p.IncorrectCount)
	}
}

func TestSubmitAnswer_HistoryBounded(t *testing.T) {
	items, progress := singleItem(level.Level1)
	opts := testOptions()
	opts.CorrectAnswersToLevelUp = 100 // keep the item in place
	opts.HistorySizeForDegradation = 4
	m := NewManager(items, progress, opts, headRand{})

	for i := 0; i < 6; i++ {
		if _, err := m.SubmitAnswer("w1", "собака"); err != nil {
			t.Fatal(err)
		}
	}
	p := m.State().Progress[0]
	if len(p.RecentHistory) != 4 {
		t.Errorf("history length = %d, want window size 4", len(p.RecentHistory))
	}
}

func TestSubmitAnswer_NotFound(t *testing.T) {
	m := NewManager(nil, nil, testOptions(), headRand{})
	if _, err := m.SubmitAnswer("ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := m.RevealAnswer("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("reveal err = %v, want ErrNotFound", err)
	}
}

func TestResponseTime_MeasuredAndCancelled(t *testing.T) {
	items, progress := singleItem(level.Level1)
	m := NewManager(items, progress, testOptions(), headRand{})

	clock := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	if res := m.NextQuestion(); res.Question == nil {
		t.Fatal("expected question")
	}
	clock = clock.Add(1500 * time.Millisecond)

	res, err := m.SubmitAnswer("w1", "собака")
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasResponseTime || res.ResponseTime != 1500*time.Millisecond {
		t.Errorf("response time = %v (%v)", res.ResponseTime, res.HasResponseTime)
	}

	// Reveal cancels the timer: the next submission has no latency.
	if r := m.NextQuestion(); r.Question == nil {
		t.Fatal("expected question")
	}
	if _, err := m.RevealAnswer("w1"); err != nil {
		t.Fatal(err)
	}
	res, err = m.SubmitAnswer("w1", "собака")
	if err != nil {
		t.Fatal(err)
	}
	if res.HasResponseTime {
		t.Error("reveal should cancel the response timer")
	}
}

func TestSetLevel_SubstitutesWhenEmpty(t *testing.T) {
	items, progress := singleItem(level.Level0)
	m := NewManager(items, progress, testOptions(), headRand{})

	res, err := m.SetLevel(level.Level2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Switched {
		t.Error("Level2 has no words; the request must not succeed")
	}
	if res.Actual != level.Level1 {
		t.Errorf("Actual = %v, want Level1", res.Actual)
	}
	if res.Message == "" {
		t.Error("substitution should carry a reason")
	}

	if _, err := m.SetLevel(level.Level0); err == nil {
		t.Error("Level0 is not requestable")
	}
}

func TestFocusPoolReplenishedAtConstruction(t *testing.T) {
	var items []vocab.Item
	var progress []vocab.Progress
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		items = append(items, vocab.Item{ID: id})
		lvl := level.Level1
		if i >= 7 {
			lvl = level.Level0
		}
		progress = append(progress, vocab.Progress{ItemID: id, Level: lvl, QueuePosition: i})
	}

	m := NewManager(items, progress, testOptions(), headRand{})

	queues := m.State().Queues
	if len(queues[level.Level1]) != 10 || len(queues[level.Level0]) != 2 {
		t.Errorf("queues = L1:%d L0:%d, want 10/2", len(queues[level.Level1]), len(queues[level.Level0]))
	}
	// Relative order of promoted items is preserved.
	l1 := queues[level.Level1]
	tail := l1[len(l1)-3:]
	if tail[0] != "h" || tail[1] != "i" || tail[2] != "j" {
		t.Errorf("promoted tail = %v", tail)
	}
}

func TestDemotionToUnseenExcludedFromReplenish(t *testing.T) {
	// Two items at Level1; demoting one to Level0 must not bounce it
	// straight back into the focus pool.
	items := []vocab.Item{
		{ID: "a", SourceText: "one", TargetText: "один"},
		{ID: "b", SourceText: "two", TargetText: "два"},
	}
	progress := []vocab.Progress{
		{ItemID: "a", Level: level.Level1},
		{ItemID: "b", Level: level.Level1, QueuePosition: 1},
	}
	opts := testOptions()
	opts.MaxFocusWords = 2
	m := NewManager(items, progress, opts, headRand{})

	for i := 0; i < 3; i++ {
		if _, err := m.SubmitAnswer("a", "wrong"); err != nil {
			t.Fatal(err)
		}
	}

	queues := m.State().Queues
	if len(queues[level.Level0]) != 1 || queues[level.Level0][0] != "a" {
		t.Errorf("Level0 = %v, want demoted item to stay out of the pool", queues[level.Level0])
	}
}

// assertQueuesConsistent checks that every item sits in exactly one
// queue and that its progress record names that queue's level.
func assertQueuesConsistent(t *testing.T, m *Manager) {
	t.Helper()
	snap := m.State()

	placements := make(map[string]level.Level)
	total := 0
	for lvl, q := range snap.Queues {
		for _, id := range q {
			if prev, dup := placements[id]; dup {
				t.Fatalf("%s queued at both %s and %s", id, prev, lvl)
			}
			placements[id] = lvl
			total++
		}
	}
	if total != len(snap.Items) {
		t.Fatalf("queued ids = %d, want one per item (%d)", total, len(snap.Items))
	}
	for _, p := range snap.Progress {
		if placements[p.ItemID] != p.Level {
			t.Fatalf("%s progress says %s but it is queued at %s", p.ItemID, p.Level, placements[p.ItemID])
		}
	}
}

func TestFreshCatalogQueueConsistency(t *testing.T) {
	items := []vocab.Item{
		{ID: "a", SourceText: "one", TargetText: "один"},
		{ID: "b", SourceText: "two", TargetText: "два"},
	}
	m := NewManager(items, nil, testOptions(), headRand{})

	// Construction promotes fresh items into the focus pool; their
	// progress must follow them out of Level0.
	for _, p := range m.State().Progress {
		if p.Level != level.Level1 {
			t.Errorf("%s level = %v, want Level1 after promotion", p.ItemID, p.Level)
		}
	}
	assertQueuesConsistent(t, m)

	answers := map[string]string{"a": "один", "b": "два"}
	for i := 0; i < 5; i++ {
		res := m.NextQuestion()
		if res.Question == nil {
			t.Fatal("expected a question")
		}
		answer := answers[res.Question.ItemID]
		if i%2 == 1 {
			answer = "wrong"
		}
		if _, err := m.SubmitAnswer(res.Question.ItemID, answer); err != nil {
			t.Fatal(err)
		}
		assertQueuesConsistent(t, m)
	}

	// The alternating rounds promoted one item; drive it back down
	// through a demotion as well.
	for i := 0; i < 3; i++ {
		if _, err := m.SubmitAnswer("a", "wrong"); err != nil {
			t.Fatal(err)
		}
		assertQueuesConsistent(t, m)
	}
}

func TestCompletion(t *testing.T) {
	items, progress := singleItem(level.Level5)
	m := NewManager(items, progress, testOptions(), headRand{})
	if !m.IsComplete() {
		t.Error("single Level5 item with usage target should be complete")
	}

	opts := testOptions()
	opts.EnableUsageExamples = false
	items2, progress2 := singleItem(level.Level3)
	m2 := NewManager(items2, progress2, opts, headRand{})
	if !m2.IsComplete() {
		t.Error("Level3 item should satisfy the no-usage target")
	}

	empty := NewManager(nil, nil, testOptions(), headRand{})
	if empty.IsComplete() {
		t.Error("empty catalog is never complete")
	}
}

func TestItemForDisplay(t *testing.T) {
	items := []vocab.Item{{ID: "x", SourceText: "(a|an) apple", TargetText: "яблоко"}}
	m := NewManager(items, nil, testOptions(), headRand{})

	source, target, ok := m.ItemForDisplay("x")
	if !ok {
		t.Fatal("item missing")
	}
	if source != "a apple" || target != "яблоко" {
		t.Errorf("display = %q / %q", source, target)
	}
}
