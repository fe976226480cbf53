package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aminaaguel/Guess-My-Emotion/internal/artifact"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"round_events", "artifacts", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.RoundRepo().AppendRound(ctx, RoundEventData{SessionID: "s1", Text: "hi", UserEmotion: "Happy", PredictedEmotion: "Happy", ModelUsed: "Random Forest"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	var idx string
	err = s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND tbl_name='round_events' AND name='roundevent_session_id'",
	).Scan(&idx)
	if err != nil {
		t.Fatalf("session index missing: %v", err)
	}

	recs, err := s.RoundRepo().QueryRounds(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("rounds after reopen = %d, want 1", len(recs))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func appendRounds(t *testing.T, repo RoundRepo, rounds ...RoundEventData) {
	t.Helper()
	for i, r := range rounds {
		if err := repo.AppendRound(context.Background(), r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
}

func TestAppendAndQueryRounds(t *testing.T) {
	s := openTestStore(t)
	repo := s.RoundRepo()
	ctx := context.Background()

	appendRounds(t, repo,
		RoundEventData{SessionID: "a", Text: "so happy", UserEmotion: "Happy", PredictedEmotion: "Happy", ModelUsed: "Random Forest", Confidence: 0.8, AICorrect: true},
		RoundEventData{SessionID: "a", Text: "deadlines", UserEmotion: "Stress", PredictedEmotion: "Sad", ModelUsed: "Random Forest", Confidence: 0.4},
		RoundEventData{SessionID: "b", Text: "furious", UserEmotion: "Angry", PredictedEmotion: "Angry", ModelUsed: "Logistic Regression", Confidence: 0.6, AICorrect: true},
	)

	all, err := repo.QueryRounds(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("rounds = %d, want 3", len(all))
	}
	if all[0].Sequence != 3 || all[2].Sequence != 1 {
		t.Errorf("sequences = %d..%d, want newest first", all[0].Sequence, all[2].Sequence)
	}
	if all[2].Text != "so happy" || !all[2].AICorrect {
		t.Errorf("oldest round = %+v", all[2])
	}
	if all[1].AICorrect {
		t.Error("round 2 should not be ai_correct")
	}
	if time.Since(all[0].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want recent", all[0].Timestamp)
	}

	limited, err := repo.QueryRounds(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].Sequence != 3 {
		t.Errorf("limit 1 = %+v", limited)
	}

	session, err := repo.QueryRounds(ctx, QueryOpts{SessionID: "a", After: 1})
	if err != nil {
		t.Fatalf("query session: %v", err)
	}
	if len(session) != 1 || session[0].UserEmotion != "Stress" {
		t.Errorf("session a after 1 = %+v", session)
	}

	older, err := repo.QueryRounds(ctx, QueryOpts{Before: 3})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(older) != 2 {
		t.Errorf("before 3 = %d rounds, want 2", len(older))
	}
}

func TestRoundStatsAndClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.RoundRepo()
	ctx := context.Background()

	stats, err := repo.RoundStats(ctx)
	if err != nil {
		t.Fatalf("stats (empty): %v", err)
	}
	if stats.Rounds != 0 || stats.AICorrect != 0 || len(stats.ByEmotion) != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	appendRounds(t, repo,
		RoundEventData{SessionID: "a", UserEmotion: "Happy", PredictedEmotion: "Happy", AICorrect: true},
		RoundEventData{SessionID: "a", UserEmotion: "Happy", PredictedEmotion: "Sad"},
		RoundEventData{SessionID: "b", UserEmotion: "Angry", PredictedEmotion: "Angry", AICorrect: true},
	)

	stats, err = repo.RoundStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Rounds != 3 || stats.AICorrect != 2 || stats.UserWins() != 1 || stats.Sessions != 2 {
		t.Errorf("stats = %+v", stats)
	}
	want := []EmotionStats{{"Angry", 1, 1}, {"Happy", 2, 1}}
	if len(stats.ByEmotion) != len(want) {
		t.Fatalf("by emotion = %+v, want %+v", stats.ByEmotion, want)
	}
	for i := range want {
		if stats.ByEmotion[i] != want[i] {
			t.Errorf("by emotion[%d] = %+v, want %+v", i, stats.ByEmotion[i], want[i])
		}
	}

	n, err := repo.ClearRounds(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared = %d, want 3", n)
	}

	// Sequences keep growing after a clear.
	appendRounds(t, repo, RoundEventData{SessionID: "c", UserEmotion: "Sad", PredictedEmotion: "Sad"})
	rounds, err := repo.QueryRounds(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rounds) != 1 || rounds[0].Sequence != 4 {
		t.Errorf("rounds after clear = %+v", rounds)
	}
}

func testSet(runID string) *artifact.Set {
	set := artifact.NewSet()
	created := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	for i, n := range artifact.Names() {
		set.Put(artifact.Envelope{
			Name:          n,
			RunID:         runID,
			FormatVersion: artifact.FormatVersion,
			CreatedAt:     created,
			Accuracy:      float64(i) / 10,
			Payload:       []byte(string(n) + "-" + runID),
		})
	}
	return set
}

func TestArtifactRepoSaveLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.ArtifactRepo()
	ctx := context.Background()

	ok, err := repo.Exists(ctx)
	if err != nil {
		t.Fatalf("exists (empty): %v", err)
	}
	if ok {
		t.Fatal("empty store reports a complete set")
	}

	_, err = repo.Load(ctx)
	var inc *artifact.ErrIncomplete
	if !errors.As(err, &inc) {
		t.Fatalf("load (empty) = %v, want ErrIncomplete", err)
	}
	if len(inc.Missing) != 4 {
		t.Errorf("missing = %v, want all four", inc.Missing)
	}

	if err := repo.Save(ctx, testSet("run-1")); err != nil {
		t.Fatalf("save run-1: %v", err)
	}
	if err := repo.Save(ctx, testSet("run-2")); err != nil {
		t.Fatalf("save run-2: %v", err)
	}

	ok, err = repo.Exists(ctx)
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v", ok, err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	runID, err := got.RunID()
	if err != nil {
		t.Fatalf("run id: %v", err)
	}
	if runID != "run-2" {
		t.Errorf("run id = %q, want run-2", runID)
	}
	want := testSet("run-2")
	for _, n := range artifact.Names() {
		g, w := got.Envelopes[n], want.Envelopes[n]
		if string(g.Payload) != string(w.Payload) || g.Accuracy != w.Accuracy || !g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("%s = %+v, want %+v", n, g, w)
		}
	}
}

func TestArtifactRepoRejectsMixedSet(t *testing.T) {
	s := openTestStore(t)
	repo := s.ArtifactRepo()
	ctx := context.Background()

	set := testSet("run-1")
	e := set.Envelopes[artifact.Linear]
	e.RunID = "run-2"
	set.Put(e)

	err := repo.Save(ctx, set)
	var mm *artifact.ErrMismatch
	if !errors.As(err, &mm) {
		t.Fatalf("save mixed = %v, want ErrMismatch", err)
	}

	ok, err := repo.Exists(ctx)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("rejected set was stored")
	}
}
