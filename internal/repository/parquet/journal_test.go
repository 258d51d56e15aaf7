package parquet

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/freeeve/samurai/internal/model"
)

func TestJournal_WriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "match.parquet")
	j, err := NewJournal(path)
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2026, 3, 4, 5, 6, 7, 8000, time.UTC)
	in := []model.TurnRecord{
		{MatchID: "m", Turn: 0, Plan: "9 5 2 0", Greedy: "9 5 2 0", Score: 420, Candidates: []int{1, 1, 1}, ElapsedUS: 90, DecidedAt: at},
		{MatchID: "m", Turn: 6, Plan: "0", Score: 0, Idle: true, Candidates: []int{3, 0, 7}, Flagged: 21, DecidedAt: at.Add(time.Second)},
		{MatchID: "m", Turn: 12, Plan: "8 8 8 10 0", Greedy: "5 1 0", Score: 3, Fallback: true, Candidates: []int{}, DecidedAt: at.Add(2 * time.Second)},
	}
	for _, rec := range in {
		if err := j.Append(context.Background(), rec); err != nil {
			t.Fatalf("append turn %d: %v", rec.Turn, err)
		}
	}
	if j.Rows() != 3 {
		t.Errorf("rows = %d", j.Rows())
	}
	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("expected %d rows, got %d", len(in), len(got))
	}
	for i := range in {
		w, g := in[i], got[i]
		if g.Turn != w.Turn || g.Plan != w.Plan || g.Greedy != w.Greedy || g.Score != w.Score ||
			g.Fallback != w.Fallback || g.Idle != w.Idle || g.Flagged != w.Flagged || g.ElapsedUS != w.ElapsedUS {
			t.Errorf("row %d: got %+v, want %+v", i, g, w)
		}
		if !g.DecidedAt.Equal(w.DecidedAt) {
			t.Errorf("row %d: decided_at %v, want %v", i, g.DecidedAt, w.DecidedAt)
		}
		if len(g.Candidates) != len(w.Candidates) {
			t.Errorf("row %d: candidates %v, want %v", i, g.Candidates, w.Candidates)
		}
	}
	if got[1].Candidates[2] != 7 {
		t.Errorf("candidates = %v", got[1].Candidates)
	}
}

func TestJournal_EmptyLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	j, err := NewJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty journal should not be published")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestJournal_AppendAfterClose(t *testing.T) {
	j, err := NewJournal(filepath.Join(t.TempDir(), "j.parquet"))
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}
	if err := j.Append(context.Background(), model.TurnRecord{}); err == nil {
		t.Error("expected error appending to closed journal")
	}
	if err := j.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestNewJournal_RequiresPath(t *testing.T) {
	if _, err := NewJournal(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestJournal_CrashKeepsAppendedTurns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.parquet")
	ctx := context.Background()

	first, err := NewJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, turn := range []int{0, 6} {
		if err := first.Append(ctx, model.TurnRecord{MatchID: "m", Turn: turn, Plan: "5 0", Candidates: []int{}}); err != nil {
			t.Fatalf("append turn %d: %v", turn, err)
		}
	}
	// first is never closed, as if the process died here.
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read without close: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 published rows, got %d", len(got))
	}

	resumed, err := NewJournal(path)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Rows() != 2 {
		t.Errorf("resumed rows = %d, want 2", resumed.Rows())
	}
	for _, rec := range []model.TurnRecord{
		{MatchID: "m", Turn: 6, Plan: "0", Fallback: true, Candidates: []int{}},
		{MatchID: "m", Turn: 12, Plan: "9 0", Candidates: []int{}},
	} {
		if err := resumed.Append(ctx, rec); err != nil {
			t.Fatalf("append turn %d: %v", rec.Turn, err)
		}
	}
	if err := resumed.Close(); err != nil {
		t.Fatal(err)
	}

	got, err = ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	wantTurns := []int{0, 6, 12}
	if len(got) != len(wantTurns) {
		t.Fatalf("expected %d rows, got %d", len(wantTurns), len(got))
	}
	for i, turn := range wantTurns {
		if got[i].Turn != turn {
			t.Errorf("row %d: turn %d, want %d", i, got[i].Turn, turn)
		}
	}
	if got[0].Plan != "5 0" {
		t.Errorf("pre-crash turn lost: %+v", got[0])
	}
	if got[1].Plan != "0" || !got[1].Fallback {
		t.Errorf("replayed turn not replaced: %+v", got[1])
	}
}

func TestNewJournal_RejectsUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.parquet")
	if err := os.WriteFile(path, []byte("not a journal"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJournal(path); err == nil {
		t.Error("expected error resuming a corrupt journal")
	}
}
