// Package parquet journals decided turns to a zstd-compressed Parquet file
// for offline analysis of a match.
package parquet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/freeeve/samurai/internal/model"
)

const schemaName = "turn_record_v1"

// TurnRow is one journaled turn as stored on disk.
type TurnRow struct {
	MatchID     string  `parquet:"match_id,dict"`
	Turn        int32   `parquet:"turn"`
	Plan        string  `parquet:"plan"`
	Greedy      string  `parquet:"greedy"`
	Score       float64 `parquet:"score"`
	Fallback    bool    `parquet:"fallback"`
	Idle        bool    `parquet:"idle"`
	Candidates  []int32 `parquet:"candidates"`
	Flagged     int32   `parquet:"flagged"`
	ElapsedUS   int64   `parquet:"elapsed_us"`
	DecidedAtUS int64   `parquet:"decided_at_us"`
}

func toRow(rec model.TurnRecord) TurnRow {
	cands := make([]int32, len(rec.Candidates))
	for i, c := range rec.Candidates {
		cands[i] = int32(c)
	}
	return TurnRow{
		MatchID:     rec.MatchID,
		Turn:        int32(rec.Turn),
		Plan:        rec.Plan,
		Greedy:      rec.Greedy,
		Score:       rec.Score,
		Fallback:    rec.Fallback,
		Idle:        rec.Idle,
		Candidates:  cands,
		Flagged:     int32(rec.Flagged),
		ElapsedUS:   rec.ElapsedUS,
		DecidedAtUS: rec.DecidedAt.UnixMicro(),
	}
}

func (r TurnRow) record() model.TurnRecord {
	cands := make([]int, len(r.Candidates))
	for i, c := range r.Candidates {
		cands[i] = int(c)
	}
	return model.TurnRecord{
		MatchID:    r.MatchID,
		Turn:       int(r.Turn),
		Plan:       r.Plan,
		Greedy:     r.Greedy,
		Score:      r.Score,
		Fallback:   r.Fallback,
		Idle:       r.Idle,
		Candidates: cands,
		Flagged:    int(r.Flagged),
		ElapsedUS:  r.ElapsedUS,
		DecidedAt:  time.UnixMicro(r.DecidedAtUS).UTC(),
	}
}

// Journal holds a match's turn rows and republishes the whole file after every
// Append, so a crashed run keeps every turn it appended. Opening an existing
// journal resumes it, and a replayed turn replaces its earlier row.
type Journal struct {
	mu      sync.Mutex
	outPath string
	rows    []TurnRow
	closed  bool
}

// NewJournal opens the journal published at outPath, loading any rows a
// previous run left there.
func NewJournal(outPath string) (*Journal, error) {
	if outPath == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	j := &Journal{outPath: outPath}
	prev, err := ReadFile(outPath)
	switch {
	case err == nil:
		for _, rec := range prev {
			j.rows = append(j.rows, toRow(rec))
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("resume journal: %w", err)
	}
	return j, nil
}

// Append records one turn and republishes the file. On a publish error the row
// is kept and goes out with the next successful Append.
func (j *Journal) Append(_ context.Context, rec model.TurnRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return fmt.Errorf("journal is closed")
	}
	row := toRow(rec)
	i := slices.IndexFunc(j.rows, func(r TurnRow) bool {
		return r.MatchID == row.MatchID && r.Turn == row.Turn
	})
	if i >= 0 {
		j.rows[i] = row
	} else {
		j.rows = append(j.rows, row)
	}
	return j.publish()
}

// publish writes every row to a temp file and renames it over outPath.
func (j *Journal) publish() error {
	tmpPath := j.outPath + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open tmp journal: %w", err)
	}
	w := parquet.NewGenericWriter[TurnRow](f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", schemaName)

	_, err = w.Write(j.rows)
	if err == nil {
		err = w.Close()
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write journal: %w", err)
	}
	if err := os.Rename(tmpPath, j.outPath); err != nil {
		return fmt.Errorf("rename journal: %w", err)
	}
	return nil
}

// Rows reports how many turns the journal holds, resumed ones included.
func (j *Journal) Rows() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.rows)
}

// Close stops further appends. Every appended row is already published, and an
// empty journal leaves no file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
	return nil
}

// ReadFile loads every turn from a published journal.
func ReadFile(path string) ([]model.TurnRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if v, ok := pf.Lookup("schema"); ok && v != schemaName {
		return nil, fmt.Errorf("unexpected journal schema %q", v)
	}

	reader := parquet.NewGenericReader[TurnRow](pf)
	defer reader.Close()

	recs := make([]model.TurnRecord, 0, int(reader.NumRows()))
	buf := make([]TurnRow, 128)
	for {
		n, err := reader.Read(buf)
		for _, r := range buf[:n] {
			recs = append(recs, r.record())
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read turn rows: %w", err)
		}
	}
	return recs, nil
}
