package samurai

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TokenReader reads whitespace-separated integers from the game server.
// A "#" token comments out the rest of its line.
type TokenReader struct {
	sc      *bufio.Scanner
	pending []string
}

// NewTokenReader wraps r.
func NewTokenReader(r io.Reader) *TokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &TokenReader{sc: sc}
}

// Int returns the next integer. io.EOF is returned unwrapped when the input
// ends cleanly between tokens.
func (t *TokenReader) Int() (int, error) {
	for len(t.pending) == 0 {
		if !t.sc.Scan() {
			if err := t.sc.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		fields := strings.Fields(t.sc.Text())
		for i, f := range fields {
			if f == "#" {
				fields = fields[:i]
				break
			}
		}
		t.pending = fields
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("parse token %q: %w", tok, err)
	}
	return n, nil
}

// point reads "x y" as a Point.
func (t *TokenReader) point() (Point, error) {
	x, err := t.Int()
	if err != nil {
		return Point{}, err
	}
	y, err := t.Int()
	if err != nil {
		return Point{}, unexpectedEOF(err)
	}
	return Point{Row: y, Col: x}, nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadGameConfig parses the game information block sent once at startup.
func ReadGameConfig(t *TokenReader) (*GameConfig, error) {
	var cfg GameConfig
	header := []*int{&cfg.Turns, &cfg.Side, (*int)(&cfg.Self), &cfg.Width, &cfg.Height, &cfg.CurePeriod}
	for i, dst := range header {
		n, err := t.Int()
		if err != nil {
			if i > 0 {
				err = unexpectedEOF(err)
			}
			return nil, fmt.Errorf("read game header: %w", err)
		}
		*dst = n
	}
	for i := range cfg.Home {
		p, err := t.point()
		if err != nil {
			return nil, fmt.Errorf("read home %d: %w", i, unexpectedEOF(err))
		}
		cfg.Home[i] = p
	}
	for i := 0; i < UnitCount; i++ {
		rank, err := t.Int()
		if err != nil {
			return nil, fmt.Errorf("read rank %d: %w", i, unexpectedEOF(err))
		}
		score, err := t.Int()
		if err != nil {
			return nil, fmt.Errorf("read score %d: %w", i, unexpectedEOF(err))
		}
		cfg.Rank[i], cfg.Score[i] = rank, score
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	return &cfg, nil
}

// ReadSnapshot parses one turn information block. It returns io.EOF when the
// server closes the stream before a new turn starts.
func ReadSnapshot(t *TokenReader, cfg *GameConfig) (*Snapshot, error) {
	turn, err := t.Int()
	if err != nil {
		return nil, err
	}
	curing, err := t.Int()
	if err != nil {
		return nil, fmt.Errorf("read curing flag: %w", unexpectedEOF(err))
	}
	snap := &Snapshot{Turn: turn, Curing: curing != 0}
	for i := range snap.Units {
		p, err := t.point()
		if err != nil {
			return nil, fmt.Errorf("read unit %d position: %w", i, unexpectedEOF(err))
		}
		s, err := t.Int()
		if err != nil {
			return nil, fmt.Errorf("read unit %d state: %w", i, unexpectedEOF(err))
		}
		snap.Units[i] = UnitStatus{Pos: p, State: Presence(s)}
	}
	f := NewField(cfg.Height, cfg.Width, Unknown)
	for i := range f.Cells {
		c, err := t.Int()
		if err != nil {
			return nil, fmt.Errorf("read cell %d: %w", i, unexpectedEOF(err))
		}
		f.Cells[i] = Cell(c)
	}
	snap.Field = f
	return snap, nil
}

// WritePlan writes the plan's wire form followed by a newline.
func WritePlan(w io.Writer, plan Plan) error {
	_, err := fmt.Fprintln(w, plan.String())
	return err
}

// WriteReady acknowledges the game information block.
func WriteReady(w io.Writer) error {
	_, err := fmt.Fprintln(w, 0)
	return err
}
