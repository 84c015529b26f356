package store

import (
	"context"
	"errors"
	"testing"
)

// fakeQuerier serves canned result sets; each Query call pops the next set
type fakeQuerier struct {
	sets     [][][]any
	cols     []string
	queryErr error
}

type fakeTag struct {
	s        string
	affected int64
}

func (t fakeTag) String() string      { return t.s }
func (t fakeTag) RowsAffected() int64 { return t.affected }

type fakeRows struct {
	data [][]any
	cols []string
	pos  int
}

func (r *fakeRows) Next() bool { r.pos++; return r.pos <= len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) > len(row) {
		return errors.New("scan arity")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *int:
			*d = row[i].(int)
		case *string:
			*d = row[i].(string)
		default:
			return errors.New("unsupported scan type")
		}
	}
	return nil
}
func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return r.cols }

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return fakeTag{}, nil
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var set [][]any
	if len(f.sets) > 0 {
		set = f.sets[0]
		f.sets = f.sets[1:]
	}
	return &fakeRows{data: set, cols: f.cols}, nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	rs, _ := f.Query(ctx, sql)
	return &rowFromRows{rows: rs}
}

func TestOneScansSingleRow(t *testing.T) {
	q := &fakeQuerier{sets: [][][]any{{{42}}}}
	got, err := One(context.Background(), q, func(r Row) (int, error) {
		var v int
		return v, r.Scan(&v)
	}, "SELECT 42")
	if err != nil {
		t.Fatalf("one: %v", err)
	}
	if got != 42 {
		t.Fatalf("want 42, got %d", got)
	}
}

func TestOneReturnsErrNoRowsOnEmpty(t *testing.T) {
	q := &fakeQuerier{sets: [][][]any{{}}}
	_, err := One(context.Background(), q, func(r Row) (int, error) {
		var v int
		return v, r.Scan(&v)
	}, "SELECT 1 WHERE false")
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("want ErrNoRows, got %v", err)
	}
}

func TestOneRejectsMultipleRows(t *testing.T) {
	q := &fakeQuerier{sets: [][][]any{{{1}, {2}}}}
	_, err := One(context.Background(), q, func(r Row) (int, error) {
		var v int
		return v, r.Scan(&v)
	}, "SELECT x")
	if err == nil {
		t.Fatal("want error for multiple rows")
	}
}

func TestOnePropagatesQueryError(t *testing.T) {
	q := &fakeQuerier{queryErr: errors.New("boom")}
	_, err := One(context.Background(), q, func(r Row) (int, error) {
		var v int
		return v, r.Scan(&v)
	}, "SELECT x")
	if err == nil || err.Error() != "boom" {
		t.Fatalf("want query error, got %v", err)
	}
}
