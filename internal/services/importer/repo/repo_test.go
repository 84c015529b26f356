package repo

import (
	"context"
	"errors"
	"testing"

	perr "boardstore/internal/platform/errors"
	"boardstore/internal/platform/store"
)

// fakeRows serves pre-baked scan functions, one per row
type fakeRows struct {
	scans []func(dest ...any) error
	pos   int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.scans) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return r.scans[r.pos-1](dest...) }
func (r *fakeRows) Err() error             { return nil }
func (r *fakeRows) Close()                 {}
func (r *fakeRows) Columns() []string      { return nil }

type fakeQueryer struct {
	rows    *fakeRows
	rowsErr error
	lastSQL string
}

func (q *fakeQueryer) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	return nil, errors.New("not implemented")
}

func (q *fakeQueryer) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	q.lastSQL = sql
	if q.rowsErr != nil {
		return nil, q.rowsErr
	}
	return q.rows, nil
}

func (q *fakeQueryer) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	panic("not implemented")
}

func marketplaceRow() func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*int64) = 1
		*dest[1].(*string) = "US"
		*dest[2].(*string) = "www.amazon.com"
		*dest[3].(*string) = "webservices.amazon.com"
		*dest[4].(*string) = "us-east-1"
		*dest[5].(*string) = "USD"
		*dest[6].(*string) = "boardstore-20"
		*dest[7].(*bool) = true
		return nil
	}
}

func TestMarketplaceByCodeFound(t *testing.T) {
	q := &fakeQueryer{rows: &fakeRows{scans: []func(dest ...any) error{marketplaceRow()}}}
	st := NewPG().Bind(q)

	mkt, err := st.MarketplaceByCode(context.Background(), "US")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if mkt.ID != 1 || mkt.Code != "US" || mkt.Endpoint != "webservices.amazon.com" || !mkt.Active {
		t.Fatalf("marketplace not populated: %+v", mkt)
	}
	if q.lastSQL != marketplaceByCodeSQL {
		t.Fatalf("unexpected sql: %q", q.lastSQL)
	}
}

func TestMarketplaceByCodeMissingIsNotFound(t *testing.T) {
	q := &fakeQueryer{rows: &fakeRows{}}
	st := NewPG().Bind(q)

	_, err := st.MarketplaceByCode(context.Background(), "BR")
	if !perr.IsCode(err, perr.ErrorCodeMarketplaceNotFound) {
		t.Fatalf("want MarketplaceNotFound, got %v", err)
	}
}

func TestMarketplaceByCodeQueryFailureIsDB(t *testing.T) {
	q := &fakeQueryer{rowsErr: errors.New("connection reset")}
	st := NewPG().Bind(q)

	_, err := st.MarketplaceByCode(context.Background(), "US")
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("want DB, got %v", err)
	}
}
