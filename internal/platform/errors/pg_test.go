package errors_test

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	perr "boardstore/internal/platform/errors"
)

func pgErr(code string) *pgconn.PgError { return &pgconn.PgError{Code: code} }

func TestDBErrorCodeMapping(t *testing.T) {
	cases := []struct {
		sqlstate string
		want     perr.ErrorCode
	}{
		{"23505", perr.ErrorCodeDuplicateKey},
		{"23503", perr.ErrorCodeValidation},
		{"23502", perr.ErrorCodeValidation},
		{"23514", perr.ErrorCodeValidation},
		{"22001", perr.ErrorCodeValidation},
		{"22P02", perr.ErrorCodeValidation},
		{"40001", perr.ErrorCodeDB},
		{"40P01", perr.ErrorCodeDB},
		{"57P03", perr.ErrorCodeDB},
		{"XX000", perr.ErrorCodeDB},
	}
	for _, c := range cases {
		code, ok := perr.DBErrorCode(pgErr(c.sqlstate))
		if !ok || code != c.want {
			t.Fatalf("sqlstate %s: expected (%d,true), got (%d,%v)", c.sqlstate, c.want, code, ok)
		}
	}

	if _, ok := perr.DBErrorCode(stderrs.New("not a pg error")); ok {
		t.Fatalf("non-pg errors should report !ok")
	}
}

func TestFromPostgresWrapsWithMappedCode(t *testing.T) {
	err := perr.FromPostgres(pgErr("23505"), "product upsert failed")
	if perr.CodeOf(err) != perr.ErrorCodeDuplicateKey {
		t.Fatalf("expected DuplicateKey, got %d", perr.CodeOf(err))
	}
	if perr.FromPostgres(nil, "x") != nil {
		t.Fatalf("nil in nil out")
	}
}

func TestAttachFieldFromPg(t *testing.T) {
	e := &pgconn.PgError{Code: "23505", ConstraintName: "products_asin_marketplace_id_uniq"}
	err := perr.FromPostgresWithField(fmt.Errorf("exec: %w", e), "product upsert failed")
	pe, ok := perr.As(err)
	if !ok {
		t.Fatalf("expected *Error")
	}
	if pe.Field() != "uniq" {
		t.Fatalf("expected last constraint token, got %q", pe.Field())
	}

	e2 := &pgconn.PgError{Code: "23502", ColumnName: "title"}
	err2 := perr.FromPostgresWithField(e2, "product upsert failed")
	pe2, _ := perr.As(err2)
	if pe2.Field() != "title" {
		t.Fatalf("column name should win, got %q", pe2.Field())
	}
}

func TestIsRetryable(t *testing.T) {
	if !perr.IsRetryable(pgErr("40001")) {
		t.Fatalf("serialization failures retry")
	}
	if !perr.IsRetryable(pgErr("40P01")) {
		t.Fatalf("deadlocks retry")
	}
	if perr.IsRetryable(pgErr("23505")) {
		t.Fatalf("duplicate keys do not retry")
	}
	if perr.IsRetryable(context.Canceled) || perr.IsRetryable(context.DeadlineExceeded) {
		t.Fatalf("local cancellation is not retryable")
	}
	if !perr.IsRetryable(stderrs.New("commit unexpectedly resulted in rollback")) {
		t.Fatalf("commit rollback text retries")
	}
	if perr.IsRetryable(nil) {
		t.Fatalf("nil is not retryable")
	}
}

func TestExtractPgErrorThroughWrapping(t *testing.T) {
	root := pgErr("23505")
	wrapped := perr.Wrap(fmt.Errorf("repo: %w", root), perr.ErrorCodeDB, "upsert failed")
	got, ok := perr.ExtractPgError(wrapped)
	if !ok || got.Code != "23505" {
		t.Fatalf("expected root PgError through wrap chain")
	}
	if !perr.IsDuplicateKey(wrapped) {
		t.Fatalf("IsDuplicateKey should see through wrapping")
	}
}
