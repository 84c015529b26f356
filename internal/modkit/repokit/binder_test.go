package repokit_test

import (
	"testing"

	"boardstore/internal/modkit/repokit"
	"boardstore/internal/platform/testkit"
)

type fakeRepo struct{ q repokit.Queryer }

func TestBindFunc(t *testing.T) {
	b := repokit.BindFunc[*fakeRepo](func(q repokit.Queryer) *fakeRepo {
		return &fakeRepo{q: q}
	})
	if b.Bind(nil) == nil {
		t.Fatal("bind must produce a repo")
	}
}

func TestRequireQueryerPanicsOnNil(t *testing.T) {
	testkit.MustPanic(t, func() {
		repokit.RequireQueryer(nil)
	})
}

func TestMustBindPanicsOnNilQueryer(t *testing.T) {
	b := repokit.BindFunc[*fakeRepo](func(q repokit.Queryer) *fakeRepo {
		return &fakeRepo{q: q}
	})
	testkit.MustPanic(t, func() {
		repokit.MustBind[*fakeRepo](b, nil)
	})
}
