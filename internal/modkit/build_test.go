package modkit_test

import (
	"net/http"
	"testing"

	"boardstore/internal/modkit"
	"boardstore/internal/modkit/httpkit"
)

func TestBuildAppliesOptions(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	registered := false

	b := modkit.Build(
		modkit.WithName("importer"),
		modkit.WithPrefix("/products"),
		modkit.WithMiddlewares(mw),
		modkit.WithSwagger(true),
		modkit.WithRegister(func(httpkit.Router) { registered = true }),
	)

	if b.Name != "importer" || b.Prefix != "/products" {
		t.Fatalf("name/prefix not applied: %+v", b)
	}
	if len(b.Mw) != 1 {
		t.Fatalf("middleware not captured: %d", len(b.Mw))
	}
	if !b.SwaggerOn {
		t.Fatal("swagger flag not applied")
	}

	b.Register(nil)
	if !registered {
		t.Fatal("register hook not invoked")
	}
}

func TestBuildDefaultsHooks(t *testing.T) {
	b := modkit.Build()
	if b.Subrouter == nil || b.Register == nil {
		t.Fatal("hooks must default to no-ops")
	}
	// must not panic
	b.Register(nil)
	if got := b.Subrouter(nil); got != nil {
		t.Fatal("default subrouter must be identity")
	}
}
