package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "boardstore/internal/platform/errors"
	"boardstore/internal/platform/net/http/bind"
)

type importReq struct {
	ASIN        string `json:"asin" validate:"required,asin"`
	Marketplace string `json:"marketplace" validate:"required,oneof=US UK DE FR JP CA"`
}

func post(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestParseJSONHappyPath(t *testing.T) {
	in, err := bind.ParseJSON[importReq](post(`{"asin":"B07G5J5K3Y","marketplace":"US"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.ASIN != "B07G5J5K3Y" || in.Marketplace != "US" {
		t.Fatalf("bad decode: %+v", in)
	}
}

func TestParseJSONMalformedBody(t *testing.T) {
	_, err := bind.ParseJSON[importReq](post(`{"asin":`))
	if perr.CodeOf(err) != perr.ErrorCodeInvalidRequestBody {
		t.Fatalf("want invalid body code, got %v", err)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	_, err := bind.ParseJSON[importReq](post(``))
	if perr.CodeOf(err) != perr.ErrorCodeInvalidRequestBody {
		t.Fatalf("want invalid body code for empty POST, got %v", err)
	}
}

func TestParseJSONUnknownField(t *testing.T) {
	_, err := bind.ParseJSON[importReq](post(`{"asin":"B07G5J5K3Y","marketplace":"US","nope":1}`))
	if perr.CodeOf(err) != perr.ErrorCodeInvalidRequestBody {
		t.Fatalf("unknown fields should be rejected, got %v", err)
	}
}

func TestParseJSONTrailingData(t *testing.T) {
	_, err := bind.ParseJSON[importReq](post(`{"asin":"B07G5J5K3Y","marketplace":"US"}{}`))
	if perr.CodeOf(err) != perr.ErrorCodeInvalidRequestBody {
		t.Fatalf("trailing data should be rejected, got %v", err)
	}
}

func TestParseJSONMissingRequired(t *testing.T) {
	_, err := bind.ParseJSON[importReq](post(`{"marketplace":"US"}`))
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("want validation code, got %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "asin" {
		t.Fatalf("want field asin on error, got %v", err)
	}
}

func TestASINTag(t *testing.T) {
	cases := []struct {
		asin string
		ok   bool
	}{
		{"B07G5J5K3Y", true},
		{"0747532699", true},
		{"b07g5j5k3y", false}, // lowercase
		{"B07G5J5K3", false},  // too short
		{"B07G5J5K3YX", false},
		{"B07G5J5K3!", false},
	}
	for _, c := range cases {
		_, err := bind.ParseJSON[importReq](post(`{"asin":"` + c.asin + `","marketplace":"US"}`))
		if c.ok && err != nil {
			t.Fatalf("asin %q should pass, got %v", c.asin, err)
		}
		if !c.ok && perr.CodeOf(err) != perr.ErrorCodeValidation {
			t.Fatalf("asin %q should fail validation, got %v", c.asin, err)
		}
	}
}

func TestParseJSONOneofClosedSet(t *testing.T) {
	_, err := bind.ParseJSON[importReq](post(`{"asin":"B07G5J5K3Y","marketplace":"ZZ"}`))
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("marketplace outside the set must fail validation, got %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "marketplace" {
		t.Fatalf("want field marketplace, got %v", err)
	}
}
