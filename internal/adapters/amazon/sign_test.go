package amazon

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"
)

func signedRequest(t *testing.T, secret string, at time.Time) *http.Request {
	t.Helper()
	payload := []byte(`{"ItemIds":["B08DQQ8CBP"]}`)
	req, err := http.NewRequest(http.MethodPost, "https://webservices.amazon.com/paapi5/getitems", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	sign(req, "AKIDEXAMPLE", secret, "us-east-1", payload, at)
	return req
}

func TestSignIsDeterministic(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	a := signedRequest(t, "secret", at)
	b := signedRequest(t, "secret", at)
	if a.Header.Get("Authorization") == "" {
		t.Fatal("authorization header not set")
	}
	if a.Header.Get("Authorization") != b.Header.Get("Authorization") {
		t.Fatal("same inputs must produce the same signature")
	}
}

func TestSignHeaderShape(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	req := signedRequest(t, "secret", at)

	if got := req.Header.Get("X-Amz-Date"); got != "20240315T103000Z" {
		t.Fatalf("amz date: got %q", got)
	}
	if got := req.Header.Get("X-Amz-Target"); got != getItemsTarget {
		t.Fatalf("amz target: got %q", got)
	}
	if got := req.Header.Get("Content-Encoding"); got != "amz-1.0" {
		t.Fatalf("content encoding: got %q", got)
	}

	auth := req.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/20240315/us-east-1/ProductAdvertisingAPI/aws4_request") {
		t.Fatalf("credential scope wrong: %q", auth)
	}
	if !strings.Contains(auth, "SignedHeaders=content-encoding;host;x-amz-date;x-amz-target") {
		t.Fatalf("signed headers wrong: %q", auth)
	}
	sig := auth[strings.Index(auth, "Signature=")+len("Signature="):]
	if len(sig) != 64 {
		t.Fatalf("signature must be 64 hex chars, got %d", len(sig))
	}
	for _, r := range sig {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("signature not lowercase hex: %q", sig)
		}
	}
}

func TestSignVariesWithInputs(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	base := signedRequest(t, "secret", at).Header.Get("Authorization")

	if got := signedRequest(t, "other", at).Header.Get("Authorization"); got == base {
		t.Fatal("different secret must change the signature")
	}
	if got := signedRequest(t, "secret", at.Add(time.Second)).Header.Get("Authorization"); got == base {
		t.Fatal("different instant must change the signature")
	}
}

func TestSigningKeyChainsEveryInput(t *testing.T) {
	base := signingKey("secret", "20240315", "us-east-1")
	if bytes.Equal(base, signingKey("other", "20240315", "us-east-1")) {
		t.Fatal("secret must feed the derivation")
	}
	if bytes.Equal(base, signingKey("secret", "20240316", "us-east-1")) {
		t.Fatal("date must feed the derivation")
	}
	if bytes.Equal(base, signingKey("secret", "20240315", "eu-west-1")) {
		t.Fatal("region must feed the derivation")
	}
}
