package amazon

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	service        = "ProductAdvertisingAPI"
	getItemsPath   = "/paapi5/getitems"
	getItemsTarget = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.GetItems"
	algorithm      = "AWS4-HMAC-SHA256"
)

// sign stamps and signs req in place using the v4 scheme the remote
// requires. The payload hash, the amz date, and the derived key all
// depend on at, so the same request signed at two instants yields two
// different signatures.
func sign(req *http.Request, accessKey, secretKey, region string, payload []byte, at time.Time) {
	amzDate := at.UTC().Format("20060102T150405Z")
	dateStamp := at.UTC().Format("20060102")

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Date", amzDate)
	req.Header.Set("X-Amz-Target", getItemsTarget)

	// lowercased header names, sorted, each terminated by \n
	headers := map[string]string{
		"content-encoding": "amz-1.0",
		"host":             req.Host,
		"x-amz-date":       amzDate,
		"x-amz-target":     getItemsTarget,
	}
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	sort.Strings(names)

	var canonHeaders strings.Builder
	for _, k := range names {
		canonHeaders.WriteString(k)
		canonHeaders.WriteString(":")
		canonHeaders.WriteString(headers[k])
		canonHeaders.WriteString("\n")
	}
	signedHeaders := strings.Join(names, ";")

	canonical := strings.Join([]string{
		http.MethodPost,
		getItemsPath,
		"", // no query string on this operation
		canonHeaders.String(),
		signedHeaders,
		hexSHA256(payload),
	}, "\n")

	scope := strings.Join([]string{dateStamp, region, service, "aws4_request"}, "/")
	toSign := strings.Join([]string{
		algorithm,
		amzDate,
		scope,
		hexSHA256([]byte(canonical)),
	}, "\n")

	sig := hex.EncodeToString(hmacSHA256(signingKey(secretKey, dateStamp, region), toSign))

	req.Header.Set("Authorization",
		algorithm+" Credential="+accessKey+"/"+scope+
			", SignedHeaders="+signedHeaders+
			", Signature="+sig)
}

// signingKey chains the derivation: secret, date, region, service, terminator
func signingKey(secret, dateStamp, region string) []byte {
	k := hmacSHA256([]byte("AWS4"+secret), dateStamp)
	k = hmacSHA256(k, region)
	k = hmacSHA256(k, service)
	return hmacSHA256(k, "aws4_request")
}

func hmacSHA256(key []byte, msg string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(msg))
	return h.Sum(nil)
}

func hexSHA256(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
