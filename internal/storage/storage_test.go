package storage

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/pkg/errors"
	tm "github.com/twitsprout/tools/mock"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

func TestPutAppliesGrant(t *testing.T) {
	grant := gl.PresignGrant{
		URL: "https://bucket.example/2024/05/k1.jpg?sig=abc",
		Key: "2024/05/k1.jpg",
		Headers: map[string]string{
			"Content-Type":  "image/jpeg",
			"x-amz-sse-kms": "arn:key",
		},
	}

	var seen *http.Request
	u := New(tm.HTTPClient(func(r *http.Request) (*http.Response, error) {
		seen = r
		return tm.HTTPResponse(http.StatusOK, ""), nil
	}))

	err := u.Put(context.Background(), grant, strings.NewReader("raw bytes"), 9)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if seen.Method != http.MethodPut || seen.URL.String() != grant.URL {
		t.Fatalf("unexpected request: %s %s", seen.Method, seen.URL)
	}
	if seen.ContentLength != 9 {
		t.Fatalf("unexpected content length: %d", seen.ContentLength)
	}
	for k, v := range grant.Headers {
		if got := seen.Header.Get(k); got != v {
			t.Fatalf("grant header %q not applied: %q", k, got)
		}
	}
}

func TestPutRejection(t *testing.T) {
	grant := gl.PresignGrant{URL: "https://bucket.example/put", Key: "k1.jpg"}

	u := New(tm.HTTPClient(func(r *http.Request) (*http.Response, error) {
		return tm.HTTPResponse(http.StatusForbidden, ""), nil
	}))
	err := u.Put(context.Background(), grant, strings.NewReader(""), 0)
	var be *gl.BackendError
	if !errors.As(err, &be) || be.Status != http.StatusForbidden {
		t.Fatalf("expected a forbidden BackendError, got %v", err)
	}

	u = New(tm.HTTPClient(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection reset")
	}))
	err = u.Put(context.Background(), grant, strings.NewReader(""), 0)
	var ne *gl.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected a NetworkError, got %v", err)
	}
	if ne.Op != "PUT k1.jpg" {
		t.Fatalf("unexpected op: %q", ne.Op)
	}
}
