package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	jsonutils "github.com/twitsprout/tools/json"
	tm "github.com/twitsprout/tools/mock"
	"github.com/twitsprout/tools/requestid"

	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{
		BaseURL: srv.URL + "/",
		Logger:  tm.NopLogger,
	})
	if err != nil {
		t.Fatalf("unexpected error creating client: %s", err.Error())
	}
	return c, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, code int, v interface{}) {
	t.Helper()
	w.WriteHeader(code)
	if err := jsonutils.Encode(w, v, ""); err != nil {
		t.Errorf("unexpected error encoding response: %s", err.Error())
	}
}

func TestListPhotos(t *testing.T) {
	first := gl.PhotoPage{
		Items:      []gl.Photo{{ID: "p1", Title: "One"}, {ID: "p2", Title: "Two"}},
		NextCursor: "c1",
	}
	second := gl.PhotoPage{Items: []gl.Photo{{ID: "p3", Title: "Three"}}}

	r := mux.NewRouter()
	r.HandleFunc("/photos", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("limit"); got != "24" {
			t.Errorf("unexpected limit: %q", got)
		}
		if req.URL.Query().Get("cursor") == "c1" {
			writeJSON(t, w, http.StatusOK, second)
			return
		}
		writeJSON(t, w, http.StatusOK, first)
	}).Methods(http.MethodGet)

	c, _ := newTestClient(t, r)
	ctx := context.Background()

	page, err := c.ListPhotos(ctx, "", 24)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if !cmp.Equal(page, first) {
		t.Fatalf("unexpected first page: %s", cmp.Diff(page, first))
	}

	page, err = c.ListPhotos(ctx, page.NextCursor, 24)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if !cmp.Equal(page, second) {
		t.Fatalf("unexpected second page: %s", cmp.Diff(page, second))
	}
}

func TestPresignAndConfirm(t *testing.T) {
	grant := gl.PresignGrant{
		URL:     "https://bucket.example/put",
		Key:     "2024/05/k1.jpg",
		Headers: map[string]string{"Content-Type": "image/jpeg"},
	}
	created := gl.Photo{ID: "p1", Title: "Sunset", OriginKey: grant.Key, Bytes: 1024}

	r := mux.NewRouter()
	r.HandleFunc("/photos/presign", func(w http.ResponseWriter, req *http.Request) {
		var in presignReq
		if err := jsonutils.Decode(req.Body, &in); err != nil {
			t.Errorf("unexpected error decoding presign request: %s", err.Error())
		}
		exp := presignReq{Filename: "sunset.jpg", ContentType: "image/jpeg"}
		if !cmp.Equal(in, exp) {
			t.Errorf("unexpected presign request: %s", cmp.Diff(in, exp))
		}
		writeJSON(t, w, http.StatusOK, grant)
	}).Methods(http.MethodPost)
	r.HandleFunc("/photos/confirm", func(w http.ResponseWriter, req *http.Request) {
		var in gl.ConfirmRequest
		if err := jsonutils.Decode(req.Body, &in); err != nil {
			t.Errorf("unexpected error decoding confirm request: %s", err.Error())
		}
		if in.Key != grant.Key || in.Bytes != 1024 {
			t.Errorf("unexpected confirm request: %+v", in)
		}
		writeJSON(t, w, http.StatusCreated, created)
	}).Methods(http.MethodPost)

	c, _ := newTestClient(t, r)
	ctx := context.Background()

	got, err := c.PresignPhoto(ctx, "sunset.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if !cmp.Equal(got, grant) {
		t.Fatalf("unexpected grant: %s", cmp.Diff(got, grant))
	}

	photo, err := c.ConfirmPhoto(ctx, gl.ConfirmRequest{Key: grant.Key, Bytes: 1024, ContentType: "image/jpeg", Title: "Sunset"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if !cmp.Equal(photo, created) {
		t.Fatalf("unexpected photo: %s", cmp.Diff(photo, created))
	}
}

func TestPhotoURL(t *testing.T) {
	expires := time.Date(2024, 5, 6, 20, 5, 0, 0, time.UTC)
	r := mux.NewRouter()
	r.HandleFunc("/photos/{id}/url", func(w http.ResponseWriter, req *http.Request) {
		if got := mux.Vars(req)["id"]; got != "p1" {
			t.Errorf("unexpected photo id: %q", got)
		}
		if got := req.URL.Query().Get("ttl"); got != "300" {
			t.Errorf("unexpected ttl: %q", got)
		}
		writeJSON(t, w, http.StatusOK, gl.SignedURL{
			URL:       "https://signed.example/p1",
			ExpiresAt: expires,
		})
	}).Methods(http.MethodGet)

	c, _ := newTestClient(t, r)
	signed, err := c.PhotoURL(context.Background(), "p1", 5*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if signed.URL != "https://signed.example/p1" || !signed.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected signed url: %+v", signed)
	}
}

func TestAlbumMembership(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/albums/{id}/photos", func(w http.ResponseWriter, req *http.Request) {
		var in albumPhotosReq
		if err := jsonutils.Decode(req.Body, &in); err != nil {
			t.Errorf("unexpected error decoding membership request: %s", err.Error())
		}
		exp := []string{"p1", "p2"}
		if !cmp.Equal(in.PhotoIDs, exp) {
			t.Errorf("unexpected photo ids: %s", cmp.Diff(in.PhotoIDs, exp))
		}
		if req.Method == http.MethodPost {
			writeJSON(t, w, http.StatusOK, addPhotosRes{Added: 2})
			return
		}
		writeJSON(t, w, http.StatusOK, removePhotosRes{Removed: 1})
	}).Methods(http.MethodPost, http.MethodDelete)

	c, _ := newTestClient(t, r)
	ctx := context.Background()

	added, err := c.AddAlbumPhotos(ctx, "a1", []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if added != 2 {
		t.Fatalf("unexpected added count: %d", added)
	}

	removed, err := c.RemoveAlbumPhotos(ctx, "a1", []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if removed != 1 {
		t.Fatalf("unexpected removed count: %d", removed)
	}
}

func TestGetAlbum(t *testing.T) {
	detail := gl.AlbumDetail{
		Album:      gl.Album{ID: "a1", Title: "Trip"},
		Photos:     []gl.Photo{{ID: "p1"}, {ID: "p2"}},
		NextCursor: "c1",
	}
	r := mux.NewRouter()
	r.HandleFunc("/albums/{id}", func(w http.ResponseWriter, req *http.Request) {
		if got := mux.Vars(req)["id"]; got != "a1" {
			writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "album not found"})
			return
		}
		writeJSON(t, w, http.StatusOK, detail)
	}).Methods(http.MethodGet)

	c, _ := newTestClient(t, r)
	ctx := context.Background()

	got, err := c.GetAlbum(ctx, "a1", "", 24)
	if err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if !cmp.Equal(got, detail) {
		t.Fatalf("unexpected detail: %s", cmp.Diff(got, detail))
	}

	_, err = c.GetAlbum(ctx, "missing", "", 24)
	if !errors.Is(err, gl.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDoErrorMapping(t *testing.T) {
	table := []struct {
		label string
		resFn func(r *http.Request) (*http.Response, error)
		check func(t *testing.T, err error)
	}{
		{
			label: "forbidden maps to an authorization expiry",
			resFn: func(r *http.Request) (*http.Response, error) {
				return tm.HTTPResponseJSON(http.StatusForbidden, map[string]string{"error": "signature expired"}), nil
			},
			check: func(t *testing.T, err error) {
				if !gl.IsAuthorizationExpired(err) {
					t.Fatalf("expected an authorization expiry, got %v", err)
				}
				var be *gl.BackendError
				if !errors.As(err, &be) || be.Message != "signature expired" {
					t.Fatalf("backend message lost: %v", err)
				}
			},
		},
		{
			label: "not found maps to ErrNotFound",
			resFn: func(r *http.Request) (*http.Response, error) {
				return tm.HTTPResponseJSON(http.StatusNotFound, map[string]string{"error": "photo not found"}), nil
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, gl.ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
			},
		},
		{
			label: "server error carries the backend message",
			resFn: func(r *http.Request) (*http.Response, error) {
				return tm.HTTPResponseJSON(http.StatusInternalServerError, map[string]string{"error": "db down"}), nil
			},
			check: func(t *testing.T, err error) {
				var be *gl.BackendError
				if !errors.As(err, &be) {
					t.Fatalf("expected a BackendError, got %v", err)
				}
				if be.Status != http.StatusInternalServerError || be.Message != "db down" {
					t.Fatalf("unexpected backend error: %+v", be)
				}
				if gl.IsAuthorizationExpired(err) {
					t.Fatal("server error misclassified as an authorization expiry")
				}
			},
		},
		{
			label: "error body without a message falls back to the status text",
			resFn: func(r *http.Request) (*http.Response, error) {
				return tm.HTTPResponse(http.StatusBadGateway, ""), nil
			},
			check: func(t *testing.T, err error) {
				var be *gl.BackendError
				if !errors.As(err, &be) || be.Message != http.StatusText(http.StatusBadGateway) {
					t.Fatalf("expected status text fallback, got %v", err)
				}
			},
		},
		{
			label: "transport failure maps to a NetworkError",
			resFn: func(r *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			check: func(t *testing.T, err error) {
				var ne *gl.NetworkError
				if !errors.As(err, &ne) {
					t.Fatalf("expected a NetworkError, got %v", err)
				}
				if ne.Op != "GET /photos" {
					t.Fatalf("unexpected op: %q", ne.Op)
				}
			},
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			c, err := New(Config{
				BaseURL:    "http://backend.local",
				HTTPClient: tm.HTTPClient(ts.resFn),
				Logger:     tm.NopLogger,
			})
			if err != nil {
				t.Fatalf("unexpected error creating client: %s", err.Error())
			}
			_, err = c.ListPhotos(context.Background(), "", 24)
			if err == nil {
				t.Fatal("expected an error")
			}
			ts.check(t, err)
		})
	}
}

func TestDoPropagatesRequestID(t *testing.T) {
	var header string
	client := tm.HTTPClient(func(r *http.Request) (*http.Response, error) {
		header = r.Header.Get("X-Request-Id")
		return tm.HTTPResponseJSON(http.StatusOK, gl.PhotoPage{}), nil
	})
	c, err := New(Config{
		BaseURL:    "http://backend.local",
		HTTPClient: client,
		Logger:     tm.NopLogger,
	})
	if err != nil {
		t.Fatalf("unexpected error creating client: %s", err.Error())
	}

	ctx := requestid.WithRequestID(context.Background())
	if _, err := c.ListPhotos(ctx, "", 24); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if exp := requestid.Get(ctx); header != exp {
		t.Fatalf("request id not propagated: got %q, want %q", header, exp)
	}

	// Without a context id the client mints one.
	if _, err := c.ListPhotos(context.Background(), "", 24); err != nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if header == "" {
		t.Fatal("request id missing when the context carries none")
	}
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{Logger: tm.NopLogger}); err == nil {
		t.Fatal("expected an error for a missing base url")
	}
	if _, err := New(Config{BaseURL: "http://backend.local"}); err == nil {
		t.Fatal("expected an error for a missing logger")
	}
}
