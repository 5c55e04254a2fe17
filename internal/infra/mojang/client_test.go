package mojang

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arklim/hall-of-fame-creators/internal/core/port"
	"github.com/arklim/hall-of-fame-creators/internal/infra/config"
)

type memoryCache struct {
	profiles map[string]port.VerifiedProfile
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{profiles: make(map[string]port.VerifiedProfile)}
}

func (m *memoryCache) Get(_ context.Context, bearer string) (port.VerifiedProfile, bool, error) {
	m.getCalls++
	if m.getErr != nil {
		return port.VerifiedProfile{}, false, m.getErr
	}
	profile, ok := m.profiles[bearer]
	return profile, ok, nil
}

func (m *memoryCache) Set(_ context.Context, bearer string, profile port.VerifiedProfile) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.profiles[bearer] = profile
	return nil
}

func TestVerify(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"069a79f444e94726a5befca90e38aaf5","name":"Notch"}`))
	}))
	defer srv.Close()

	client := NewClient(config.MojangSettings{BaseURL: srv.URL}, nil, nil)

	profile, err := client.Verify(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
	if profile.UUID != "069a79f4-44e9-4726-a5be-fca90e38aaf5" {
		t.Fatalf("expected canonical uuid, got %q", profile.UUID)
	}
	if profile.Username != "Notch" {
		t.Fatalf("unexpected username %q", profile.Username)
	}
}

func TestVerify_InvalidCredential(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(config.MojangSettings{BaseURL: srv.URL}, nil, nil)
		_, err := client.Verify(context.Background(), "expired")
		srv.Close()

		if !errors.Is(err, port.ErrVerifierInvalidCredential) {
			t.Fatalf("status %d: expected ErrVerifierInvalidCredential, got %v", status, err)
		}
	}
}

func TestVerify_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(config.MojangSettings{BaseURL: srv.URL}, nil, nil)
	if _, err := client.Verify(context.Background(), "token"); !errors.Is(err, port.ErrVerifierRequestFailed) {
		t.Fatalf("expected ErrVerifierRequestFailed, got %v", err)
	}
}

func TestVerify_MalformedResponse(t *testing.T) {
	cases := map[string]string{
		"invalid json": `{"id":`,
		"bad uuid":     `{"id":"not-hex","name":"Notch"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := NewClient(config.MojangSettings{BaseURL: srv.URL}, nil, nil)
			if _, err := client.Verify(context.Background(), "token"); !errors.Is(err, port.ErrVerifierMalformedResponse) {
				t.Fatalf("expected ErrVerifierMalformedResponse, got %v", err)
			}
		})
	}
}

func TestVerify_CacheHitSkipsUpstream(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"id":"069a79f444e94726a5befca90e38aaf5","name":"Notch"}`))
	}))
	defer srv.Close()

	cache := newMemoryCache()
	client := NewClient(config.MojangSettings{BaseURL: srv.URL}, cache, nil)

	if _, err := client.Verify(context.Background(), "token"); err != nil {
		t.Fatalf("first Verify returned error: %v", err)
	}
	if _, err := client.Verify(context.Background(), "token"); err != nil {
		t.Fatalf("second Verify returned error: %v", err)
	}

	if requests != 1 {
		t.Fatalf("expected 1 upstream request, got %d", requests)
	}
	if cache.setCalls != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.setCalls)
	}
}

func TestVerify_CacheErrorsAreNonFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"069a79f444e94726a5befca90e38aaf5","name":"Notch"}`))
	}))
	defer srv.Close()

	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	client := NewClient(config.MojangSettings{BaseURL: srv.URL}, cache, nil)

	profile, err := client.Verify(context.Background(), "token")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if profile.Username != "Notch" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}
