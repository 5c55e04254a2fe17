package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arklim/hall-of-fame-creators/internal/infra/config"
)

func TestNeedsTransliteration(t *testing.T) {
	cases := map[string]struct {
		name string
		want bool
	}{
		"latin":             {"Steve", false},
		"latin with digits": {"Steve99", false},
		"punctuation only":  {"-_-", false},
		"empty":             {"", false},
		"cyrillic":          {"Стив", true},
		"japanese":          {"スティーブ", true},
		"mixed":             {"Steve の村", true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := NeedsTransliteration(tc.name); got != tc.want {
				t.Fatalf("NeedsTransliteration(%q) = %v, expected %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestIsEligible_DisabledWithoutBaseURL(t *testing.T) {
	client := NewClient(config.TranslationSettings{}, nil)
	if client.IsEligible("Стив") {
		t.Fatal("expected no eligibility when the service is not configured")
	}
}

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/translations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req struct {
			CreatorID string `json:"creator_id"`
			Name      string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.CreatorID != "creator-1" || req.Name != "Стив" {
			t.Errorf("unexpected request payload %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"locale":"ru","latinized_name":"Stiv","translated_name":"Steve"}`))
	}))
	defer srv.Close()

	client := NewClient(config.TranslationSettings{BaseURL: srv.URL}, nil)

	got, err := client.Translate(context.Background(), "creator-1", "Стив")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got.Locale != "ru" || got.LatinizedName != "Stiv" || got.TranslatedName != "Steve" {
		t.Fatalf("unexpected translation %+v", got)
	}
}

func TestTranslate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.TranslationSettings{BaseURL: srv.URL}, nil)
	if _, err := client.Translate(context.Background(), "creator-1", "Стив"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
