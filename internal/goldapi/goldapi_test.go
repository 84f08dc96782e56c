package goldapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchSpotPrice(t *testing.T) {
	t.Run("parses a successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("x-access-token") != "secret-token" {
				t.Errorf("Expected access token header, got %q", r.Header.Get("x-access-token"))
			}
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // Test fixture write
			w.Write([]byte(`{"timestamp":1756500000,"metal":"XAU","currency":"INR","price":231500.5,"price_gram_24k":7443.12,"price_gram_22k":6822.86}`))
		}))
		defer server.Close()

		client := NewClient()
		spot, err := client.FetchSpotPrice(context.Background(), server.URL, "secret-token")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if spot.PricePerGram != 7443.12 {
			t.Errorf("Expected per-gram price 7443.12, got %v", spot.PricePerGram)
		}
		if spot.Metal != "XAU" || spot.Currency != "INR" {
			t.Errorf("Unexpected metadata: %+v", spot)
		}
	})

	t.Run("fails on non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewClient()
		if _, err := client.FetchSpotPrice(context.Background(), server.URL, "bad-token"); err == nil {
			t.Error("Expected an error for status 403")
		}
	})

	t.Run("fails on API-level error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			//nolint:errcheck // Test fixture write
			w.Write([]byte(`{"error":"invalid symbol"}`))
		}))
		defer server.Close()

		client := NewClient()
		if _, err := client.FetchSpotPrice(context.Background(), server.URL, "token"); err == nil {
			t.Error("Expected an error for an API error payload")
		}
	})

	t.Run("fails when no per-gram price is returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			//nolint:errcheck // Test fixture write
			w.Write([]byte(`{"metal":"XAU","currency":"INR","price":0}`))
		}))
		defer server.Close()

		client := NewClient()
		if _, err := client.FetchSpotPrice(context.Background(), server.URL, "token"); err == nil {
			t.Error("Expected an error for a zero price")
		}
	})
}
