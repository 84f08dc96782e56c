package validation

import (
	"errors"
	"testing"

	"github.com/jaidev/gold-tracker-backend/internal/api/request"
	"github.com/jaidev/gold-tracker-backend/internal/apperrors"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "converts DD-MM-YYYY", input: "30-08-2025", want: "2025-08-30"},
		{name: "keeps YYYY-MM-DD unchanged", input: "2025-08-30", want: "2025-08-30"},
		{name: "rejects impossible date", input: "31-02-2025", wantErr: true},
		{name: "rejects impossible ISO date", input: "2025-02-31", wantErr: true},
		{name: "rejects malformed input", input: "30/08/2025", wantErr: true},
		{name: "rejects empty string", input: "", wantErr: true},
		{name: "rejects month thirteen", input: "01-13-2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidDate) {
					t.Errorf("Expected ErrInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	if got := DateKey("2025-08-30"); got != "20250830" {
		t.Errorf("Expected 20250830, got %s", got)
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "parses decimal", input: "7450.50", want: 7450.50},
		{name: "parses integer", input: "7000", want: 7000},
		{name: "rejects empty", input: "", wantErr: true},
		{name: "rejects non-numeric", input: "seven thousand", wantErr: true},
		{name: "rejects infinity", input: "Inf", wantErr: true},
		{name: "rejects NaN", input: "NaN", wantErr: true},
		{name: "rejects zero", input: "0", wantErr: true},
		{name: "rejects negative", input: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidRate) {
					t.Errorf("Expected ErrInvalidRate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidateCreateRate(t *testing.T) {
	t.Run("accepts a valid submission", func(t *testing.T) {
		err := ValidateCreateRate(request.CreateRateRequest{Date: "30-08-2025", Rate: "7450.50"})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("collects field errors", func(t *testing.T) {
		err := ValidateCreateRate(request.CreateRateRequest{Date: "31-02-2025", Rate: "abc"})
		var vErr *Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected validation Error, got %v", err)
		}
		if _, ok := vErr.Fields["date"]; !ok {
			t.Error("Expected a date field error")
		}
		if _, ok := vErr.Fields["rate"]; !ok {
			t.Error("Expected a rate field error")
		}
	})
}

func TestValidateSubmitTrade(t *testing.T) {
	amount := 24000.0
	grams := 4.0
	negative := -1.0

	t.Run("accepts amount only", func(t *testing.T) {
		err := ValidateSubmitTrade(request.SubmitTradeRequest{Date: "2025-08-30", Kind: "buy", Amount: &amount})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("accepts grams only", func(t *testing.T) {
		err := ValidateSubmitTrade(request.SubmitTradeRequest{Date: "2025-08-30", Kind: "sell", Grams: &grams})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	invalid := []struct {
		name  string
		req   request.SubmitTradeRequest
		field string
	}{
		{
			name:  "rejects both amount and grams",
			req:   request.SubmitTradeRequest{Date: "2025-08-30", Kind: "buy", Amount: &amount, Grams: &grams},
			field: "amount",
		},
		{
			name:  "rejects neither amount nor grams",
			req:   request.SubmitTradeRequest{Date: "2025-08-30", Kind: "buy"},
			field: "amount",
		},
		{
			name:  "rejects negative amount",
			req:   request.SubmitTradeRequest{Date: "2025-08-30", Kind: "buy", Amount: &negative},
			field: "amount",
		},
		{
			name:  "rejects negative grams",
			req:   request.SubmitTradeRequest{Date: "2025-08-30", Kind: "buy", Grams: &negative},
			field: "grams",
		},
		{
			name:  "rejects unknown kind",
			req:   request.SubmitTradeRequest{Date: "2025-08-30", Kind: "hold", Amount: &amount},
			field: "kind",
		},
		{
			name:  "rejects invalid date",
			req:   request.SubmitTradeRequest{Date: "31-02-2025", Kind: "buy", Amount: &amount},
			field: "date",
		},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmitTrade(tt.req)
			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected validation Error, got %v", err)
			}
			if _, ok := vErr.Fields[tt.field]; !ok {
				t.Errorf("Expected error on field %q, got %v", tt.field, vErr.Fields)
			}
		})
	}
}
