package api

import (
	"encoding/json"
	"testing"
)

func TestToggleFavoriteCoercionRules(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`{"isFavorite": true}`, true},
		{`{"isFavorite": false}`, false},
		{`{"isFavorite": null}`, false},
		{`{}`, false},
		{`{"isFavorite": 1}`, true},
		{`{"isFavorite": 0}`, false},
		{`{"isFavorite": "yes"}`, true},
		{`{"isFavorite": ""}`, false},
		// Non-empty strings are true, even ones that look falsy.
		{`{"isFavorite": "0"}`, true},
		{`{"isFavorite": "false"}`, true},
		{`{"isFavorite": "FALSE"}`, true},
		{`{"isFavorite": {"weird": true}}`, true},
	}
	for _, tc := range cases {
		var req ToggleFavoriteRequest
		if err := json.Unmarshal([]byte(tc.raw), &req); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if got := req.Favorite(); got != tc.want {
			t.Errorf("Favorite() for %s = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestIngredientQuantityCoercion(t *testing.T) {
	cases := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{`{"name":"a","quantity":2,"unit":"g"}`, 2, false},
		{`{"name":"a","quantity":2.5,"unit":"g"}`, 2.5, false},
		{`{"name":"a","quantity":0,"unit":"g"}`, 0, false},
		{`{"name":"a","quantity":"3.25","unit":"g"}`, 3.25, false},
		{`{"name":"a","quantity":" 4 ","unit":"g"}`, 4, false},
		{`{"name":"a","quantity":"abc","unit":"g"}`, 0, true},
		{`{"name":"a","quantity":true,"unit":"g"}`, 0, true},
		{`{"name":"a","unit":"g"}`, 0, true},
	}
	for _, tc := range cases {
		var req CreateIngredientRequest
		if err := json.Unmarshal([]byte(tc.raw), &req); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		err := req.Validate()
		if tc.wantErr {
			if err == nil {
				t.Errorf("Validate for %s succeeded, want error", tc.raw)
			} else if err.Error() != "quantity must be a number" {
				t.Errorf("error for %s = %q", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Validate for %s = %v", tc.raw, err)
			continue
		}
		if got := req.QuantityValue(); got != tc.want {
			t.Errorf("QuantityValue for %s = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
