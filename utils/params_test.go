package utils

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		url       string
		wantSkip  int64
		wantLimit int64
	}{
		{"/api/products", 0, 10},
		{"/api/products?page=1&limit=10", 0, 10},
		{"/api/products?page=3&limit=10", 20, 10},
		{"/api/products?page=2&limit=5", 5, 5},
		{"/api/products?page=0", 0, 10},
		{"/api/products?page=-4&limit=-1", 0, 10},
		{"/api/products?limit=500", 0, 50},
		{"/api/products?page=abc&limit=xyz", 0, 10},
	}

	for _, c := range cases {
		r := httptest.NewRequest("GET", c.url, nil)
		skip, limit := ParsePagination(r, 10, 50)
		if skip != c.wantSkip || limit != c.wantLimit {
			t.Errorf("%s: got (skip=%d, limit=%d), want (%d, %d)", c.url, skip, limit, c.wantSkip, c.wantLimit)
		}
	}
}

func TestPageOf(t *testing.T) {
	cases := []struct {
		skip, limit, want int64
	}{
		{0, 10, 1},
		{20, 10, 3},
		{5, 5, 2},
		{0, 0, 1},
	}
	for _, c := range cases {
		if got := PageOf(c.skip, c.limit); got != c.want {
			t.Errorf("PageOf(%d, %d) = %d, want %d", c.skip, c.limit, got, c.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, limit, want int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.limit); got != c.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}

func TestParseSort(t *testing.T) {
	def := bson.D{{Key: "createdAt", Value: -1}}
	allowed := map[string]bson.D{
		"price_asc":  {{Key: "price", Value: 1}},
		"price_desc": {{Key: "price", Value: -1}},
	}

	got := ParseSort("price_asc", def, allowed)
	if len(got) != 1 || got[0].Key != "price" || got[0].Value != 1 {
		t.Errorf("price_asc sort = %v", got)
	}

	got = ParseSort("bogus", def, allowed)
	if len(got) != 1 || got[0].Key != "createdAt" {
		t.Errorf("fallback sort = %v, want default", got)
	}
}

func TestGenerateRandomDigitString(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := GenerateRandomDigitString(6)
		if len(s) != 6 {
			t.Fatalf("length = %d, want 6", len(s))
		}
		for _, c := range s {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit %q in %q", c, s)
			}
		}
	}
}
