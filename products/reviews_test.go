package products

import (
	"testing"

	"naturesbasket/models"
)

func TestRecomputeRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		avg     float64
		count   int
	}{
		{"empty", nil, 0, 0},
		{"single", []int{4}, 4, 1},
		{"mixed", []int{5, 3, 4}, 4, 3},
		{"fractional", []int{5, 4}, 4.5, 2},
	}

	for _, c := range cases {
		reviews := make([]models.Review, len(c.ratings))
		for i, r := range c.ratings {
			reviews[i] = models.Review{Rating: r}
		}
		avg, count := RecomputeRating(reviews)
		if avg != c.avg || count != c.count {
			t.Errorf("%s: RecomputeRating = (%v, %d), want (%v, %d)", c.name, avg, count, c.avg, c.count)
		}
	}
}

func TestHasReviewFrom(t *testing.T) {
	reviews := []models.Review{
		{UserID: "u1", Rating: 5},
		{UserID: "u2", Rating: 3},
	}
	if !hasReviewFrom(reviews, "u1") {
		t.Error("u1 should be found")
	}
	if hasReviewFrom(reviews, "u3") {
		t.Error("u3 should not be found")
	}
	if hasReviewFrom(nil, "u1") {
		t.Error("nil review list should never match")
	}
}

func TestPublicFilter(t *testing.T) {
	f := PublicFilter()
	if f["status"] != models.ProductActive {
		t.Errorf("public filter = %v, want status %s", f, models.ProductActive)
	}
}
