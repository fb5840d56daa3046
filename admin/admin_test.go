package admin

import (
	"errors"
	"testing"
	"time"

	"naturesbasket/models"
)

func TestMergeActivitiesOrdering(t *testing.T) {
	t1 := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)

	lands := []models.ActivityItem{{Type: "land", ID: "l1", Timestamp: t1}}
	products := []models.ActivityItem{{Type: "product", ID: "p1", Timestamp: t3}}
	orders := []models.ActivityItem{{Type: "order", ID: "o1", Timestamp: t2}}

	got := MergeActivities(10, lands, products, orders)
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3", len(got))
	}
	want := []string{"p1", "o1", "l1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestMergeActivitiesTruncates(t *testing.T) {
	base := time.Now()
	feed := make([]models.ActivityItem, 5)
	for i := range feed {
		feed[i] = models.ActivityItem{ID: string(rune('a' + i)), Timestamp: base.Add(time.Duration(i) * time.Minute)}
	}
	got := MergeActivities(3, feed)
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3", len(got))
	}
	// newest item survives truncation
	if got[0].ID != "e" {
		t.Errorf("first item = %s, want e", got[0].ID)
	}
}

func TestMergeActivitiesEmpty(t *testing.T) {
	got := MergeActivities(20)
	if got == nil {
		t.Fatal("merged feed should never be nil")
	}
	if len(got) != 0 {
		t.Fatalf("got %d items, want 0", len(got))
	}
}

func TestActorNames(t *testing.T) {
	calls := 0
	lookup := func(id string) (string, error) {
		calls++
		if id == "u-gone" {
			return "", errors.New("redis: nil")
		}
		return "name of " + id, nil
	}

	names := actorNames([]string{"u1", "u2", "u1", "", "u-gone"}, lookup)

	if names["u1"] != "name of u1" || names["u2"] != "name of u2" {
		t.Errorf("names = %v", names)
	}
	if _, ok := names["u-gone"]; ok {
		t.Error("failed lookup should leave the id unresolved")
	}
	// u1 repeated and the blank id must not trigger extra lookups
	if calls != 3 {
		t.Errorf("lookup called %d times, want 3", calls)
	}
}

func TestGrowthRate(t *testing.T) {
	cases := []struct {
		current, previous, want float64
	}{
		{0, 0, 0},
		{150.5, 0, 100},
		{300, 200, 50},
		{100, 200, -50},
	}
	for _, c := range cases {
		if got := growthRate(c.current, c.previous); got != c.want {
			t.Errorf("growthRate(%v, %v) = %v, want %v", c.current, c.previous, got, c.want)
		}
	}
}

func TestGrowth(t *testing.T) {
	cases := []struct {
		current, previous int64
		want              float64
	}{
		{0, 0, 0},
		{5, 0, 100},
		{10, 10, 0},
		{15, 10, 50},
		{5, 10, -50},
	}
	for _, c := range cases {
		if got := Growth(c.current, c.previous); got != c.want {
			t.Errorf("Growth(%d, %d) = %v, want %v", c.current, c.previous, got, c.want)
		}
	}
}

func TestLandStateForAction(t *testing.T) {
	cases := []struct {
		action string
		state  models.LandState
		ok     bool
	}{
		{"approve", models.LandApproved, true},
		{"reject", models.LandRejected, true},
		{"reset", models.LandPending, true},
		{"delete", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		state, ok := LandStateForAction(c.action)
		if state != c.state || ok != c.ok {
			t.Errorf("LandStateForAction(%q) = (%s, %v), want (%s, %v)", c.action, state, ok, c.state, c.ok)
		}
	}
}

func TestProductStateForAction(t *testing.T) {
	state, ok := ProductStateForAction("approve")
	if !ok || state != models.ProductActive {
		t.Errorf("approve = (%s, %v), want (%s, true)", state, ok, models.ProductActive)
	}
	state, ok = ProductStateForAction("reject")
	if !ok || state != models.ProductRejected {
		t.Errorf("reject = (%s, %v), want (%s, true)", state, ok, models.ProductRejected)
	}
	if _, ok := ProductStateForAction("publish"); ok {
		t.Error("unknown action should not map to a state")
	}
}
