package models

import (
	"encoding/json"
	"testing"
)

func TestCanAuthenticate(t *testing.T) {
	cases := []struct {
		role   Role
		status UserStatus
		want   bool
	}{
		{RoleCustomer, UserActive, true},
		{RoleCustomer, UserPending, false},
		{RoleCustomer, UserSuspended, false},
		{RoleFarmer, UserActive, true},
		{RoleFarmer, UserPending, true},
		{RoleAdmin, UserActive, true},
	}
	for _, c := range cases {
		u := &User{Role: c.role, Status: c.status}
		if got := u.CanAuthenticate(); got != c.want {
			t.Errorf("%s/%s: CanAuthenticate = %v, want %v", c.role, c.status, got, c.want)
		}
	}
}

func TestBlocked(t *testing.T) {
	cases := map[UserStatus]bool{
		UserActive:    false,
		UserPending:   false,
		UserSuspended: true,
		UserRejected:  true,
	}
	for status, want := range cases {
		u := &User{Status: status}
		if got := u.Blocked(); got != want {
			t.Errorf("%s: Blocked = %v, want %v", status, got, want)
		}
	}
}

func TestUserJSONHidesPassword(t *testing.T) {
	u := User{UserID: "u1", Name: "Asha", Password: "hash"}
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out["password"]; ok {
		t.Error("password leaked into JSON")
	}
}

func TestLandMarshalJSONDerivesIsApproved(t *testing.T) {
	cases := map[LandState]bool{
		LandPending:  false,
		LandApproved: true,
		LandRejected: false,
		LandInactive: false,
	}
	for state, want := range cases {
		data, err := json.Marshal(Land{LandID: "l1", Status: state})
		if err != nil {
			t.Fatal(err)
		}
		var out map[string]interface{}
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if got, ok := out["isApproved"].(bool); !ok || got != want {
			t.Errorf("%s: isApproved = %v, want %v", state, out["isApproved"], want)
		}
		if out["status"] != string(state) {
			t.Errorf("%s: status = %v", state, out["status"])
		}
	}
}

func TestProductMarshalJSONDerivesIsApproved(t *testing.T) {
	data, err := json.Marshal(Product{ProductID: "p1", Status: ProductActive})
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if got, _ := out["isApproved"].(bool); !got {
		t.Error("active product should report isApproved true")
	}

	data, _ = json.Marshal(Product{ProductID: "p1", Status: ProductPending})
	out = nil
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if got, _ := out["isApproved"].(bool); got {
		t.Error("pending product should report isApproved false")
	}
}

func TestHasFarmer(t *testing.T) {
	o := &Order{Items: []OrderItem{{FarmerID: "f1"}, {FarmerID: "f2"}}}
	if !o.HasFarmer("f1") || !o.HasFarmer("f2") {
		t.Error("farmers with lines should be found")
	}
	if o.HasFarmer("f3") {
		t.Error("farmer without lines should not be found")
	}
	empty := &Order{}
	if empty.HasFarmer("f1") {
		t.Error("empty order has no farmers")
	}
}
