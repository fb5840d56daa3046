package auth

import (
	"testing"

	"naturesbasket/models"
)

func TestValidateRegistration(t *testing.T) {
	valid := registerInput{Name: "Ravi", Email: "ravi@example.com", Password: "secret1", Role: models.RoleCustomer}

	cases := []struct {
		name   string
		mutate func(*registerInput)
		want   string
	}{
		{"valid customer", func(in *registerInput) {}, ""},
		{"valid farmer", func(in *registerInput) { in.Role = models.RoleFarmer }, ""},
		{"admin self-register", func(in *registerInput) { in.Role = models.RoleAdmin }, "INVALID_ROLE"},
		{"unknown role", func(in *registerInput) { in.Role = "vendor" }, "INVALID_ROLE"},
		{"missing name", func(in *registerInput) { in.Name = "" }, "INVALID_DATA"},
		{"missing email", func(in *registerInput) { in.Email = "" }, "INVALID_DATA"},
		{"short password", func(in *registerInput) { in.Password = "abc" }, "INVALID_DATA"},
		{"malformed email", func(in *registerInput) { in.Email = "ravi.example.com" }, "INVALID_DATA"},
	}

	for _, c := range cases {
		in := valid
		c.mutate(&in)
		if got := ValidateRegistration(in); got != c.want {
			t.Errorf("%s: code = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestNewUserFarmer(t *testing.T) {
	u := NewUser(registerInput{Name: "Asha", Email: "  Asha@Farm.COM ", Password: "secret1", Role: models.RoleFarmer}, "hashed")

	if u.Status != models.UserPending {
		t.Errorf("farmer status = %s, want %s", u.Status, models.UserPending)
	}
	if u.Farmer == nil {
		t.Fatal("farmer profile not attached")
	}
	if u.Customer != nil {
		t.Error("farmer should not carry a customer profile")
	}
	if u.Farmer.Verified {
		t.Error("new farmer must not start verified")
	}
	if u.Email != "asha@farm.com" {
		t.Errorf("email = %q, want normalized lowercase", u.Email)
	}
	if u.UserID == "" {
		t.Error("user id not assigned")
	}
	if u.CanAuthenticate() != true {
		t.Error("pending farmers may still log in")
	}
}

func TestNewUserCustomer(t *testing.T) {
	u := NewUser(registerInput{Name: "Ravi", Email: "ravi@example.com", Password: "secret1", Role: models.RoleCustomer}, "hashed")

	if u.Status != models.UserActive {
		t.Errorf("customer status = %s, want %s", u.Status, models.UserActive)
	}
	if u.Customer == nil {
		t.Fatal("customer profile not attached")
	}
	if u.Farmer != nil {
		t.Error("customer should not carry a farmer profile")
	}
	if u.Customer.Wishlist == nil || u.Customer.Orders == nil {
		t.Error("customer lists should start empty, not nil")
	}
	if !u.CanAuthenticate() {
		t.Error("active customer must be able to log in")
	}
}
