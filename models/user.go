package models

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleFarmer   Role = "farmer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleFarmer || r == RoleAdmin
}

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserPending   UserStatus = "pending"
	UserSuspended UserStatus = "suspended"
	UserRejected  UserStatus = "rejected"
)

// FarmerProfile is present only on users with RoleFarmer.
type FarmerProfile struct {
	Verified      bool    `json:"verified" bson:"verified"`
	TotalEarnings float64 `json:"totalEarnings" bson:"totalEarnings"`
	TotalSales    int     `json:"totalSales" bson:"totalSales"`
}

// CustomerProfile is present only on users with RoleCustomer.
type CustomerProfile struct {
	Wishlist []string `json:"wishlist" bson:"wishlist"`
	Orders   []string `json:"orders" bson:"orders"`
}

type User struct {
	UserID      string           `json:"userid" bson:"userid"`
	Name        string           `json:"name" bson:"name"`
	Email       string           `json:"email" bson:"email"`
	Password    string           `json:"-" bson:"password"`
	Role        Role             `json:"role" bson:"role"`
	Status      UserStatus       `json:"status" bson:"status"`
	PhoneNumber string           `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address     string           `json:"address,omitempty" bson:"address,omitempty"`
	Farmer      *FarmerProfile   `json:"farmer,omitempty" bson:"farmer,omitempty"`
	Customer    *CustomerProfile `json:"customer,omitempty" bson:"customer,omitempty"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updated_at"`
	LastLogin   time.Time        `json:"last_login" bson:"last_login"`
}

// CanAuthenticate applies the role-aware status gate: customers must be
// active, farmers and admins may log in regardless (a pending farmer sees a
// pending dashboard instead of a locked door).
func (u *User) CanAuthenticate() bool {
	if u.Role == RoleFarmer || u.Role == RoleAdmin {
		return true
	}
	return u.Status == UserActive
}

// Blocked reports whether the account must be rejected outright on every
// authenticated request, valid token or not.
func (u *User) Blocked() bool {
	return u.Status == UserSuspended || u.Status == UserRejected
}
