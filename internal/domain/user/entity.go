package user

import (
	"time"
)

// Gender as self-reported on the profile
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// User represents a registered journal user
type User struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`

	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	Mobile       string     `db:"mobile" json:"mobile"`
	DateOfBirth  *time.Time `db:"date_of_birth" json:"dateOfBirth"`
	AddressLine1 string     `db:"address_line1" json:"addressLine1"`
	AddressLine2 string     `db:"address_line2" json:"addressLine2"`
	City         string     `db:"city" json:"city"`
	PostalCode   string     `db:"postal_code" json:"postalCode"`
	Country      string     `db:"country" json:"country"`
	Gender       Gender     `db:"gender" json:"gender"`

	// InitialCapital is the baseline equity for drawdown and
	// equity-curve computation. Zero when never set.
	InitialCapital float64 `db:"initial_capital" json:"initialCapital"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// FullName joins first and last name for display
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
