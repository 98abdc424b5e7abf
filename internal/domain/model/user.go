// Package model defines the domain entities stored in MongoDB.
package model

import (
	"time"
)

// Role is a user's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Gender of a user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// User is a customer or administrator. ID is the uid issued by the identity provider.
type User struct {
	ID        string    `bson:"_id" json:"_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Photo     string    `bson:"photo" json:"photo"`
	Role      Role      `bson:"role" json:"role"`
	Gender    Gender    `bson:"gender" json:"gender"`
	DOB       time.Time `bson:"dob" json:"dob"`
	Age       int       `bson:"-" json:"age"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AgeOn returns the user's age in completed years on the given day.
func (u *User) AgeOn(on time.Time) int {
	if u.DOB.IsZero() {
		return 0
	}
	age := on.Year() - u.DOB.Year()
	if on.Month() < u.DOB.Month() || (on.Month() == u.DOB.Month() && on.Day() < u.DOB.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
