// Package user provides read-only access to user records. Users are
// managed by the surrounding application; this core consumes their
// identity and the super-administrator flag.
package user

import "time"

// User represents a user account.
//
// IsRoot marks a super-administrator who is implicitly granted every
// permission in scope, independent of role membership. This is a
// different concept from a root role.
//
// Collection: auth_users
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	IsRoot    bool      `bson:"isRoot" json:"isRoot"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
