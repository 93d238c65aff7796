// Package company provides read-only access to the company directory.
// Companies are owned by the surrounding application; this core only
// consumes their identity and reseller flag.
package company

import "time"

// Company represents a tenant company.
// Collection: companies
type Company struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Reseller  bool      `bson:"reseller" json:"reseller"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
