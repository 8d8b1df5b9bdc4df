package model

import "time"

// Resource is an opaque reference into the catalog. The booking core only
// needs the identity and the active flag; everything else belongs to the
// catalog service.
type Resource struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
