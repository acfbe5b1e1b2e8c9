package types

import "time"

// Institute represents a training center managed through the admin API.
type Institute struct {
	// ID is the unique identifier of the institute.
	ID int `json:"id" db:"id"`

	// Name is the institute's display name.
	Name string `json:"name" db:"name"`

	// Address is the institute's postal address.
	Address string `json:"address,omitempty" db:"address"`

	// ContactEmail is the institute's administrative contact.
	ContactEmail string `json:"contact_email,omitempty" db:"contact_email"`

	// CreatedAt is the timestamp when the institute was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
