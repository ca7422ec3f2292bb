package domain

import "time"

// ClientStatus records the outcome of registration reconciliation.
type ClientStatus string

const (
	// ClientStatusActive marks a client unknown to the external directory.
	ClientStatusActive ClientStatus = "active"
	// ClientStatusExists marks a client the external directory already knew.
	ClientStatusExists ClientStatus = "exists"
)

// Gender enumerates accepted gender values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Client is the domain model for registered clients. Status is derived during
// registration and never supplied or changed by callers.
type Client struct {
	ID        int64
	Name      string
	Email     string
	Gender    Gender
	Status    ClientStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
