package models

// Group represents a reusable participant list. Expenses and settlements
// can be scoped to a group, and members join by sharing the group code.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (max 50 characters).
	Name string

	// Code is a 6-character hex join code, unique across groups.
	Code string

	// Members is the list of member user IDs.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
