package models

// Role distinguishes coaching accounts from regular clients.
type Role string

const (
	RoleClient Role = "client"
	RoleCoach  Role = "coach"
)

// User is the authenticated account profile.
type User struct {
	ID                  string         `json:"id"`
	Email               string         `json:"email"`
	Username            string         `json:"username"`
	FullName            string         `json:"full_name,omitempty"`
	Role                Role           `json:"role"`
	ClientCode          string         `json:"client_code,omitempty"`
	DietaryRestrictions []string       `json:"dietary_restrictions,omitempty"`
	Preferences         map[string]any `json:"preferences,omitempty"`
}

// ClientSummary is the read-only projection of a linked client, as seen
// by a coach.
type ClientSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// CoachSummary is the read-only projection of the caller's coach.
type CoachSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}
