package session

import "time"

// User is the authenticated principal's profile snapshot as returned by the
// auth service. The record is replaced wholesale by login, refresh, and
// profile responses; fields are never mutated in place.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Session is a point-in-time snapshot of the client's authentication state.
//
// Invariant: IsAuthenticated is true only when AccessToken, RefreshToken,
// and User were all set together by a successful login, register, or refresh
// and no logout has occurred since.
type Session struct {
	AccessToken     string
	RefreshToken    string
	User            *User
	IsAuthenticated bool
	IsInitialized   bool
}
