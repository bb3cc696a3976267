package session

import (
	"encoding/json"
	"errors"
)

// SchemaVersion is the current persisted-state schema. Decode accepts only
// blobs carrying a known version so stale layouts from older builds cannot
// be misread as live credentials.
const SchemaVersion = 1

// ErrStateCorrupt is returned by Decode when the persisted blob is not a
// valid state record.
var ErrStateCorrupt = errors.New("persisted session state corrupt")

// ErrSchemaVersion is returned by Decode when the persisted blob carries an
// unknown schema version.
var ErrSchemaVersion = errors.New("persisted session schema version unknown")

// persistedState is the durable subset of a Session. IsInitialized is
// intentionally absent: it always restarts false.
type persistedState struct {
	Version         int    `json:"version"`
	AccessToken     string `json:"accessToken"`
	RefreshToken    string `json:"refreshToken"`
	User            *User  `json:"user,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Encode serializes the durable subset of s for a [Storage] adapter.
func Encode(s Session) ([]byte, error) {
	return json.Marshal(persistedState{
		Version:         SchemaVersion,
		AccessToken:     s.AccessToken,
		RefreshToken:    s.RefreshToken,
		User:            s.User,
		IsAuthenticated: s.IsAuthenticated,
	})
}

// Decode deserializes a blob previously produced by Encode. The returned
// Session always has IsInitialized false.
func Decode(data []byte) (Session, error) {
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return Session{}, ErrStateCorrupt
	}
	if state.Version != SchemaVersion {
		return Session{}, ErrSchemaVersion
	}
	return Session{
		AccessToken:     state.AccessToken,
		RefreshToken:    state.RefreshToken,
		User:            state.User,
		IsAuthenticated: state.IsAuthenticated,
	}, nil
}
