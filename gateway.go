package authclient

import (
	"context"
	"net/http"
)

// gateway is the stateless mapping between the remote API and Go values.
// Each method is a single request/response translation over the pipeline
// with no retry or session logic of its own; the gateway never reads or
// writes the session store.
type gateway struct {
	pipe *pipeline
}

func (g *gateway) register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	err := g.pipe.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
		out:    &out,
	})
	return out, err
}

func (g *gateway) login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	err := g.pipe.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   req,
		out:    &out,
	})
	return out, err
}

// logout deactivates the session identified by sessionID, or the current
// one when sessionID is empty; the body is omitted entirely in that case.
func (g *gateway) logout(ctx context.Context, sessionID string) (MessageResponse, error) {
	var body any
	if sessionID != "" {
		body = logoutRequest{SessionID: sessionID}
	}

	var out MessageResponse
	err := g.pipe.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/logout",
		body:   body,
		out:    &out,
	})
	return out, err
}

// refresh exchanges a refresh token for a renewed pair. The call is marked
// noRefresh: a 401 here means the refresh token itself is dead, and looping
// back into the retry protocol would recurse.
func (g *gateway) refresh(ctx context.Context, refreshToken string) (AuthResponse, error) {
	var out AuthResponse
	err := g.pipe.do(ctx, &request{
		method:    http.MethodPost,
		path:      "/auth/refresh",
		body:      RefreshRequest{RefreshToken: refreshToken},
		out:       &out,
		noRefresh: true,
	})
	return out, err
}

func (g *gateway) verifyEmail(ctx context.Context, req VerifyEmailRequest) (MessageResponse, error) {
	var out MessageResponse
	err := g.pipe.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/verify-email",
		body:   req,
		out:    &out,
	})
	return out, err
}

func (g *gateway) changePassword(ctx context.Context, req ChangePasswordRequest) (MessageResponse, error) {
	var out MessageResponse
	err := g.pipe.do(ctx, &request{
		method: http.MethodPost,
		path:   "/auth/change-password",
		body:   req,
		out:    &out,
	})
	return out, err
}

func (g *gateway) sessions(ctx context.Context) ([]SessionInfo, error) {
	var out []SessionInfo
	err := g.pipe.do(ctx, &request{
		method: http.MethodGet,
		path:   "/sessions",
		out:    &out,
	})
	return out, err
}

func (g *gateway) deactivateSession(ctx context.Context, sessionID string) (MessageResponse, error) {
	var out MessageResponse
	err := g.pipe.do(ctx, &request{
		method: http.MethodDelete,
		path:   "/sessions/" + sessionID,
		out:    &out,
	})
	return out, err
}

func (g *gateway) deactivateAllSessions(ctx context.Context) (CountedMessageResponse, error) {
	var out CountedMessageResponse
	err := g.pipe.do(ctx, &request{
		method: http.MethodDelete,
		path:   "/sessions",
		out:    &out,
	})
	return out, err
}

func (g *gateway) profile(ctx context.Context) (*User, error) {
	var out User
	err := g.pipe.do(ctx, &request{
		method: http.MethodGet,
		path:   "/users/profile",
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *gateway) updateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var out User
	err := g.pipe.do(ctx, &request{
		method: http.MethodPatch,
		path:   "/users/profile",
		body:   req,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
