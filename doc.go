// Package authclient is a client-side session and credential-management
// layer for a token-based authentication service. It keeps the current
// user's authentication state across process restarts, attaches bearer
// credentials to outgoing requests, and transparently recovers from
// access-token expiry by exchanging the refresh token, so application code
// never observes a 401 for an otherwise-valid session.
//
// The package is designed for concurrent callers: Client methods are safe to
// use from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// authclient is the public surface. It exposes [Client], [Builder],
// [Config], the error taxonomy, and value types (AuthResponse, SessionInfo,
// etc.). The session state machine lives in the session subpackage; event
// dispatch and metric counters live under internal/ and are re-exported as
// aliases where callers need them.
//
// # What this package must NOT do
//
//   - Render, route, translate, or validate form input. User-facing side
//     effects leave the package only as [Event] values through a [Sink].
//   - Implement any server-side concern: password hashing, verification-code
//     generation, and token issuance belong to the auth service.
//   - Cache an access token anywhere but the session store. The pipeline
//     reads the store at send time, once per attempt.
//
// # Refresh contract
//
// A request that fails with 401 is retried exactly once after a refresh.
// Concurrent 401s share a single in-flight refresh; every waiter resumes
// with the same renewed token pair. A failed refresh (or a missing refresh
// token) clears the session and surfaces a session-expired event.
package authclient
