// Package session holds the client-side authentication state: the current
// access and refresh tokens, the authenticated user's profile snapshot, and
// the initialization flag that gates startup decisions.
//
// The [Store] is the single source of truth for credentials. All mutations
// are synchronous and immediately visible to subsequent [Store.Get] calls;
// no other component may cache an access token beyond one in-flight request.
//
// Durability is delegated to a [Storage] adapter. Every mutation persists the
// durable subset of the session (tokens, user, authenticated flag) under a
// fixed key; IsInitialized is deliberately excluded and always starts false
// after a restart.
package session
