// Package notify carries user-facing side effects out of the request
// pipeline and the session orchestrator: error toasts, success messages,
// session-expiry warnings, and navigation intents.
//
// The pipeline and orchestrator only ever emit [Event] values; rendering,
// routing, and translation belong to the embedding application, which
// consumes events through a [Sink]. Dispatch is asynchronous so a slow or
// absent consumer can never block a network call.
package notify
