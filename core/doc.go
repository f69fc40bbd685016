// Package core contains the session controller and app-wide contracts.
//
// Allowed here:
// - the session/actor state machine and view activation (AppContext)
// - the actor registry and role policy, impersonation included
// - tab policy (resolution, registration funneling, menu gating) and route history
//
// Not allowed here:
// - concrete screen or tab implementations
// - transport, storage and identity adapters (internal/ owns those)
package core
