// Package services implements the HTTP clients for the movie list service.
//
// # Raw API
//
// [APIService] performs raw requests and returns an [APIResponse] with the status, headers and
// decoded JSON when the body is JSON. Every request carries a fresh X-Request-ID and the configured
// User-Agent; a bearer token is attached only when one is given.
//
// # Movie Service
//
// [MovieService] implements [MovieClient] on top of [APIService], mapping each service call to typed
// request and response bodies from the models package.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrUnauthorized] : 401 from a bearer call; the session must be torn down
//   - [shared.ErrNoSessionToken] : login succeeded without a token
//   - [APIError] : any other non-2xx response, matching [shared.ErrAPIRequest]
//   - [shared.ErrAPIRequest] : transport or decode failure
//
// A 401 from the auth endpoints is a credential failure and surfaces as an [APIError].
// Requests are never retried and carry no client-side timeout.
package services
