// Package common contains shared constants and sentinel errors used across
// worklog components.
package common

// UnknownOwner is shown for sessions recorded before ownership was tracked.
const UnknownOwner = "N/A"

// AuthorizationHeaderName carries the bearer access token on API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "
