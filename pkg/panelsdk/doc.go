// Package panelsdk holds the wire types of the role panel API and a thin Go
// client for it.
//
// The client authenticates with a pre-issued bearer token:
//
//	c := panelsdk.NewClient("http://localhost:8080", token)
//	roles, err := c.ListRoles(ctx)
//
// Non-2xx responses are returned as *APIError.
package panelsdk
