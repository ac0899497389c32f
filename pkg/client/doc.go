// Package client is a Go SDK for the generic CRUD API.
//
// A Client owns the HTTP transport (go-retryablehttp, retrying connection
// failures, 429 and 5xx responses) and a Resource[T] binds it to one entity
// collection:
//
//	c := client.New("http://localhost:8080")
//	items := client.NewResource[Item](c, "items")
//	page, err := items.Page(ctx, client.PageOptions{Page: 1, Size: 20, Sort: "name,desc"})
//
// Failed requests return *APIError carrying the server's error payload.
package client
