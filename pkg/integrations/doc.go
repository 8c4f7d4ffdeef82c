// Package integrations provides the HTTP plumbing shared by upstream API clients.
//
// # Overview
//
// [Client] is a pre-configured request sender: a fixed base URL, fixed default
// headers and a request timeout. Service-specific clients embed it and add
// typed operations on top. The only such client today is [vehicles], which
// talks to the vehicle lookup API.
//
// # Client Pattern
//
//	base := integrations.NewClient(baseURL, 10*time.Second, integrations.JSONHeaders())
//	var body struct{ Data []int `json:"data"` }
//	err := base.Get(ctx, "/years", nil, &body)
//
// Every request gets an X-Request-ID header and reports to the hooks
// registered in [observability]. There is no caching and no retry.
//
// # Errors
//
// Transport failures wrap [ErrNetwork] inside a coded *errors.Error
// (NETWORK_ERROR or TIMEOUT). Non-2xx responses are *[HTTPError]; a 404
// also satisfies errors.Is(err, [ErrNotFound]). Undecodable bodies are coded
// INVALID_RESPONSE.
//
// [vehicles]: github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles
// [observability]: github.com/matzehuels/vehiclelookup/pkg/observability
package integrations
