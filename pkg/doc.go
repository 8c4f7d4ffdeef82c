// Package pkg holds the reusable libraries behind vehiclelookup.
//
// # Overview
//
// vehiclelookup is a thin client for a remote vehicle catalogue: which model
// years exist, which makes were sold in a year, which models a make offered.
// The libraries are layered:
//
//  1. [integrations] - shared HTTP plumbing (headers, request IDs, status errors)
//  2. [vehicles] - the three lookups, VehicleState and the APIError shape
//  3. [selection] - persistence of a picked VehicleState (memory, file, redis, mongo)
//  4. [observability] - hooks for request and lookup metrics, with a
//     Prometheus backend in [prommetrics]
//  5. [errors] - coded errors and input validation
//
// # Data Flow
//
//	remote API {"data": [...]}
//	         ↓
//	    [integrations] Client.Get (decode, status mapping)
//	         ↓
//	    [vehicles] Client.Years / Makes / Models (reshape, sort)
//	         ↓
//	    CLI picker or JSON server → [selection] Store
//
// # Quick Start
//
//	client := vehicles.NewClient("", 10*time.Second, nil)
//	years, err := client.Years(ctx)      // [2024 2023 ...]
//	makes, err := client.Makes(ctx, 2020) // ["Acura" "Toyota" ...]
//	models, err := client.Models(ctx, 2020, "Toyota")
//
// Every lookup failure is a *vehicles.FetchError with a fixed message; the
// cause is logged, not returned.
//
// [integrations]: github.com/matzehuels/vehiclelookup/pkg/integrations
// [vehicles]: github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles
// [selection]: github.com/matzehuels/vehiclelookup/pkg/selection
// [observability]: github.com/matzehuels/vehiclelookup/pkg/observability
// [prommetrics]: github.com/matzehuels/vehiclelookup/pkg/observability/prommetrics
// [errors]: github.com/matzehuels/vehiclelookup/pkg/errors
package pkg
