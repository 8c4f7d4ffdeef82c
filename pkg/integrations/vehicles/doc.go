// Package vehicles provides a client for the vehicle lookup API.
//
// # Overview
//
// The API answers three questions, one endpoint each:
//
//   - GET /years: model years, returned most recent first
//   - GET /makes?year=Y: make names for a year, sorted ascending
//   - GET /models?year=Y&make=M: model names for a year and make, sorted ascending
//
// # Usage
//
//	client := vehicles.NewClient("", 10*time.Second, logger)
//
//	years, err := client.Years(ctx)
//	makes, err := client.Makes(ctx, 2020)
//	models, err := client.Models(ctx, 2020, "Toyota")
//
// # Response Envelope
//
// Every endpoint wraps its payload as {"data": [...]}. A response without a
// data field is not an error; the lookup returns an empty slice.
//
// # Errors
//
// Each lookup fails with a [FetchError] carrying a fixed message
// ("Failed to fetch years", "Failed to fetch makes", "Failed to fetch
// models"). The original error is logged at error level and dropped.
// Use errors.Is with [ErrFetchYears], [ErrFetchMakes] or [ErrFetchModels].
//
// # Shapes
//
// [VehicleState] and [APIError] are the shapes a UI built on this client
// works with. The client itself never builds either; [ToAPIError] converts a
// lookup error for presentation.
package vehicles
