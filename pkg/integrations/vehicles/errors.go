package vehicles

import (
	verrors "github.com/matzehuels/vehiclelookup/pkg/errors"
)

// Resource names, also used as observability labels.
const (
	ResourceYears  = "years"
	ResourceMakes  = "makes"
	ResourceModels = "models"
)

// FetchError is the only error returned by the lookup methods.
//
// Its message is fixed per lookup ("Failed to fetch years", "Failed to fetch
// makes", "Failed to fetch models"). The underlying cause is logged by the
// client and then dropped, so callers cannot tell a network outage from a
// malformed payload or a non-2xx status.
type FetchError struct {
	Resource string
}

func (e *FetchError) Error() string {
	return "Failed to fetch " + e.Resource
}

// Is reports whether target is a *FetchError for the same resource,
// so errors.Is(err, ErrFetchMakes) works on any returned value.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && t.Resource == e.Resource
}

// Code returns ErrCodeFetchFailed for every resource.
func (e *FetchError) Code() verrors.Code {
	return verrors.ErrCodeFetchFailed
}

// Sentinels for errors.Is comparisons.
var (
	ErrFetchYears  = &FetchError{Resource: ResourceYears}
	ErrFetchMakes  = &FetchError{Resource: ResourceMakes}
	ErrFetchModels = &FetchError{Resource: ResourceModels}
)
