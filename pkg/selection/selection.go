// Package selection persists picker state between runs.
//
// A [Store] keeps one [vehicles.VehicleState] per profile name, so a user can
// come back to the last year/make/model they picked. Backends:
//   - memory: in-process map, for tests and the server's default
//   - file: JSON files under ~/.config/vehiclelookup/selections/ (CLI default)
//   - redis: shared state for multi-instance server deployments
//   - mongo: document-per-profile storage
//
// # Usage
//
//	store, err := selection.Open(ctx, selection.Options{Backend: selection.BackendFile})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	st, err := store.Get(ctx, "default")  // nil, nil when nothing is saved
package selection

import (
	"context"
	"fmt"
	"slices"
	"time"

	verrors "github.com/matzehuels/vehiclelookup/pkg/errors"
	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
)

// DefaultProfile is used when no profile is given.
const DefaultProfile = "default"

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every supported backend name.
var Backends = []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}

// Store is the interface for selection storage backends.
type Store interface {
	// Get returns the state saved for profile.
	// Returns nil, nil if nothing is saved.
	Get(ctx context.Context, profile string) (*vehicles.VehicleState, error)

	// Set saves st for profile, replacing any previous state.
	// A nil st is an INVALID_INPUT error.
	Set(ctx context.Context, profile string, st *vehicles.VehicleState) error

	// Delete removes the state for profile. Deleting a missing profile is not an error.
	Delete(ctx context.Context, profile string) error

	// Close releases backend resources.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string

	// Dir is the file backend directory ("" for the default).
	Dir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// RedisTTL expires saved selections; 0 keeps them forever.
	RedisTTL time.Duration

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open creates the store named by opts.Backend.
// An empty backend selects the file store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, RedisConfig{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			TTL:      opts.RedisTTL,
		})
	case BackendMongo:
		return NewMongoStore(ctx, MongoConfig{
			URI:        opts.MongoURI,
			Database:   opts.MongoDatabase,
			Collection: opts.MongoCollection,
		})
	default:
		return nil, verrors.New(verrors.ErrCodeUnsupported, "unknown selection backend %q (want one of %v)", opts.Backend, Backends)
	}
}

func checkProfile(profile string) error {
	if err := verrors.ValidateProfile(profile); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	return nil
}

// checkSet validates the arguments of Store.Set. A nil state is rejected in
// every backend; use Delete to remove a selection.
func checkSet(profile string, st *vehicles.VehicleState) error {
	if err := checkProfile(profile); err != nil {
		return err
	}
	if st == nil {
		return verrors.New(verrors.ErrCodeInvalidInput, "selection: nil state for profile %q", profile)
	}
	return nil
}

// clone deep-copies st so stores never share slices or pointers with callers.
func clone(st *vehicles.VehicleState) *vehicles.VehicleState {
	if st == nil {
		return nil
	}
	out := &vehicles.VehicleState{
		Years:  slices.Clone(st.Years),
		Makes:  slices.Clone(st.Makes),
		Models: slices.Clone(st.Models),
	}
	if st.SelectedYear != nil {
		y := *st.SelectedYear
		out.SelectedYear = &y
	}
	if st.SelectedMake != nil {
		m := *st.SelectedMake
		out.SelectedMake = &m
	}
	if st.SelectedModel != nil {
		m := *st.SelectedModel
		out.SelectedModel = &m
	}
	return out
}
