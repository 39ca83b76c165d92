package decal

import "log/slog"

// RegistryOption configures a Registry during creation.
//
// Example:
//
//	reg := decal.NewRegistry(scene,
//	    decal.WithConflictPolicy(decal.FirstClaimWins),
//	    decal.WithWorkers(4),
//	)
type RegistryOption func(*registryOptions)

// registryOptions holds optional configuration for Registry creation.
type registryOptions struct {
	policy          ConflictPolicy
	workers         int
	trackTransforms bool
	logger          *slog.Logger
}

// defaultRegistryOptions returns the default registry options.
func defaultRegistryOptions() registryOptions {
	return registryOptions{
		policy:          LastClaimWins,
		workers:         1,
		trackTransforms: true,
	}
}

// WithConflictPolicy sets how overlapping projectors resolve a vertex
// both of them claim. The default is LastClaimWins.
func WithConflictPolicy(p ConflictPolicy) RegistryOption {
	return func(o *registryOptions) {
		o.policy = p
	}
}

// WithWorkers projects independent meshes on n goroutines.
// n <= 1 keeps updates on the calling goroutine (the default);
// results are identical either way.
func WithWorkers(n int) RegistryOption {
	return func(o *registryOptions) {
		o.workers = n
	}
}

// WithTransformTracking controls whether a mesh whose world matrix changed
// since its last projection is marked dirty automatically. Enabled by
// default. Projector movement is never tracked; use Update(true) or
// Invalidate after moving a projector.
func WithTransformTracking(enabled bool) RegistryOption {
	return func(o *registryOptions) {
		o.trackTransforms = enabled
	}
}

// WithLogger gives the registry its own logger instead of the package
// logger set by SetLogger. Hosts running several registries use it to tell
// their records apart, e.g. WithLogger(slog.Default().With("scene", name)).
func WithLogger(l *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		o.logger = l
	}
}
