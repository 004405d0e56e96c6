package posts

import "sync"

// Registry is the corpus-wide slug accumulator. It is passed explicitly
// through the validation phase so batches stay composable and testable; the
// first claim for a slug wins and later claims report the original source.
type Registry struct {
	mu    sync.Mutex
	slugs map[string]string
}

// NewRegistry returns an empty slug registry.
func NewRegistry() *Registry {
	return &Registry{slugs: map[string]string{}}
}

// Claim records slug for sourcePath. The boolean reports whether the claim
// succeeded; on conflict the returned string names the source that holds the
// slug. Safe for use from concurrent parse workers.
func (r *Registry) Claim(slug, sourcePath string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if first, ok := r.slugs[slug]; ok {
		return first, false
	}
	r.slugs[slug] = sourcePath
	return sourcePath, true
}

// Len reports how many slugs have been claimed.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slugs)
}
