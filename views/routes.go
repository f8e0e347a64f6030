package views

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Registry maps route names to gin path patterns so views can build URLs
// from an endpoint name instead of a hardcoded path.
type Registry struct {
	mu    sync.RWMutex
	paths map[string]string
}

// Routes is the default registry used by RedirectView when none is set.
var Routes = NewRegistry()

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{paths: make(map[string]string)}
}

// Register records a named route with a gin style path pattern, e.g.
// "/posts/:pk". Registering the same name twice is an error.
func (r *Registry) Register(name, path string) error {
	if name == "" {
		return fmt.Errorf("route name must not be empty")
	}
	if path == "" {
		return fmt.Errorf("route %s: path must not be empty", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.paths[name]; ok {
		return fmt.Errorf("route %s already registered as %s", name, existing)
	}
	r.paths[name] = path
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name, path string) {
	if err := r.Register(name, path); err != nil {
		panic(err)
	}
}

// Path returns the registered path pattern for a route name.
func (r *Registry) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.paths[name]
	return path, ok
}

// URLFor builds the URL of a named route. Path parameters (":name" and
// "*name" segments) are filled from params; params that do not appear in the
// path are appended as query arguments. A missing path parameter or an
// unknown route name is an error.
func (r *Registry) URLFor(name string, params map[string]string) (string, error) {
	pattern, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("no route registered under %s", name)
	}

	used := make(map[string]bool, len(params))
	segments := strings.Split(pattern, "/")

	for i, segment := range segments {
		if segment == "" {
			continue
		}

		switch segment[0] {
		case ':':
			key := segment[1:]
			value, ok := params[key]
			if !ok {
				return "", fmt.Errorf("route %s: missing parameter %s", name, key)
			}
			segments[i] = url.PathEscape(value)
			used[key] = true
		case '*':
			key := segment[1:]
			value, ok := params[key]
			if !ok {
				return "", fmt.Errorf("route %s: missing parameter %s", name, key)
			}
			segments[i] = value
			used[key] = true
		}
	}

	built := strings.Join(segments, "/")

	query := url.Values{}
	for key, value := range params {
		if !used[key] {
			query.Set(key, value)
		}
	}
	if len(query) > 0 {
		built += "?" + query.Encode()
	}

	return built, nil
}
