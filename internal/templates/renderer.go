package templates

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cbroglie/mustache"
)

// Options tune how strictly a Renderer treats missing partials.
type Options struct {
	// Strict fails the render when a partial is missing instead of
	// substituting an empty string.
	Strict bool
}

// Renderer renders views from a Store. It holds no mutable state and is
// safe for concurrent use.
type Renderer struct {
	store    *Store
	defaults Context
	opts     Options
	logger   *slog.Logger
}

// New creates a Renderer. defaults is merged under every render context.
func New(store *Store, defaults Context, opts Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		store:    store,
		defaults: defaults,
		opts:     opts,
		logger:   logger,
	}
}

// Store returns the store the renderer reads from.
func (r *Renderer) Store() *Store {
	return r.store
}

// Render reads the named view from disk, merges ctx over the default
// context and returns the rendered text. Sections follow the device's
// rules: only nil, false and empty lists are falsy, so "" and 0 are true.
func (r *Renderer) Render(view string, ctx Context) (string, error) {
	text, err := r.store.View(view)
	if err != nil {
		return "", err
	}

	partials := &partialProvider{
		store:  r.store,
		strict: r.opts.Strict,
		logger: r.logger.With("view", view),
	}
	out, err := mustache.RenderPartials(text, partials, withTruthiness(Merge(r.defaults, ctx)))
	if partials.missing != nil {
		return "", fmt.Errorf("render %q: %w", view, partials.missing)
	}
	if err != nil {
		return "", fmt.Errorf("render %q: %w", view, err)
	}
	return out, nil
}

// partialProvider resolves {{> name}} tags against the store. It lives for
// a single render.
type partialProvider struct {
	store   *Store
	strict  bool
	logger  *slog.Logger
	missing error
}

func (p *partialProvider) Get(name string) (string, error) {
	text, err := p.store.Partial(name)
	if err == nil {
		return text, nil
	}
	p.logger.Warn("partial not found", "partial", name, "path", p.store.PartialPath(name), "error", err)
	if p.strict || !errors.Is(err, ErrPartialNotFound) {
		if p.missing == nil {
			p.missing = err
		}
		return "", err
	}
	return "", nil
}
