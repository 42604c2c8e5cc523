package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bigshegs18/OrganicTrace/batch"
	"github.com/bigshegs18/OrganicTrace/category"
	"github.com/bigshegs18/OrganicTrace/collab"
	"github.com/bigshegs18/OrganicTrace/license"
	"github.com/bigshegs18/OrganicTrace/revenue"
	"github.com/bigshegs18/OrganicTrace/status"
	"github.com/bigshegs18/OrganicTrace/version"
)

// Registry manages all registered hooks and provides efficient dispatch.
// Hook failures are logged and never propagate back into the call that
// emitted the event.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	// Type-cached hook lists for dispatch without per-emit type switches.
	onInit                 []OnInit
	onShutdown             []OnShutdown
	onBatchCreated         []OnBatchCreated
	onOwnershipTransferred []OnOwnershipTransferred
	onPaused               []OnPaused
	onUnpaused             []OnUnpaused
	onVersionRegistered    []OnVersionRegistered
	onLicenseGranted       []OnLicenseGranted
	onLicenseRevoked       []OnLicenseRevoked
	onCategorySet          []OnCategorySet
	onCollaboratorAdded    []OnCollaboratorAdded
	onStatusSet            []OnStatusSet
	onRevenueShareSet      []OnRevenueShareSet
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook to the registry and caches its interfaces.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}

	r.hooks = append(r.hooks, h)

	if v, ok := h.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := h.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := h.(OnBatchCreated); ok {
		r.onBatchCreated = append(r.onBatchCreated, v)
	}
	if v, ok := h.(OnOwnershipTransferred); ok {
		r.onOwnershipTransferred = append(r.onOwnershipTransferred, v)
	}
	if v, ok := h.(OnPaused); ok {
		r.onPaused = append(r.onPaused, v)
	}
	if v, ok := h.(OnUnpaused); ok {
		r.onUnpaused = append(r.onUnpaused, v)
	}
	if v, ok := h.(OnVersionRegistered); ok {
		r.onVersionRegistered = append(r.onVersionRegistered, v)
	}
	if v, ok := h.(OnLicenseGranted); ok {
		r.onLicenseGranted = append(r.onLicenseGranted, v)
	}
	if v, ok := h.(OnLicenseRevoked); ok {
		r.onLicenseRevoked = append(r.onLicenseRevoked, v)
	}
	if v, ok := h.(OnCategorySet); ok {
		r.onCategorySet = append(r.onCategorySet, v)
	}
	if v, ok := h.(OnCollaboratorAdded); ok {
		r.onCollaboratorAdded = append(r.onCollaboratorAdded, v)
	}
	if v, ok := h.(OnStatusSet); ok {
		r.onStatusSet = append(r.onStatusSet, v)
	}
	if v, ok := h.(OnRevenueShareSet); ok {
		r.onRevenueShareSet = append(r.onRevenueShareSet, v)
	}

	return nil
}

// Get returns a hook by name, or nil.
func (r *Registry) Get(name string) Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hooks {
		if h.Name() == name {
			return h
		}
	}
	return nil
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all hooks that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	hooks := r.onInit
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnInit", func() error {
			return h.OnInit(ctx, ledger)
		})
	}
}

// EmitShutdown calls OnShutdown for all hooks that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onShutdown
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnShutdown", func() error {
			return h.OnShutdown(ctx)
		})
	}
}

// EmitBatchCreated emits a batch created event.
func (r *Registry) EmitBatchCreated(ctx context.Context, evt batch.CreatedEvent) {
	r.mu.RLock()
	hooks := r.onBatchCreated
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnBatchCreated", func() error {
			return h.OnBatchCreated(ctx, evt)
		})
	}
}

// EmitOwnershipTransferred emits an ownership transferred event.
func (r *Registry) EmitOwnershipTransferred(ctx context.Context, evt batch.TransferredEvent) {
	r.mu.RLock()
	hooks := r.onOwnershipTransferred
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnOwnershipTransferred", func() error {
			return h.OnOwnershipTransferred(ctx, evt)
		})
	}
}

// EmitPaused emits a paused event.
func (r *Registry) EmitPaused(ctx context.Context, evt batch.PausedEvent) {
	r.mu.RLock()
	hooks := r.onPaused
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnPaused", func() error {
			return h.OnPaused(ctx, evt)
		})
	}
}

// EmitUnpaused emits an unpaused event.
func (r *Registry) EmitUnpaused(ctx context.Context, evt batch.UnpausedEvent) {
	r.mu.RLock()
	hooks := r.onUnpaused
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnUnpaused", func() error {
			return h.OnUnpaused(ctx, evt)
		})
	}
}

// EmitVersionRegistered emits a version registered event.
func (r *Registry) EmitVersionRegistered(ctx context.Context, evt version.RegisteredEvent) {
	r.mu.RLock()
	hooks := r.onVersionRegistered
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnVersionRegistered", func() error {
			return h.OnVersionRegistered(ctx, evt)
		})
	}
}

// EmitLicenseGranted emits a license granted event.
func (r *Registry) EmitLicenseGranted(ctx context.Context, evt license.GrantedEvent) {
	r.mu.RLock()
	hooks := r.onLicenseGranted
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnLicenseGranted", func() error {
			return h.OnLicenseGranted(ctx, evt)
		})
	}
}

// EmitLicenseRevoked emits a license revoked event.
func (r *Registry) EmitLicenseRevoked(ctx context.Context, evt license.RevokedEvent) {
	r.mu.RLock()
	hooks := r.onLicenseRevoked
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnLicenseRevoked", func() error {
			return h.OnLicenseRevoked(ctx, evt)
		})
	}
}

// EmitCategorySet emits a category set event.
func (r *Registry) EmitCategorySet(ctx context.Context, evt category.SetEvent) {
	r.mu.RLock()
	hooks := r.onCategorySet
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnCategorySet", func() error {
			return h.OnCategorySet(ctx, evt)
		})
	}
}

// EmitCollaboratorAdded emits a collaborator added event.
func (r *Registry) EmitCollaboratorAdded(ctx context.Context, evt collab.AddedEvent) {
	r.mu.RLock()
	hooks := r.onCollaboratorAdded
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnCollaboratorAdded", func() error {
			return h.OnCollaboratorAdded(ctx, evt)
		})
	}
}

// EmitStatusSet emits a status set event.
func (r *Registry) EmitStatusSet(ctx context.Context, evt status.SetEvent) {
	r.mu.RLock()
	hooks := r.onStatusSet
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnStatusSet", func() error {
			return h.OnStatusSet(ctx, evt)
		})
	}
}

// EmitRevenueShareSet emits a revenue share set event.
func (r *Registry) EmitRevenueShareSet(ctx context.Context, evt revenue.ShareSetEvent) {
	r.mu.RLock()
	hooks := r.onRevenueShareSet
	r.mu.RUnlock()

	for _, h := range hooks {
		r.dispatch(ctx, h.Name(), "OnRevenueShareSet", func() error {
			return h.OnRevenueShareSet(ctx, evt)
		})
	}
}

// dispatch runs a hook callback with a timeout and logs failures.
// Hooks must never block or fail the ledger call that emitted the event.
func (r *Registry) dispatch(ctx context.Context, hookName, event string, fn func() error) {
	if err := r.callWithTimeout(ctx, hookName, fn); err != nil {
		r.logger.Warn("hook dispatch failed",
			"hook", hookName,
			"event", event,
			"error", err,
		)
	}
}

// callWithTimeout calls a hook function with a timeout.
func (r *Registry) callWithTimeout(ctx context.Context, hookName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("hook timeout: %s", hookName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
