// Package audithook bridges ledger lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit collaborator. Callers inject a RecorderFunc adapter
// that bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bigshegs18/OrganicTrace/batch"
	"github.com/bigshegs18/OrganicTrace/category"
	"github.com/bigshegs18/OrganicTrace/collab"
	"github.com/bigshegs18/OrganicTrace/hook"
	"github.com/bigshegs18/OrganicTrace/license"
	"github.com/bigshegs18/OrganicTrace/revenue"
	"github.com/bigshegs18/OrganicTrace/status"
	"github.com/bigshegs18/OrganicTrace/version"
)

// Compile-time interface checks.
var (
	_ hook.Hook                   = (*Extension)(nil)
	_ hook.OnBatchCreated         = (*Extension)(nil)
	_ hook.OnOwnershipTransferred = (*Extension)(nil)
	_ hook.OnPaused               = (*Extension)(nil)
	_ hook.OnUnpaused             = (*Extension)(nil)
	_ hook.OnVersionRegistered    = (*Extension)(nil)
	_ hook.OnLicenseGranted       = (*Extension)(nil)
	_ hook.OnLicenseRevoked       = (*Extension)(nil)
	_ hook.OnCategorySet          = (*Extension)(nil)
	_ hook.OnCollaboratorAdded    = (*Extension)(nil)
	_ hook.OnStatusSet            = (*Extension)(nil)
	_ hook.OnRevenueShareSet      = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a backend-neutral representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges ledger lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements hook.Hook.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Batch registry hooks
// ──────────────────────────────────────────────────

// OnBatchCreated implements hook.OnBatchCreated.
func (e *Extension) OnBatchCreated(ctx context.Context, evt batch.CreatedEvent) error {
	return e.record(ctx, ActionBatchCreated, SeverityInfo,
		ResourceBatch, evt.BatchID.String(), CategoryRegistry,
		"event_id", evt.EventID.String(),
		"creator", evt.Creator.String(),
	)
}

// OnOwnershipTransferred implements hook.OnOwnershipTransferred.
func (e *Extension) OnOwnershipTransferred(ctx context.Context, evt batch.TransferredEvent) error {
	return e.record(ctx, ActionOwnershipTransferred, SeverityInfo,
		ResourceBatch, evt.BatchID.String(), CategoryOwnership,
		"event_id", evt.EventID.String(),
		"from", evt.From.String(),
		"to", evt.To.String(),
	)
}

// OnPaused implements hook.OnPaused.
func (e *Extension) OnPaused(ctx context.Context, evt batch.PausedEvent) error {
	return e.record(ctx, ActionLedgerPaused, SeverityWarning,
		ResourceLedger, "", CategoryAdmin,
		"event_id", evt.EventID.String(),
		"by", evt.By.String(),
	)
}

// OnUnpaused implements hook.OnUnpaused.
func (e *Extension) OnUnpaused(ctx context.Context, evt batch.UnpausedEvent) error {
	return e.record(ctx, ActionLedgerUnpaused, SeverityInfo,
		ResourceLedger, "", CategoryAdmin,
		"event_id", evt.EventID.String(),
		"by", evt.By.String(),
	)
}

// ──────────────────────────────────────────────────
// Sub-registry hooks
// ──────────────────────────────────────────────────

// OnVersionRegistered implements hook.OnVersionRegistered.
func (e *Extension) OnVersionRegistered(ctx context.Context, evt version.RegisteredEvent) error {
	return e.record(ctx, ActionVersionRegistered, SeverityInfo,
		ResourceVersion, evt.BatchID.String(), CategoryRegistry,
		"event_id", evt.EventID.String(),
		"version", evt.Version,
	)
}

// OnLicenseGranted implements hook.OnLicenseGranted.
func (e *Extension) OnLicenseGranted(ctx context.Context, evt license.GrantedEvent) error {
	return e.record(ctx, ActionLicenseGranted, SeverityInfo,
		ResourceLicense, evt.BatchID.String(), CategoryGrant,
		"event_id", evt.EventID.String(),
		"licensee", evt.Licensee.String(),
		"expiry", uint64(evt.Expiry),
	)
}

// OnLicenseRevoked implements hook.OnLicenseRevoked.
func (e *Extension) OnLicenseRevoked(ctx context.Context, evt license.RevokedEvent) error {
	return e.record(ctx, ActionLicenseRevoked, SeverityInfo,
		ResourceLicense, evt.BatchID.String(), CategoryGrant,
		"event_id", evt.EventID.String(),
		"licensee", evt.Licensee.String(),
	)
}

// OnCategorySet implements hook.OnCategorySet.
func (e *Extension) OnCategorySet(ctx context.Context, evt category.SetEvent) error {
	return e.record(ctx, ActionCategorySet, SeverityInfo,
		ResourceCategory, evt.BatchID.String(), CategoryRegistry,
		"event_id", evt.EventID.String(),
		"category", evt.Category,
	)
}

// OnCollaboratorAdded implements hook.OnCollaboratorAdded.
func (e *Extension) OnCollaboratorAdded(ctx context.Context, evt collab.AddedEvent) error {
	return e.record(ctx, ActionCollaboratorAdded, SeverityInfo,
		ResourceCollaborator, evt.BatchID.String(), CategoryGrant,
		"event_id", evt.EventID.String(),
		"collaborator", evt.Collaborator.String(),
		"role", evt.Role,
	)
}

// OnStatusSet implements hook.OnStatusSet.
func (e *Extension) OnStatusSet(ctx context.Context, evt status.SetEvent) error {
	return e.record(ctx, ActionStatusSet, SeverityInfo,
		ResourceStatus, evt.BatchID.String(), CategoryRegistry,
		"event_id", evt.EventID.String(),
		"status", evt.Status,
		"visible", evt.Visible,
	)
}

// OnRevenueShareSet implements hook.OnRevenueShareSet.
func (e *Extension) OnRevenueShareSet(ctx context.Context, evt revenue.ShareSetEvent) error {
	return e.record(ctx, ActionRevenueShareSet, SeverityInfo,
		ResourceRevenue, evt.BatchID.String(), CategoryGrant,
		"event_id", evt.EventID.String(),
		"participant", evt.Participant.String(),
		"percentage", evt.Percentage,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity string,
	resource, resourceID, cat string,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   cat,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    OutcomeSuccess,
		Severity:   severity,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}

// allActions returns all known audit actions.
func allActions() []string {
	return []string{
		ActionBatchCreated,
		ActionOwnershipTransferred,
		ActionLedgerPaused,
		ActionLedgerUnpaused,
		ActionVersionRegistered,
		ActionLicenseGranted,
		ActionLicenseRevoked,
		ActionCategorySet,
		ActionCollaboratorAdded,
		ActionStatusSet,
		ActionRevenueShareSet,
	}
}
