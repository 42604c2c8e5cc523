package audithook

// Action constants for audit events.
const (
	// Batch registry actions
	ActionBatchCreated         = "batch.created"
	ActionOwnershipTransferred = "batch.ownership_transferred"
	ActionLedgerPaused         = "ledger.paused"
	ActionLedgerUnpaused       = "ledger.unpaused"

	// Version history actions
	ActionVersionRegistered = "version.registered"

	// License actions
	ActionLicenseGranted = "license.granted"
	ActionLicenseRevoked = "license.revoked"

	// Categorization actions
	ActionCategorySet = "category.set"

	// Collaborator actions
	ActionCollaboratorAdded = "collaborator.added"

	// Status actions
	ActionStatusSet = "status.set"

	// Revenue actions
	ActionRevenueShareSet = "revenue.share_set"
)

// Resource constants for audit events.
const (
	ResourceBatch        = "batch"
	ResourceVersion      = "version"
	ResourceLicense      = "license"
	ResourceCategory     = "category"
	ResourceCollaborator = "collaborator"
	ResourceStatus       = "status"
	ResourceRevenue      = "revenue"
	ResourceLedger       = "ledger"
)

// Category constants for audit events.
const (
	CategoryRegistry  = "registry"
	CategoryOwnership = "ownership"
	CategoryGrant     = "grant"
	CategoryAdmin     = "admin"
)

// Severity levels for audit events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
