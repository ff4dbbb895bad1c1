package onboarding

// Onboarding statuses. This six-state flow is the canonical, persisted
// enumeration; the four-state view the portals display is derived by
// Stage.
const (
	StatusDraft               = "draft"
	StatusSubmitted           = "submitted"
	StatusValidating          = "validating"
	StatusPendingBankApproval = "pending_bank_approval"
	StatusApproved            = "approved"
	StatusRejected            = "rejected"
)

// Derived stages shown in list views
const (
	StagePending    = "pending"
	StageInProgress = "in_progress"
	StageVerified   = "verified"
	StageRejected   = "rejected"
)

// RequiredDocumentCount is the minimum number of uploaded documents a
// profile needs before it can be submitted.
const RequiredDocumentCount = 3

// Actor identifies who invoked a transition, for the audit trail.
type Actor struct {
	UserID uint
	Email  string
	Role   string
}

// Stage collapses the canonical status into the coarse progress view:
// draft maps to pending, everything between submission and the bank's
// decision maps to in_progress, approved to verified and rejected to
// rejected.
func Stage(status string) string {
	switch status {
	case StatusDraft:
		return StagePending
	case StatusSubmitted, StatusValidating, StatusPendingBankApproval:
		return StageInProgress
	case StatusApproved:
		return StageVerified
	case StatusRejected:
		return StageRejected
	default:
		return StagePending
	}
}

// terminal reports whether no further transition may leave the status.
func terminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
