package models

type UserType string
type UserStatus string
type ProjectStatus string
type PaymentStatus string
type PaymentType string
type MessageType string

const (
	UserTypeClient   UserType = "client"
	UserTypeDesigner UserType = "designer"
	UserTypeAdmin    UserType = "admin"

	UserStatusPending     UserStatus = "pending"
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"

	ProjectStatusOpen              ProjectStatus = "open"
	ProjectStatusInProgress        ProjectStatus = "in_progress"
	ProjectStatusPendingApproval   ProjectStatus = "pending_approval"
	ProjectStatusRevisionRequested ProjectStatus = "revision_requested"
	ProjectStatusCompleted         ProjectStatus = "completed"
	ProjectStatusCancelled         ProjectStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"

	PaymentTypeDeposit      PaymentType = "deposit"
	PaymentTypeFinalPayment PaymentType = "final_payment"

	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
)

// projectTransitions defines the legal project status transitions.
// cancelled is reachable from any non-terminal state.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusOpen:              {ProjectStatusInProgress, ProjectStatusCancelled},
	ProjectStatusInProgress:        {ProjectStatusPendingApproval, ProjectStatusCancelled},
	ProjectStatusPendingApproval:   {ProjectStatusRevisionRequested, ProjectStatusCompleted, ProjectStatusCancelled},
	ProjectStatusRevisionRequested: {ProjectStatusPendingApproval, ProjectStatusCancelled},
	ProjectStatusCompleted:         {},
	ProjectStatusCancelled:         {},
}

// Valid reports whether the value is a known project status
func (s ProjectStatus) Valid() bool {
	_, ok := projectTransitions[s]
	return ok
}

// CanTransition reports whether moving from one project status to another
// is a legal transition.
func (s ProjectStatus) CanTransition(to ProjectStatus) bool {
	for _, next := range projectTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s ProjectStatus) IsTerminal() bool {
	return len(projectTransitions[s]) == 0
}
