package dto

// ClientStats - dashboard counters for a client account
type ClientStats struct {
	ActiveProjects    int64   `json:"active_projects"`
	CompletedProjects int64   `json:"completed_projects"`
	TotalSpent        float64 `json:"total_spent"`
}

// DesignerStats - dashboard counters for a designer account.
// TotalEarnings is the designer's share of completed project budgets
// after commission.
type DesignerStats struct {
	ActiveProjects    int64   `json:"active_projects"`
	CompletedProjects int64   `json:"completed_projects"`
	TotalEarnings     float64 `json:"total_earnings"`
}

// DashboardStatsResponse - role-dependent dashboard payload; exactly
// one of the two sections is set
type DashboardStatsResponse struct {
	Client   *ClientStats   `json:"client,omitempty"`
	Designer *DesignerStats `json:"designer,omitempty"`
}
