package services_test

import (
	"context"
	"testing"

	"designmatch_backend/internal/models"
	"designmatch_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats_Client(t *testing.T) {
	t.Parallel()

	projects := newStubProjectRepo()
	payments := newStubPaymentRepo()
	svc := services.NewDashboardService(projects, payments)

	clientID := "client-1"
	projects.add(&models.Project{ClientID: clientID, Status: models.ProjectStatusOpen})
	projects.add(&models.Project{ClientID: clientID, Status: models.ProjectStatusInProgress})
	projects.add(&models.Project{ClientID: clientID, Status: models.ProjectStatusCompleted})
	projects.add(&models.Project{ClientID: clientID, Status: models.ProjectStatusCancelled})
	projects.add(&models.Project{ClientID: "someone-else", Status: models.ProjectStatusOpen})

	// Spend counts succeeded payments only.
	require.NoError(t, payments.Create(&models.Payment{ClientID: clientID, Amount: 200, Status: models.PaymentStatusSucceeded}))
	require.NoError(t, payments.Create(&models.Payment{ClientID: clientID, Amount: 150.50, Status: models.PaymentStatusSucceeded}))
	require.NoError(t, payments.Create(&models.Payment{ClientID: clientID, Amount: 999, Status: models.PaymentStatusPending}))
	require.NoError(t, payments.Create(&models.Payment{ClientID: clientID, Amount: 50, Status: models.PaymentStatusFailed}))

	resp, err := svc.Stats(context.Background(), clientID, models.UserTypeClient)
	require.NoError(t, err)

	require.NotNil(t, resp.Client)
	assert.Nil(t, resp.Designer)
	assert.Equal(t, int64(2), resp.Client.ActiveProjects)
	assert.Equal(t, int64(1), resp.Client.CompletedProjects)
	assert.Equal(t, 350.50, resp.Client.TotalSpent)
}

func TestDashboardStats_Designer(t *testing.T) {
	t.Parallel()

	projects := newStubProjectRepo()
	payments := newStubPaymentRepo()
	svc := services.NewDashboardService(projects, payments)

	designerID := "designer-1"
	d := designerID
	projects.add(&models.Project{ClientID: "c1", DesignerID: &d, Status: models.ProjectStatusInProgress, Budget: 500})
	projects.add(&models.Project{ClientID: "c2", DesignerID: &d, Status: models.ProjectStatusCompleted, Budget: 1000})
	projects.add(&models.Project{ClientID: "c3", DesignerID: &d, Status: models.ProjectStatusCompleted, Budget: 333.33})
	projects.add(&models.Project{ClientID: "c4", DesignerID: &d, Status: models.ProjectStatusCancelled, Budget: 700})

	resp, err := svc.Stats(context.Background(), designerID, models.UserTypeDesigner)
	require.NoError(t, err)

	require.NotNil(t, resp.Designer)
	assert.Nil(t, resp.Client)
	assert.Equal(t, int64(1), resp.Designer.ActiveProjects)
	assert.Equal(t, int64(2), resp.Designer.CompletedProjects)
	// Earnings are the after-commission share of completed budgets,
	// rounded to cents: (1000 + 333.33) * 0.9.
	assert.Equal(t, 1200.0, resp.Designer.TotalEarnings)
}
