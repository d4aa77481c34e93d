package services

import (
	"testing"

	"buildlink_backend/internal/models"
	"buildlink_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engagementFixture struct {
	service        EngagementService
	engagementRepo *fakeEngagementRepo
	userRepo       *fakeUserRepo
}

func newEngagementFixture(t *testing.T) *engagementFixture {
	t.Helper()
	engagementRepo := newFakeEngagementRepo()
	userRepo := newFakeUserRepo()
	userRepo.addUser("customer-1", models.UserRoleCustomer)
	userRepo.addUser("worker-1", models.UserRoleWorker)

	return &engagementFixture{
		service:        NewEngagementService(engagementRepo, userRepo, nil),
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
	}
}

func TestCreateEngagement(t *testing.T) {
	t.Run("open engagement without a worker", func(t *testing.T) {
		f := newEngagementFixture(t)

		resp, err := f.service.CreateEngagement(nil, "customer-1", &dto.CreateEngagementRequest{
			Kind:  models.EngagementKindArchitect,
			Title: "Summer house",
		})
		require.NoError(t, err)
		assert.Equal(t, models.EngagementStatusPending, resp.Status)
		assert.Nil(t, resp.WorkerID)
		assert.Equal(t, "customer-1", resp.CustomerID)
	})

	t.Run("targeted engagement validates the worker", func(t *testing.T) {
		f := newEngagementFixture(t)

		workerID := "worker-1"
		resp, err := f.service.CreateEngagement(nil, "customer-1", &dto.CreateEngagementRequest{
			Kind:     models.EngagementKindInterior,
			Title:    "Loft redesign",
			WorkerID: &workerID,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.WorkerID)
		assert.Equal(t, "worker-1", *resp.WorkerID)

		missing := "ghost"
		_, err = f.service.CreateEngagement(nil, "customer-1", &dto.CreateEngagementRequest{
			Kind:     models.EngagementKindInterior,
			Title:    "Loft redesign",
			WorkerID: &missing,
		})
		assertAppError(t, err, 404)

		notAWorker := "customer-1"
		_, err = f.service.CreateEngagement(nil, "customer-1", &dto.CreateEngagementRequest{
			Kind:     models.EngagementKindInterior,
			Title:    "Loft redesign",
			WorkerID: &notAWorker,
		})
		assertAppError(t, err, 400)
	})
}

func TestProposalFlow(t *testing.T) {
	proposal := &dto.SendProposalRequest{Price: 1500, Description: "full design package"}

	createOpen := func(t *testing.T, f *engagementFixture) string {
		t.Helper()
		resp, err := f.service.CreateEngagement(nil, "customer-1", &dto.CreateEngagementRequest{
			Kind:  models.EngagementKindArchitect,
			Title: "Summer house",
		})
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("first responder claims an open engagement", func(t *testing.T) {
		f := newEngagementFixture(t)
		id := createOpen(t, f)

		resp, err := f.service.SendProposal(nil, id, "worker-1", proposal)
		require.NoError(t, err)
		require.NotNil(t, resp.WorkerID)
		assert.Equal(t, "worker-1", *resp.WorkerID)
		assert.Equal(t, models.EngagementStatusProposalSent, resp.Status)
		require.NotNil(t, resp.Proposal)
		assert.Equal(t, 1500.0, resp.Proposal.Price)
	})

	t.Run("assigned engagement only takes the assigned worker's proposal", func(t *testing.T) {
		f := newEngagementFixture(t)
		workerID := "worker-1"
		resp, err := f.service.CreateEngagement(nil, "customer-1", &dto.CreateEngagementRequest{
			Kind:     models.EngagementKindArchitect,
			Title:    "Summer house",
			WorkerID: &workerID,
		})
		require.NoError(t, err)

		_, err = f.service.SendProposal(nil, resp.ID, "worker-2", proposal)
		assertAppError(t, err, 403)
	})

	t.Run("no second proposal once one is sent", func(t *testing.T) {
		f := newEngagementFixture(t)
		id := createOpen(t, f)

		_, err := f.service.SendProposal(nil, id, "worker-1", proposal)
		require.NoError(t, err)

		_, err = f.service.SendProposal(nil, id, "worker-1", proposal)
		assertAppError(t, err, 400)
	})

	t.Run("customer accepts the proposal", func(t *testing.T) {
		f := newEngagementFixture(t)
		id := createOpen(t, f)
		_, err := f.service.SendProposal(nil, id, "worker-1", proposal)
		require.NoError(t, err)

		resp, err := f.service.AcceptProposal(nil, id, "customer-1")
		require.NoError(t, err)
		assert.Equal(t, models.EngagementStatusAccepted, resp.Status)
	})

	t.Run("customer rejects the proposal", func(t *testing.T) {
		f := newEngagementFixture(t)
		id := createOpen(t, f)
		_, err := f.service.SendProposal(nil, id, "worker-1", proposal)
		require.NoError(t, err)

		resp, err := f.service.RejectProposal(nil, id, "customer-1")
		require.NoError(t, err)
		assert.Equal(t, models.EngagementStatusRejected, resp.Status)
	})

	t.Run("only the customer decides", func(t *testing.T) {
		f := newEngagementFixture(t)
		id := createOpen(t, f)
		_, err := f.service.SendProposal(nil, id, "worker-1", proposal)
		require.NoError(t, err)

		_, err = f.service.AcceptProposal(nil, id, "worker-1")
		assertAppError(t, err, 403)
	})

	t.Run("no decision without an open proposal", func(t *testing.T) {
		f := newEngagementFixture(t)
		id := createOpen(t, f)

		_, err := f.service.AcceptProposal(nil, id, "customer-1")
		assertAppError(t, err, 400)
	})
}

func TestMarkPaid(t *testing.T) {
	f := newEngagementFixture(t)
	f.engagementRepo.addAccepted("eng-1", "customer-1", "worker-1", models.EngagementKindArchitect)

	resp, err := f.service.MarkPaid(nil, "eng-1", "customer-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, resp.PaymentStatus)

	_, err = f.service.MarkPaid(nil, "eng-1", "worker-1")
	assertAppError(t, err, 403)
}

func TestProjectUpdates(t *testing.T) {
	f := newEngagementFixture(t)
	f.engagementRepo.addAccepted("eng-1", "customer-1", "worker-1", models.EngagementKindArchitect)

	t.Run("assigned worker posts updates on an accepted engagement", func(t *testing.T) {
		resp, err := f.service.AddUpdate(nil, "eng-1", "worker-1", &dto.AddProjectUpdateRequest{Note: "foundation poured"})
		require.NoError(t, err)
		assert.Equal(t, "foundation poured", resp.Note)

		updates, err := f.service.ListUpdates(nil, "eng-1", "customer-1")
		require.NoError(t, err)
		require.Len(t, updates, 1)
	})

	t.Run("customer may not post updates", func(t *testing.T) {
		_, err := f.service.AddUpdate(nil, "eng-1", "customer-1", &dto.AddProjectUpdateRequest{Note: "note"})
		assertAppError(t, err, 403)
	})

	t.Run("outsiders may not read updates", func(t *testing.T) {
		_, err := f.service.ListUpdates(nil, "eng-1", "stranger")
		assertAppError(t, err, 403)
	})
}

func TestEngagementCompletionInResponse(t *testing.T) {
	f := newEngagementFixture(t)
	e := f.engagementRepo.addAccepted("eng-1", "customer-1", "worker-1", models.EngagementKindArchitect)
	e.Milestones = []models.Milestone{
		{Percentage: 25, Status: models.MilestoneStatusApproved},
		{Percentage: 50, Status: models.MilestoneStatusApproved},
		{Percentage: 75, Status: models.MilestoneStatusPending},
	}

	resp, err := f.service.GetEngagement(nil, "eng-1", "customer-1")
	require.NoError(t, err)
	assert.Equal(t, 75, resp.Completion)
}
