package services

import (
	"testing"

	"buildlink_backend/internal/models"
	"buildlink_backend/internal/services/dto"
	"buildlink_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	service        ReviewService
	reviewRepo     *fakeReviewRepo
	engagementRepo *fakeEngagementRepo
	milestoneRepo  *fakeMilestoneRepo
}

// newReviewFixture builds an accepted engagement whose approved milestones
// already sum to 100%, so the review gate is open unless a test closes it.
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	reviewRepo := newFakeReviewRepo()
	engagementRepo := newFakeEngagementRepo()
	milestoneRepo := newFakeMilestoneRepo()
	engagementRepo.addAccepted("eng-1", "customer-1", "worker-1", models.EngagementKindInterior)

	for _, pct := range []int{25, 75} {
		require.NoError(t, milestoneRepo.Create(nil, &models.Milestone{
			EngagementID: "eng-1",
			Percentage:   pct,
			Status:       models.MilestoneStatusApproved,
			Description:  "done",
		}))
	}

	return &reviewFixture{
		service:        NewReviewService(reviewRepo, engagementRepo, milestoneRepo),
		reviewRepo:     reviewRepo,
		engagementRepo: engagementRepo,
		milestoneRepo:  milestoneRepo,
	}
}

func TestSubmitReview(t *testing.T) {
	t.Run("rating must be 1..5", func(t *testing.T) {
		f := newReviewFixture(t)

		for _, rating := range []int{0, -1, 6} {
			_, err := f.service.SubmitReview(nil, "eng-1", "customer-1", &dto.SubmitReviewRequest{Rating: rating})
			assertAppError(t, err, 400)
		}
	})

	t.Run("only engagement parties may review", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.service.SubmitReview(nil, "eng-1", "stranger", &dto.SubmitReviewRequest{Rating: 5})
		assertAppError(t, err, 403)
	})

	t.Run("blocked below 100% approved progress", func(t *testing.T) {
		f := newReviewFixture(t)
		// Drop one approved milestone so progress falls to 25%.
		for id, m := range f.milestoneRepo.milestones {
			if m.Percentage == 75 {
				delete(f.milestoneRepo.milestones, id)
			}
		}

		_, err := f.service.SubmitReview(nil, "eng-1", "customer-1", &dto.SubmitReviewRequest{Rating: 5})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrReviewNotEligible))
	})

	t.Run("first side leaves the review open", func(t *testing.T) {
		f := newReviewFixture(t)

		resp, err := f.service.SubmitReview(nil, "eng-1", "customer-1", &dto.SubmitReviewRequest{Rating: 4, Comment: "solid work"})
		require.NoError(t, err)
		assert.False(t, resp.IsCompleted)
		require.NotNil(t, resp.CustomerToWorker)
		assert.Equal(t, 4, resp.CustomerToWorker.Rating)
		assert.Equal(t, "solid work", resp.CustomerToWorker.Comment)
		assert.Nil(t, resp.WorkerToCustomer)

		// The engagement stays accepted until both sides are in.
		assert.Equal(t, models.EngagementStatusAccepted, f.engagementRepo.engagements["eng-1"].Status)
	})

	t.Run("a side submits at most once", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.service.SubmitReview(nil, "eng-1", "worker-1", &dto.SubmitReviewRequest{Rating: 5})
		require.NoError(t, err)

		_, err = f.service.SubmitReview(nil, "eng-1", "worker-1", &dto.SubmitReviewRequest{Rating: 1})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyReviewed))
	})

	t.Run("both sides complete the review and the engagement", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.service.SubmitReview(nil, "eng-1", "customer-1", &dto.SubmitReviewRequest{Rating: 4})
		require.NoError(t, err)

		resp, err := f.service.SubmitReview(nil, "eng-1", "worker-1", &dto.SubmitReviewRequest{Rating: 5})
		require.NoError(t, err)
		assert.True(t, resp.IsCompleted)
		require.NotNil(t, resp.CustomerToWorker)
		require.NotNil(t, resp.WorkerToCustomer)

		assert.Equal(t, models.EngagementStatusCompleted, f.engagementRepo.engagements["eng-1"].Status)
	})

	t.Run("each submission lands on the counterpart profile", func(t *testing.T) {
		f := newReviewFixture(t)

		_, err := f.service.SubmitReview(nil, "eng-1", "customer-1", &dto.SubmitReviewRequest{Rating: 4, Comment: "great"})
		require.NoError(t, err)

		require.Len(t, f.reviewRepo.profileReviews, 1)
		pr := f.reviewRepo.profileReviews[0]
		assert.Equal(t, "worker-1", pr.SubjectID)
		assert.Equal(t, "customer-1", pr.AuthorID)
		assert.Equal(t, "eng-1", pr.EngagementID)
		assert.Equal(t, 4, pr.Rating)
		assert.Equal(t, models.UserRoleWorker, f.reviewRepo.recalculated["worker-1"])

		_, err = f.service.SubmitReview(nil, "eng-1", "worker-1", &dto.SubmitReviewRequest{Rating: 3})
		require.NoError(t, err)

		require.Len(t, f.reviewRepo.profileReviews, 2)
		assert.Equal(t, "customer-1", f.reviewRepo.profileReviews[1].SubjectID)
		assert.Equal(t, models.UserRoleCustomer, f.reviewRepo.recalculated["customer-1"])
	})
}

func TestGetReview(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.GetReview(nil, "eng-1", "customer-1")
	assertAppError(t, err, 404)

	_, err = f.service.SubmitReview(nil, "eng-1", "customer-1", &dto.SubmitReviewRequest{Rating: 4})
	require.NoError(t, err)

	resp, err := f.service.GetReview(nil, "eng-1", "worker-1")
	require.NoError(t, err)
	require.NotNil(t, resp.CustomerToWorker)
	assert.False(t, resp.IsCompleted)

	_, err = f.service.GetReview(nil, "eng-1", "stranger")
	assertAppError(t, err, 403)
}

func TestListProfileReviews(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.SubmitReview(nil, "eng-1", "customer-1", &dto.SubmitReviewRequest{Rating: 4, Comment: "great"})
	require.NoError(t, err)

	list, err := f.service.ListProfileReviews(nil, "worker-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Reviews, 1)
	assert.Equal(t, 4, list.Reviews[0].Rating)
	assert.Equal(t, 1, list.TotalPages)

	empty, err := f.service.ListProfileReviews(nil, "nobody", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.Empty(t, empty.Reviews)
}
