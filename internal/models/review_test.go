package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSideSubmitted(t *testing.T) {
	now := time.Now()

	var nilReview *EngagementReview
	assert.False(t, nilReview.SideSubmitted(ReviewSideCustomer))

	r := &EngagementReview{}
	assert.False(t, r.SideSubmitted(ReviewSideCustomer))
	assert.False(t, r.SideSubmitted(ReviewSideWorker))

	r.CustomerSubmittedAt = &now
	assert.True(t, r.SideSubmitted(ReviewSideCustomer))
	assert.False(t, r.SideSubmitted(ReviewSideWorker))
}

func TestBothSidesSubmitted(t *testing.T) {
	now := time.Now()

	var nilReview *EngagementReview
	assert.False(t, nilReview.BothSidesSubmitted())

	r := &EngagementReview{CustomerSubmittedAt: &now}
	assert.False(t, r.BothSidesSubmitted())

	r.WorkerSubmittedAt = &now
	assert.True(t, r.BothSidesSubmitted())
}
