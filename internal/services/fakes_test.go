package services

import (
	"time"

	"buildlink_backend/internal/models"
	"buildlink_backend/internal/models/chat"
	"buildlink_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. Service methods receive a nil *gorm.DB; the
// fakes ignore it.

// --- users ---

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) addUser(id string, role models.UserRole) *models.User {
	user := &models.User{
		Email:  id + "@example.com",
		Name:   id,
		Role:   role,
		Status: models.UserStatusActive,
	}
	user.ID = id
	f.users[id] = user
	return user
}

func (f *fakeUserRepo) CreateUser(db *gorm.DB, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateUser(db *gorm.DB, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) CreateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error {
	return nil
}
func (f *fakeUserRepo) CreateCustomerProfile(db *gorm.DB, profile *models.CustomerProfile) error {
	return nil
}
func (f *fakeUserRepo) CreateCompanyProfile(db *gorm.DB, profile *models.CompanyProfile) error {
	return nil
}
func (f *fakeUserRepo) FindWorkerProfile(db *gorm.DB, userID string) (*models.WorkerProfile, error) {
	return nil, repositories.ErrProfileNotFound
}
func (f *fakeUserRepo) FindCustomerProfile(db *gorm.DB, userID string) (*models.CustomerProfile, error) {
	return nil, repositories.ErrProfileNotFound
}
func (f *fakeUserRepo) FindCompanyProfile(db *gorm.DB, userID string) (*models.CompanyProfile, error) {
	return nil, repositories.ErrProfileNotFound
}
func (f *fakeUserRepo) FindWorkers(db *gorm.DB, specialization models.Specialization, limit, offset int) ([]models.WorkerProfile, int64, error) {
	return nil, 0, nil
}

// --- engagements ---

type fakeEngagementRepo struct {
	engagements map[string]*models.Engagement
	updates     map[string][]models.ProjectUpdate
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		engagements: make(map[string]*models.Engagement),
		updates:     make(map[string][]models.ProjectUpdate),
	}
}

func (f *fakeEngagementRepo) addAccepted(id, customerID, workerID string, kind models.EngagementKind) *models.Engagement {
	e := &models.Engagement{
		Kind:       kind,
		CustomerID: customerID,
		WorkerID:   &workerID,
		Status:     models.EngagementStatusAccepted,
		Title:      "Test engagement",
	}
	e.ID = id
	f.engagements[id] = e
	return e
}

func (f *fakeEngagementRepo) Create(db *gorm.DB, engagement *models.Engagement) error {
	if engagement.ID == "" {
		engagement.ID = uuid.NewString()
	}
	if engagement.Status == "" {
		engagement.Status = models.EngagementStatusPending
	}
	f.engagements[engagement.ID] = engagement
	return nil
}

func (f *fakeEngagementRepo) FindByID(db *gorm.DB, id string) (*models.Engagement, error) {
	e, ok := f.engagements[id]
	if !ok {
		return nil, repositories.ErrEngagementNotFound
	}
	return e, nil
}

func (f *fakeEngagementRepo) FindByCustomer(db *gorm.DB, customerID string, limit, offset int) ([]models.Engagement, int64, error) {
	var out []models.Engagement
	for _, e := range f.engagements {
		if e.CustomerID == customerID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEngagementRepo) FindByWorker(db *gorm.DB, workerID string, limit, offset int) ([]models.Engagement, int64, error) {
	var out []models.Engagement
	for _, e := range f.engagements {
		if e.WorkerID != nil && *e.WorkerID == workerID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEngagementRepo) Update(db *gorm.DB, engagement *models.Engagement) error {
	f.engagements[engagement.ID] = engagement
	return nil
}

func (f *fakeEngagementRepo) UpdateStatus(db *gorm.DB, id string, status models.EngagementStatus) error {
	e, ok := f.engagements[id]
	if !ok {
		return repositories.ErrEngagementNotFound
	}
	e.Status = status
	return nil
}

func (f *fakeEngagementRepo) AssignWorker(db *gorm.DB, id, workerID string) error {
	e, ok := f.engagements[id]
	if !ok {
		return repositories.ErrEngagementNotFound
	}
	e.WorkerID = &workerID
	return nil
}

func (f *fakeEngagementRepo) SaveProposal(db *gorm.DB, id string, price float64, description string, sentAt time.Time) error {
	e, ok := f.engagements[id]
	if !ok {
		return repositories.ErrEngagementNotFound
	}
	e.ProposalPrice = &price
	e.ProposalDescription = &description
	e.ProposalSentAt = &sentAt
	e.Status = models.EngagementStatusProposalSent
	return nil
}

func (f *fakeEngagementRepo) UpdatePaymentStatus(db *gorm.DB, id string, status models.PaymentStatus) error {
	e, ok := f.engagements[id]
	if !ok {
		return repositories.ErrEngagementNotFound
	}
	e.PaymentStatus = status
	return nil
}

func (f *fakeEngagementRepo) AddUpdate(db *gorm.DB, update *models.ProjectUpdate) error {
	if update.ID == "" {
		update.ID = uuid.NewString()
	}
	f.updates[update.EngagementID] = append(f.updates[update.EngagementID], *update)
	return nil
}

func (f *fakeEngagementRepo) FindUpdates(db *gorm.DB, engagementID string) ([]models.ProjectUpdate, error) {
	return f.updates[engagementID], nil
}

// --- milestones ---

type fakeMilestoneRepo struct {
	milestones map[string]*models.Milestone
}

func newFakeMilestoneRepo() *fakeMilestoneRepo {
	return &fakeMilestoneRepo{milestones: make(map[string]*models.Milestone)}
}

func (f *fakeMilestoneRepo) Create(db *gorm.DB, milestone *models.Milestone) error {
	if milestone.ID == "" {
		milestone.ID = uuid.NewString()
	}
	f.milestones[milestone.ID] = milestone
	return nil
}

func (f *fakeMilestoneRepo) FindByID(db *gorm.DB, id string) (*models.Milestone, error) {
	m, ok := f.milestones[id]
	if !ok {
		return nil, repositories.ErrMilestoneNotFound
	}
	return m, nil
}

func (f *fakeMilestoneRepo) FindByEngagement(db *gorm.DB, engagementID string) ([]models.Milestone, error) {
	var out []models.Milestone
	for _, m := range f.milestones {
		if m.EngagementID == engagementID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMilestoneRepo) FindByEngagementAndPercentage(db *gorm.DB, engagementID string, percentage int) (*models.Milestone, error) {
	for _, m := range f.milestones {
		if m.EngagementID == engagementID && m.Percentage == percentage {
			return m, nil
		}
	}
	return nil, repositories.ErrMilestoneNotFound
}

func (f *fakeMilestoneRepo) ResetSlot(db *gorm.DB, milestoneID, description string, imageURL *string, submittedAt time.Time) error {
	m, ok := f.milestones[milestoneID]
	if !ok {
		return repositories.ErrMilestoneStateChanged
	}
	if m.Status != models.MilestoneStatusRejected && m.Status != models.MilestoneStatusRevisionRequested {
		return repositories.ErrMilestoneStateChanged
	}
	m.Status = models.MilestoneStatusPending
	m.Description = description
	m.ImageURL = imageURL
	m.SubmittedAt = submittedAt
	m.ApprovedAt = nil
	m.RejectedAt = nil
	m.RevisionRequestedAt = nil
	m.ReportedToAdminAt = nil
	m.RejectionReason = nil
	m.RevisionNotes = nil
	m.AdminReport = nil
	return nil
}

func (f *fakeMilestoneRepo) TransitionFromPending(db *gorm.DB, milestoneID string, updates map[string]interface{}) error {
	m, ok := f.milestones[milestoneID]
	if !ok || m.Status != models.MilestoneStatusPending {
		return repositories.ErrMilestoneStateChanged
	}
	if status, ok := updates["status"].(models.MilestoneStatus); ok {
		m.Status = status
	}
	if v, ok := updates["approved_at"].(time.Time); ok {
		m.ApprovedAt = &v
	}
	if v, ok := updates["rejected_at"].(time.Time); ok {
		m.RejectedAt = &v
	}
	if v, ok := updates["revision_requested_at"].(time.Time); ok {
		m.RevisionRequestedAt = &v
	}
	if v, ok := updates["reported_to_admin_at"].(time.Time); ok {
		m.ReportedToAdminAt = &v
	}
	if v, ok := updates["rejection_reason"].(string); ok {
		m.RejectionReason = &v
	}
	if v, ok := updates["revision_notes"].(string); ok {
		m.RevisionNotes = &v
	}
	if v, ok := updates["admin_report"].(string); ok {
		m.AdminReport = &v
	}
	return nil
}

// --- reviews ---

type fakeReviewRepo struct {
	reviews        map[string]*models.EngagementReview
	profileReviews []*models.ProfileReview
	recalculated   map[string]models.UserRole
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:      make(map[string]*models.EngagementReview),
		recalculated: make(map[string]models.UserRole),
	}
}

func (f *fakeReviewRepo) FindByEngagement(db *gorm.DB, engagementID string) (*models.EngagementReview, error) {
	r, ok := f.reviews[engagementID]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeReviewRepo) Create(db *gorm.DB, review *models.EngagementReview) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	f.reviews[review.EngagementID] = review
	return nil
}

func (f *fakeReviewRepo) Update(db *gorm.DB, review *models.EngagementReview) error {
	f.reviews[review.EngagementID] = review
	return nil
}

func (f *fakeReviewRepo) CreateProfileReview(db *gorm.DB, review *models.ProfileReview) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	f.profileReviews = append(f.profileReviews, review)
	return nil
}

func (f *fakeReviewRepo) FindProfileReviews(db *gorm.DB, subjectID string, limit, offset int) ([]models.ProfileReview, int64, error) {
	var out []models.ProfileReview
	for _, r := range f.profileReviews {
		if r.SubjectID == subjectID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) RecalculateRating(db *gorm.DB, subjectID string, role models.UserRole) error {
	f.recalculated[subjectID] = role
	return nil
}

// --- chat ---

type fakeChatRepo struct {
	rooms    map[string]*chat.Room // keyed by RoomID
	messages []*chat.Message

	// raceOnCreate makes the next CreateRoom behave as if another request won
	// the unique-index race: the room is stored and ErrRoomExists returned.
	raceOnCreate bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{rooms: make(map[string]*chat.Room)}
}

func (f *fakeChatRepo) CreateRoom(db *gorm.DB, room *chat.Room) error {
	if _, ok := f.rooms[room.RoomID]; ok {
		return repositories.ErrRoomExists
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if f.raceOnCreate {
		f.raceOnCreate = false
		stored := *room
		f.rooms[room.RoomID] = &stored
		return repositories.ErrRoomExists
	}
	f.rooms[room.RoomID] = room
	return nil
}

func (f *fakeChatRepo) FindRoomByAssociation(db *gorm.DB, projectID, projectType string) (*chat.Room, error) {
	for _, r := range f.rooms {
		if r.ProjectID == projectID && r.ProjectType == projectType {
			return r, nil
		}
	}
	return nil, repositories.ErrRoomNotFound
}

func (f *fakeChatRepo) FindRoomByRoomID(db *gorm.DB, roomID string) (*chat.Room, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, repositories.ErrRoomNotFound
	}
	return r, nil
}

func (f *fakeChatRepo) FindRoomsByUser(db *gorm.DB, userID string) ([]chat.Room, error) {
	var out []chat.Room
	for _, r := range f.rooms {
		if r.WorkerID == userID ||
			(r.CustomerID != nil && *r.CustomerID == userID) ||
			(r.CompanyID != nil && *r.CompanyID == userID) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) CreateMessage(db *gorm.DB, message *chat.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeChatRepo) FindMessagesByRoom(db *gorm.DB, roomID string, limit, offset int) ([]chat.Message, int64, error) {
	var out []chat.Message
	for _, m := range f.messages {
		if m.RoomID == roomID {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

// --- hiring ---

type fakeHiringRepo struct {
	offers map[string]*models.HiringOffer
}

func newFakeHiringRepo() *fakeHiringRepo {
	return &fakeHiringRepo{offers: make(map[string]*models.HiringOffer)}
}

func (f *fakeHiringRepo) Create(db *gorm.DB, offer *models.HiringOffer) error {
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.Status == "" {
		offer.Status = models.HiringStatusPending
	}
	f.offers[offer.ID] = offer
	return nil
}

func (f *fakeHiringRepo) FindByID(db *gorm.DB, id string) (*models.HiringOffer, error) {
	o, ok := f.offers[id]
	if !ok {
		return nil, repositories.ErrHiringOfferNotFound
	}
	return o, nil
}

func (f *fakeHiringRepo) FindByWorker(db *gorm.DB, workerID string) ([]models.HiringOffer, error) {
	var out []models.HiringOffer
	for _, o := range f.offers {
		if o.WorkerID == workerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeHiringRepo) FindByCompany(db *gorm.DB, companyID string) ([]models.HiringOffer, error) {
	var out []models.HiringOffer
	for _, o := range f.offers {
		if o.CompanyID == companyID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeHiringRepo) DecideIfPending(db *gorm.DB, id string, status models.HiringStatus) error {
	o, ok := f.offers[id]
	if !ok || o.Status != models.HiringStatusPending {
		return repositories.ErrHiringOfferDecided
	}
	o.Status = status
	return nil
}
