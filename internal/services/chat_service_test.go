package services

import (
	"testing"

	"buildlink_backend/internal/models"
	"buildlink_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	service        ChatService
	chatRepo       *fakeChatRepo
	engagementRepo *fakeEngagementRepo
	hiringRepo     *fakeHiringRepo
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	chatRepo := newFakeChatRepo()
	engagementRepo := newFakeEngagementRepo()
	hiringRepo := newFakeHiringRepo()
	engagementRepo.addAccepted("eng-1", "customer-1", "worker-1", models.EngagementKindArchitect)

	return &chatFixture{
		service:        NewChatService(chatRepo, engagementRepo, hiringRepo),
		chatRepo:       chatRepo,
		engagementRepo: engagementRepo,
		hiringRepo:     hiringRepo,
	}
}

func TestResolveRoom(t *testing.T) {
	t.Run("creates the room on first resolution", func(t *testing.T) {
		f := newChatFixture(t)

		room, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
		require.NoError(t, err)
		require.NotNil(t, room)
		assert.Equal(t, "architect-eng-1", room.RoomID)
		assert.Equal(t, "eng-1", room.ProjectID)
		assert.Equal(t, "architect", room.ProjectType)
		require.NotNil(t, room.CustomerID)
		assert.Equal(t, "customer-1", *room.CustomerID)
		assert.Equal(t, "worker-1", room.WorkerID)
	})

	t.Run("repeated resolution returns the same room", func(t *testing.T) {
		f := newChatFixture(t)

		first, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
		require.NoError(t, err)

		second, err := f.service.ResolveRoom(nil, "eng-1", "architect", "worker-1")
		require.NoError(t, err)
		assert.Equal(t, first.RoomID, second.RoomID)
		assert.Len(t, f.chatRepo.rooms, 1)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		f := newChatFixture(t)

		_, err := f.service.ResolveRoom(nil, "eng-1", "plumbing", "customer-1")
		assertAppError(t, err, 400)
	})

	t.Run("kind must match the engagement", func(t *testing.T) {
		f := newChatFixture(t)

		_, err := f.service.ResolveRoom(nil, "eng-1", "interior", "customer-1")
		assertAppError(t, err, 400)
	})

	t.Run("missing association yields no room and no error", func(t *testing.T) {
		f := newChatFixture(t)

		room, err := f.service.ResolveRoom(nil, "missing", "architect", "customer-1")
		require.NoError(t, err)
		assert.Nil(t, room)
	})

	t.Run("engagement without a worker yields no room", func(t *testing.T) {
		f := newChatFixture(t)
		f.engagementRepo.engagements["eng-1"].WorkerID = nil

		room, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
		require.NoError(t, err)
		assert.Nil(t, room)
	})

	t.Run("pending engagement yields no room", func(t *testing.T) {
		f := newChatFixture(t)
		f.engagementRepo.engagements["eng-1"].Status = models.EngagementStatusPending

		room, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
		require.NoError(t, err)
		assert.Nil(t, room)
	})

	t.Run("completed engagement keeps its room reachable", func(t *testing.T) {
		f := newChatFixture(t)
		f.engagementRepo.engagements["eng-1"].Status = models.EngagementStatusCompleted

		room, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
		require.NoError(t, err)
		assert.NotNil(t, room)
	})

	t.Run("outsiders are rejected on a chat-worthy engagement", func(t *testing.T) {
		f := newChatFixture(t)

		_, err := f.service.ResolveRoom(nil, "eng-1", "architect", "stranger")
		assertAppError(t, err, 403)
	})

	t.Run("losing the create race falls back to the winner's room", func(t *testing.T) {
		f := newChatFixture(t)
		f.chatRepo.raceOnCreate = true

		room, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
		require.NoError(t, err, "the race must never surface to the caller")
		require.NotNil(t, room)
		assert.Equal(t, "architect-eng-1", room.RoomID)
		assert.Len(t, f.chatRepo.rooms, 1)
	})

	t.Run("accepted hiring offer resolves under the hiring kind", func(t *testing.T) {
		f := newChatFixture(t)
		offer := &models.HiringOffer{
			CompanyID: "company-1",
			WorkerID:  "worker-1",
			Status:    models.HiringStatusAccepted,
		}
		offer.ID = "offer-1"
		f.hiringRepo.offers["offer-1"] = offer

		room, err := f.service.ResolveRoom(nil, "offer-1", "hiring", "company-1")
		require.NoError(t, err)
		require.NotNil(t, room)
		assert.Equal(t, "hiring-offer-1", room.RoomID)
		require.NotNil(t, room.CompanyID)
		assert.Equal(t, "company-1", *room.CompanyID)
		assert.Nil(t, room.CustomerID)
	})

	t.Run("pending hiring offer yields no room", func(t *testing.T) {
		f := newChatFixture(t)
		offer := &models.HiringOffer{
			CompanyID: "company-1",
			WorkerID:  "worker-1",
			Status:    models.HiringStatusPending,
		}
		offer.ID = "offer-1"
		f.hiringRepo.offers["offer-1"] = offer

		room, err := f.service.ResolveRoom(nil, "offer-1", "hiring", "company-1")
		require.NoError(t, err)
		assert.Nil(t, room)
	})
}

func TestPostMessage(t *testing.T) {
	resolve := func(t *testing.T, f *chatFixture) *dto.RoomResponse {
		t.Helper()
		room, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
		require.NoError(t, err)
		return room
	}

	t.Run("appends a message for a participant", func(t *testing.T) {
		f := newChatFixture(t)
		room := resolve(t, f)

		msg, err := f.service.PostMessage(nil, room.RoomID, "worker-1", models.SenderKindWorker, "blueprints attached")
		require.NoError(t, err)
		assert.Equal(t, room.RoomID, msg.RoomID)
		assert.Equal(t, "worker-1", msg.SenderID)
		assert.Equal(t, models.SenderKindWorker, msg.SenderKind)
		assert.Equal(t, "blueprints attached", msg.Content)
		assert.NotEmpty(t, msg.ID)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		f := newChatFixture(t)
		room := resolve(t, f)

		for _, content := range []string{"", "   ", "\n\t"} {
			_, err := f.service.PostMessage(nil, room.RoomID, "worker-1", models.SenderKindWorker, content)
			assertAppError(t, err, 400)
		}
	})

	t.Run("unknown sender kind is rejected", func(t *testing.T) {
		f := newChatFixture(t)
		room := resolve(t, f)

		_, err := f.service.PostMessage(nil, room.RoomID, "worker-1", models.SenderKind("admin"), "hi")
		assertAppError(t, err, 400)
	})

	t.Run("unknown room is a 404", func(t *testing.T) {
		f := newChatFixture(t)

		_, err := f.service.PostMessage(nil, "architect-missing", "worker-1", models.SenderKindWorker, "hi")
		assertAppError(t, err, 404)
	})

	t.Run("non-participants may not post", func(t *testing.T) {
		f := newChatFixture(t)
		room := resolve(t, f)

		_, err := f.service.PostMessage(nil, room.RoomID, "stranger", models.SenderKindCustomer, "hi")
		assertAppError(t, err, 403)
	})
}

func TestListMessages(t *testing.T) {
	f := newChatFixture(t)
	room, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
	require.NoError(t, err)

	for _, content := range []string{"first", "second"} {
		_, err := f.service.PostMessage(nil, room.RoomID, "customer-1", models.SenderKindCustomer, content)
		require.NoError(t, err)
	}

	list, err := f.service.ListMessages(nil, room.RoomID, "worker-1", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Messages, 2)

	_, err = f.service.ListMessages(nil, room.RoomID, "stranger", 50, 0)
	assertAppError(t, err, 403)
}

func TestListRoomsAndParticipants(t *testing.T) {
	f := newChatFixture(t)
	f.engagementRepo.addAccepted("eng-2", "customer-2", "worker-1", models.EngagementKindInterior)

	_, err := f.service.ResolveRoom(nil, "eng-1", "architect", "customer-1")
	require.NoError(t, err)
	_, err = f.service.ResolveRoom(nil, "eng-2", "interior", "worker-1")
	require.NoError(t, err)

	workerRooms, err := f.service.ListRooms(nil, "worker-1")
	require.NoError(t, err)
	assert.Len(t, workerRooms, 2)

	customerRooms, err := f.service.ListRooms(nil, "customer-1")
	require.NoError(t, err)
	assert.Len(t, customerRooms, 1)

	participants, err := f.service.RoomParticipants(nil, "architect-eng-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"customer-1", "worker-1"}, participants)
}
