package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomIDFor(t *testing.T) {
	assert.Equal(t, "architect-e1", RoomIDFor("e1", "architect"))
	assert.Equal(t, "interior-e2", RoomIDFor("e2", "interior"))
	assert.Equal(t, "hiring-o1", RoomIDFor("o1", "hiring"))

	// Same association always maps to the same room id.
	assert.Equal(t, RoomIDFor("e1", "architect"), RoomIDFor("e1", "architect"))
	assert.NotEqual(t, RoomIDFor("e1", "architect"), RoomIDFor("e1", "interior"))
}
