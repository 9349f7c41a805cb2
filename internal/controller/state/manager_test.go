package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_StateTransitions(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(100))

	sm.SetState(100, StateEnteringNetid)
	assert.Equal(t, StateEnteringNetid, sm.GetState(100))

	sm.SetState(100, StateEnteringGradYear)
	assert.Equal(t, StateEnteringGradYear, sm.GetState(100))

	// Чаты независимы
	assert.Equal(t, StateNone, sm.GetState(200))

	sm.ClearState(100)
	assert.Equal(t, StateNone, sm.GetState(100))
}

func TestManager_DraftSurvivesStateChanges(t *testing.T) {
	sm := NewManager()

	sm.SetState(100, StateEnteringGradYear)
	draft := sm.Draft(100)
	draft.GraduationYear = "2027"
	draft.Availability.Toggle(0, 0)

	sm.SetState(100, StateEnteringInterests)

	same := sm.Draft(100)
	require.Equal(t, "2027", same.GraduationYear)
	assert.True(t, same.Availability[0][0])
}

func TestManager_ClearStateDropsDraft(t *testing.T) {
	sm := NewManager()

	sm.SetState(100, StateEnteringGradYear)
	sm.Draft(100).GraduationYear = "2027"

	sm.ClearState(100)

	fresh := sm.Draft(100)
	assert.Empty(t, fresh.GraduationYear)
}

func TestManager_SetStateNoneClears(t *testing.T) {
	sm := NewManager()

	sm.SetState(100, StateChatting)
	sm.SetState(100, StateNone)
	assert.Equal(t, StateNone, sm.GetState(100))
}
