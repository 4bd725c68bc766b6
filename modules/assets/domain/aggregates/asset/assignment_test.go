package asset

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseAssignment(t *testing.T) {
	userID := uuid.New()

	t.Run("user id", func(t *testing.T) {
		a, err := ParseAssignment(userID.String())
		require.NoError(t, err)
		got, ok := a.UserID()
		require.True(t, ok)
		require.Equal(t, userID, got)
	})

	t.Run("empty means unassigned", func(t *testing.T) {
		a, err := ParseAssignment("")
		require.NoError(t, err)
		require.False(t, a.IsAssigned())
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		a, err := ParseAssignment("  " + userID.String() + " ")
		require.NoError(t, err)
		require.True(t, a.IsAssigned())

		a, err = ParseAssignment("   ")
		require.NoError(t, err)
		require.False(t, a.IsAssigned())
	})

	t.Run("nil uuid normalizes to unassigned", func(t *testing.T) {
		a, err := ParseAssignment(uuid.Nil.String())
		require.NoError(t, err)
		require.False(t, a.IsAssigned())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseAssignment("not-a-uuid")
		require.Error(t, err)
	})
}

func TestAssignmentString(t *testing.T) {
	require.Equal(t, "", Unassigned().String())

	userID := uuid.New()
	require.Equal(t, userID.String(), AssignedTo(userID).String())
}

func TestAssignmentEqual(t *testing.T) {
	userID := uuid.New()
	require.True(t, AssignedTo(userID).Equal(AssignedTo(userID)))
	require.True(t, Unassigned().Equal(Unassigned()))
	require.False(t, AssignedTo(userID).Equal(Unassigned()))
}

func TestWithAssignmentMovesContainerTogether(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	fromContainer := uuid.New()
	toContainer := uuid.New()

	a := New(tenantID, "Laptop", "", "", Unassigned(), fromContainer)
	moved := a.WithAssignment(AssignedTo(userID), toContainer)

	require.Equal(t, toContainer, moved.ContainerID())
	got, ok := moved.Assignment().UserID()
	require.True(t, ok)
	require.Equal(t, userID, got)

	// Value semantics: the original is untouched.
	require.Equal(t, fromContainer, a.ContainerID())
	require.False(t, a.Assignment().IsAssigned())
}
