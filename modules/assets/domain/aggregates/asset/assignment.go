package asset

import (
	"strings"

	"github.com/google/uuid"
)

// Assignment is the tagged relation between an asset and the user it is
// assigned to. The zero value means unassigned. Legacy inputs use the empty
// string for "nobody"; that form is normalized here, once, at the boundary.
type Assignment struct {
	userID uuid.UUID
}

func Unassigned() Assignment {
	return Assignment{}
}

func AssignedTo(userID uuid.UUID) Assignment {
	return Assignment{userID: userID}
}

// ParseAssignment accepts a user id, the empty string (unassigned) or
// whitespace around either.
func ParseAssignment(raw string) (Assignment, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unassigned(), nil
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return Assignment{}, err
	}
	if userID == uuid.Nil {
		return Unassigned(), nil
	}
	return AssignedTo(userID), nil
}

func (a Assignment) IsAssigned() bool {
	return a.userID != uuid.Nil
}

// UserID returns the assigned user; ok is false when unassigned.
func (a Assignment) UserID() (uuid.UUID, bool) {
	return a.userID, a.userID != uuid.Nil
}

func (a Assignment) Equal(other Assignment) bool {
	return a.userID == other.userID
}

func (a Assignment) String() string {
	if a.userID == uuid.Nil {
		return ""
	}
	return a.userID.String()
}
