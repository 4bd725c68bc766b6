package member

import (
	"strings"

	"github.com/google/uuid"
)

// Member is the read-only projection of a company membership joined with
// the user's profile. The core never writes these; it validates that an
// assignee belongs to the tenant and derives container display names.
type Member struct {
	tenantID  uuid.UUID
	userID    uuid.UUID
	firstName string
	lastName  string
	fullName  string
	email     string
}

func Hydrate(tenantID, userID uuid.UUID, firstName, lastName, fullName, email string) Member {
	return Member{
		tenantID:  tenantID,
		userID:    userID,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		fullName:  strings.TrimSpace(fullName),
		email:     strings.TrimSpace(email),
	}
}

func (m Member) TenantID() uuid.UUID { return m.tenantID }
func (m Member) UserID() uuid.UUID   { return m.userID }
func (m Member) FirstName() string   { return m.firstName }
func (m Member) LastName() string    { return m.lastName }
func (m Member) FullName() string    { return m.fullName }
func (m Member) Email() string       { return m.email }

// DisplayName derives a human-readable name: full name, else whatever of
// first/last is present, else email. Empty means the caller falls back to
// a literal.
func (m Member) DisplayName() string {
	if m.fullName != "" {
		return m.fullName
	}
	joined := strings.TrimSpace(m.firstName + " " + m.lastName)
	if joined != "" {
		return joined
	}
	return m.email
}
