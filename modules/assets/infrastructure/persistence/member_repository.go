package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stocktakehq/stocktake/modules/assets/domain/entities/member"
	"github.com/stocktakehq/stocktake/modules/assets/infrastructure/persistence/models"
	"github.com/stocktakehq/stocktake/pkg/composables"
)

// MemberRepository reads company memberships joined with user profiles.
// Both tables are owned by the accounts module; this module never writes them.
type MemberRepository struct{}

func NewMemberRepository() member.Repository {
	return &MemberRepository{}
}

func (r *MemberRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (member.Member, error) {
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return member.Member{}, err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Member{}, err
	}

	query := `
		SELECT cm.tenant_id, cm.user_id, up.first_name, up.last_name, up.full_name, up.email
		FROM company_memberships cm
		LEFT JOIN user_profiles up ON up.user_id = cm.user_id
		WHERE cm.tenant_id = $1 AND cm.user_id = $2`

	var row models.Member
	if err := tx.QueryRow(ctx, query, pgTenantID, pgUUID(userID)).Scan(
		&row.TenantID,
		&row.UserID,
		&row.FirstName,
		&row.LastName,
		&row.FullName,
		&row.Email,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrNotFound
		}
		return member.Member{}, gerrors.Wrap(err, "failed to load membership")
	}

	return toDomainMember(&row), nil
}
