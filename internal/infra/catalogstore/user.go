package catalogstore

import (
	"context"
	"errors"

	"pawbook/internal/infra"
	"pawbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, ''),
		       membership_plan_id,
		       membership_plan_id IS NOT NULL AND (membership_expires_at IS NULL OR membership_expires_at > now())
		FROM users
		WHERE id = $1`, id)

	var user shared.UserSnapshot
	err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.PlanID, &user.IsMember)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &user, nil
}
