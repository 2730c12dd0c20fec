package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

const completeResetSQL = "WHERE id = $3 AND reset_password_token = $4 AND reset_password_expire > $2"

func TestUserCompleteResetConsumesToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewUserRepository(mock)

	now := time.Date(2026, time.May, 4, 10, 0, 0, 0, time.UTC)
	tok, exp := "hash", now.Add(time.Minute)
	u := &entity.User{ID: "u1", PasswordHash: "$2a$new", TokenVersion: 2, ResetPasswordToken: &tok, ResetPasswordExpire: &exp}

	mock.ExpectQuery(regexp.QuoteMeta(completeResetSQL)).
		WithArgs("$2a$new", now, "u1", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"token_version", "updated_at"}).AddRow(3, now))

	require.NoError(t, repo.CompleteReset(context.Background(), u, "hash", now))
	assert.Equal(t, 3, u.TokenVersion)
	assert.False(t, u.HasPendingReset())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCompleteResetAlreadyConsumed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewUserRepository(mock)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(completeResetSQL)).
		WithArgs("$2a$new", now, "u1", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"token_version", "updated_at"}))

	err = repo.CompleteReset(context.Background(), &entity.User{ID: "u1", PasswordHash: "$2a$new"}, "hash", now)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.NotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
