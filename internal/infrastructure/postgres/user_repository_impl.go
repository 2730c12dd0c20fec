package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/internal/domain/repository"
)

const userColumns = `id, full_name, email, phone, password_hash, resume_public_id, resume_url,
	description, technologies, portfolio_url, github_url, instagram_url, linkedin_url,
	reset_password_token, reset_password_expire, token_version, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Resume.PublicID, &u.Resume.URL, &u.Description, &u.Technologies,
		&u.PortfolioURL, &u.GithubURL, &u.InstagramURL, &u.LinkedInURL,
		&u.ResetPasswordToken, &u.ResetPasswordExpire, &u.TokenVersion,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err, "User")
	}
	if u.Technologies == nil {
		u.Technologies = []string{}
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.Technologies == nil {
		u.Technologies = []string{}
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (full_name, email, phone, password_hash, resume_public_id, resume_url,
			description, technologies, portfolio_url, github_url, instagram_url, linkedin_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, token_version, created_at, updated_at
	`, u.FullName, u.Email, u.Phone, u.PasswordHash, u.Resume.PublicID, u.Resume.URL,
		u.Description, u.Technologies, u.PortfolioURL, u.GithubURL, u.InstagramURL, u.LinkedInURL)

	if err := row.Scan(&u.ID, &u.TokenVersion, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translate(err, "User")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, translate(err, "User")
	}
	return exists, nil
}

func (r *UserRepository) GetFirst(ctx context.Context) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC LIMIT 1`))
}

func (r *UserRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > $2
	`, tokenHash, now))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	if u.Technologies == nil {
		u.Technologies = []string{}
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET full_name = $1, email = $2, phone = $3, password_hash = $4,
			resume_public_id = $5, resume_url = $6, description = $7, technologies = $8,
			portfolio_url = $9, github_url = $10, instagram_url = $11, linkedin_url = $12,
			reset_password_token = $13, reset_password_expire = $14, token_version = $15,
			updated_at = $16
		WHERE id = $17
	`, u.FullName, u.Email, u.Phone, u.PasswordHash, u.Resume.PublicID, u.Resume.URL,
		u.Description, u.Technologies, u.PortfolioURL, u.GithubURL, u.InstagramURL, u.LinkedInURL,
		u.ResetPasswordToken, u.ResetPasswordExpire, u.TokenVersion, u.UpdatedAt, u.ID)
	if err != nil {
		return translate(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "User")
	}
	return nil
}

func (r *UserRepository) CompleteReset(ctx context.Context, u *entity.User, tokenHash string, now time.Time) error {
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $1, reset_password_token = NULL, reset_password_expire = NULL,
			token_version = token_version + 1, updated_at = $2
		WHERE id = $3 AND reset_password_token = $4 AND reset_password_expire > $2
		RETURNING token_version, updated_at
	`, u.PasswordHash, now, u.ID, tokenHash).Scan(&u.TokenVersion, &u.UpdatedAt)
	if err != nil {
		return translate(err, "User")
	}
	u.ClearReset()
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
