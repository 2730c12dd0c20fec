package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/internal/domain/repository"
)

type MessageRepository struct {
	db DB
}

func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.Name, m.Email, m.Message)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return translate(err, "Message")
	}
	return nil
}

func (r *MessageRepository) List(ctx context.Context) ([]entity.Message, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, message, created_at FROM messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, translate(err, "Message")
	}
	defer rows.Close()

	out := make([]entity.Message, 0)
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, translate(err, "Message")
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "Message")
	}
	return out, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Message")
	}
	if tag.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "Message")
	}
	return nil
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
