package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/internal/domain/repository"
)

type TimelineRepository struct {
	db DB
}

func NewTimelineRepository(db DB) *TimelineRepository {
	return &TimelineRepository{db: db}
}

func scanTimeline(row pgx.Row) (*entity.Timeline, error) {
	t := &entity.Timeline{}
	if err := row.Scan(&t.ID, &t.Year, &t.Title, &t.Description, &t.CreatedAt); err != nil {
		return nil, translate(err, "Timeline entry")
	}
	return t, nil
}

func (r *TimelineRepository) Create(ctx context.Context, t *entity.Timeline) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO timelines (year, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, t.Year, t.Title, t.Description)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return translate(err, "Timeline entry")
	}
	return nil
}

func (r *TimelineRepository) GetByID(ctx context.Context, id string) (*entity.Timeline, error) {
	return scanTimeline(r.db.QueryRow(ctx,
		`SELECT id, year, title, description, created_at FROM timelines WHERE id = $1`, id))
}

func (r *TimelineRepository) List(ctx context.Context) ([]entity.Timeline, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, year, title, description, created_at FROM timelines ORDER BY year ASC, created_at ASC`)
	if err != nil {
		return nil, translate(err, "Timeline entry")
	}
	defer rows.Close()

	out := make([]entity.Timeline, 0)
	for rows.Next() {
		t, err := scanTimeline(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "Timeline entry")
	}
	return out, nil
}

func (r *TimelineRepository) Update(ctx context.Context, t *entity.Timeline) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE timelines SET year = $1, title = $2, description = $3 WHERE id = $4`,
		t.Year, t.Title, t.Description, t.ID)
	if err != nil {
		return translate(err, "Timeline entry")
	}
	if tag.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "Timeline entry")
	}
	return nil
}

func (r *TimelineRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM timelines WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Timeline entry")
	}
	if tag.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "Timeline entry")
	}
	return nil
}

var _ repository.TimelineRepository = (*TimelineRepository)(nil)
