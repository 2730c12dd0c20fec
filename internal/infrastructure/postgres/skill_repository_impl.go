package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/internal/domain/repository"
)

const skillColumns = `id, label, icon_name, link, color, "order"`

// Conflicts with every other writer of "order" but not with plain readers.
const lockSkills = `LOCK TABLE skills IN SHARE ROW EXCLUSIVE MODE`

type SkillRepository struct {
	db DB
}

func NewSkillRepository(db DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func scanSkill(row pgx.Row) (*entity.Skill, error) {
	s := &entity.Skill{}
	if err := row.Scan(&s.ID, &s.Label, &s.IconName, &s.Link, &s.Color, &s.Order); err != nil {
		return nil, translate(err, "Skill")
	}
	return s, nil
}

// WithinTx takes the skills table lock and hands fn a repository bound to the transaction.
func (r *SkillRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo repository.SkillRepository) error) error {
	return WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockSkills); err != nil {
			return translate(err, "Skill")
		}
		return fn(ctx, &SkillRepository{db: tx})
	})
}

func (r *SkillRepository) List(ctx context.Context) ([]entity.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY "order" ASC`)
	if err != nil {
		return nil, translate(err, "Skill")
	}
	defer rows.Close()

	out := make([]entity.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "Skill")
	}
	return out, nil
}

func (r *SkillRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM skills`).Scan(&n); err != nil {
		return 0, translate(err, "Skill")
	}
	return n, nil
}

func (r *SkillRepository) FindConflict(ctx context.Context, label, iconName, link string) (*entity.Skill, error) {
	s, err := scanSkill(r.db.QueryRow(ctx, `
		SELECT `+skillColumns+`
		FROM skills
		WHERE label = $1 OR icon_name = $2 OR link = $3
		LIMIT 1
	`, label, iconName, link))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *SkillRepository) Insert(ctx context.Context, s *entity.Skill) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO skills (label, icon_name, link, color, "order")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, s.Label, s.IconName, s.Link, s.Color, s.Order)
	if err := row.Scan(&s.ID); err != nil {
		return translate(err, "Skill")
	}
	return nil
}

func (r *SkillRepository) GetByOrder(ctx context.Context, order int) (*entity.Skill, error) {
	return scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE "order" = $1`, order))
}

func (r *SkillRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Skill")
	}
	if tag.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "Skill")
	}
	return nil
}

func (r *SkillRepository) ShiftDownAfter(ctx context.Context, order int) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE skills SET "order" = "order" - 1 WHERE "order" > $1`, order)
	if err != nil {
		return 0, translate(err, "Skill")
	}
	return tag.RowsAffected(), nil
}

var _ repository.SkillStore = (*SkillRepository)(nil)
