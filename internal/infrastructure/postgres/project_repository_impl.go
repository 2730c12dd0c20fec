package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/internal/domain/repository"
)

const projectColumns = `id, name, long_description, challenges, learnings, role, technologies,
	type, github_url, demo_url, images, created_at`

type ProjectRepository struct {
	db DB
}

func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	var typ string
	if err := row.Scan(&p.ID, &p.Name, &p.LongDescription, &p.Challenges, &p.Learnings,
		&p.Role, &p.Technologies, &typ, &p.GithubURL, &p.DemoURL, &p.Images, &p.CreatedAt); err != nil {
		return nil, translate(err, "Project")
	}
	p.Type = entity.ProjectType(typ)
	normalizeProject(p)
	return p, nil
}

// normalizeProject keeps arrays non-nil so they encode as [] rather than null.
func normalizeProject(p *entity.Project) {
	if p.Challenges == nil {
		p.Challenges = []string{}
	}
	if p.Learnings == nil {
		p.Learnings = []string{}
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if p.Images == nil {
		p.Images = []entity.Asset{}
	}
}

func collectProjects(rows pgx.Rows) ([]entity.Project, error) {
	defer rows.Close()
	out := make([]entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "Project")
	}
	return out, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	normalizeProject(p)
	row := r.db.QueryRow(ctx, `
		INSERT INTO projects (name, long_description, challenges, learnings, role, technologies,
			type, github_url, demo_url, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, p.Name, p.LongDescription, p.Challenges, p.Learnings, p.Role, p.Technologies,
		string(p.Type), p.GithubURL, p.DemoURL, p.Images)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return translate(err, "Project")
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (r *ProjectRepository) List(ctx context.Context) ([]entity.Project, error) {
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, translate(err, "Project")
	}
	return collectProjects(rows)
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	normalizeProject(p)
	tag, err := r.db.Exec(ctx, `
		UPDATE projects
		SET name = $1, long_description = $2, challenges = $3, learnings = $4, role = $5,
			technologies = $6, type = $7, github_url = $8, demo_url = $9, images = $10
		WHERE id = $11
	`, p.Name, p.LongDescription, p.Challenges, p.Learnings, p.Role, p.Technologies,
		string(p.Type), p.GithubURL, p.DemoURL, p.Images, p.ID)
	if err != nil {
		return translate(err, "Project")
	}
	if tag.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "Project")
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translate(err, "Project")
	}
	if tag.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "Project")
	}
	return nil
}

func (r *ProjectRepository) Search(ctx context.Context, q string, limit int) ([]entity.Project, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(q)) + "%"
	rows, err := r.db.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE name ILIKE $1 OR long_description ILIKE $1 OR role ILIKE $1
			OR array_to_string(technologies, ' ') ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, translate(err, "Project")
	}
	return collectProjects(rows)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
