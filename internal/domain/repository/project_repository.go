package repository

import (
	"context"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// List returns projects newest first.
	List(ctx context.Context) ([]entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id string) error
	// Search is a case-insensitive substring match on name, description, role and technologies.
	Search(ctx context.Context, q string, limit int) ([]entity.Project, error)
}
