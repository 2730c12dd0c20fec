package repository

import (
	"context"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
)

type TimelineRepository interface {
	Create(ctx context.Context, t *entity.Timeline) error
	GetByID(ctx context.Context, id string) (*entity.Timeline, error)
	// List returns entries ordered by year ascending.
	List(ctx context.Context) ([]entity.Timeline, error)
	Update(ctx context.Context, t *entity.Timeline) error
	Delete(ctx context.Context, id string) error
}
