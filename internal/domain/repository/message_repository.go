package repository

import (
	"context"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	// List returns messages newest first.
	List(ctx context.Context) ([]entity.Message, error)
	Delete(ctx context.Context, id string) error
}
