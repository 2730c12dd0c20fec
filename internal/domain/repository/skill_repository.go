package repository

import (
	"context"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
)

// SkillRepository holds the storage primitives for skills. Order bookkeeping is
// done by the caller inside SkillStore.WithinTx.
type SkillRepository interface {
	List(ctx context.Context) ([]entity.Skill, error)
	Count(ctx context.Context) (int, error)
	// FindConflict returns a skill sharing the label, icon name or link, or nil.
	FindConflict(ctx context.Context, label, iconName, link string) (*entity.Skill, error)
	Insert(ctx context.Context, s *entity.Skill) error
	GetByOrder(ctx context.Context, order int) (*entity.Skill, error)
	DeleteByID(ctx context.Context, id string) error
	// ShiftDownAfter decrements the order of every skill ranked after order.
	ShiftDownAfter(ctx context.Context, order int) (int64, error)
}

// SkillStore runs order-mutating work serialised against every other such call.
// Either all writes made through the scoped repository commit, or none do.
type SkillStore interface {
	SkillRepository
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo SkillRepository) error) error
}
