package application

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	repo "github.com/Codebuster0001/portfolio3/internal/domain/repository"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

// SkillService keeps skill orders dense (1..N) and label, icon and link unique.
// Every order-mutating call runs inside SkillStore.WithinTx.
type SkillService struct {
	Store  repo.SkillStore
	Logger *logrus.Logger
}

func NewSkillService(store repo.SkillStore, logger *logrus.Logger) *SkillService {
	return &SkillService{Store: store, Logger: logger}
}

type AddSkillInput struct {
	Label    string
	IconName string
	Link     string
	Color    string
}

// Add appends a skill at order count+1.
func (s *SkillService) Add(ctx context.Context, in AddSkillInput) (*entity.Skill, error) {
	sk := &entity.Skill{
		Label:    strings.TrimSpace(in.Label),
		IconName: strings.TrimSpace(in.IconName),
		Link:     strings.TrimSpace(in.Link),
		Color:    strings.TrimSpace(in.Color),
	}
	if sk.Label == "" || sk.IconName == "" || sk.Link == "" {
		return nil, apperror.BadRequest("Please provide label, iconName, and link")
	}
	if sk.Color == "" {
		sk.Color = entity.DefaultSkillColor
	}

	err := s.Store.WithinTx(ctx, func(ctx context.Context, r repo.SkillRepository) error {
		existing, err := r.FindConflict(ctx, sk.Label, sk.IconName, sk.Link)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.Conflictf("Skill with same label, icon, or link already exists")
		}
		n, err := r.Count(ctx)
		if err != nil {
			return err
		}
		sk.Order = n + 1
		return r.Insert(ctx, sk)
	})
	if err != nil {
		return nil, err
	}
	skillsAdded.Add(1)
	return sk, nil
}

func (s *SkillService) List(ctx context.Context) ([]entity.Skill, error) {
	return s.Store.List(ctx)
}

// DeleteByOrder removes the skill at order and closes the gap it leaves.
func (s *SkillService) DeleteByOrder(ctx context.Context, order int) error {
	if order < 1 {
		return apperror.BadRequest("Invalid order value")
	}
	if order > math.MaxInt32 {
		return apperror.NotFoundf("Skill not found")
	}
	var shifted int64
	err := s.Store.WithinTx(ctx, func(ctx context.Context, r repo.SkillRepository) error {
		sk, err := r.GetByOrder(ctx, order)
		if err != nil {
			return err
		}
		if err := r.DeleteByID(ctx, sk.ID); err != nil {
			return err
		}
		shifted, err = r.ShiftDownAfter(ctx, order)
		return err
	})
	if err != nil {
		return err
	}
	skillsDeleted.Add(1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"order": order, "shifted": shifted}).Debug("skill deleted")
	}
	return nil
}
