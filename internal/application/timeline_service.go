package application

import (
	"context"
	"strings"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	repo "github.com/Codebuster0001/portfolio3/internal/domain/repository"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

type TimelineService struct {
	Timelines repo.TimelineRepository
}

func NewTimelineService(timelines repo.TimelineRepository) *TimelineService {
	return &TimelineService{Timelines: timelines}
}

type TimelineInput struct {
	Year        string
	Title       string
	Description string
}

func (in TimelineInput) trimmed() TimelineInput {
	return TimelineInput{
		Year:        strings.TrimSpace(in.Year),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
	}
}

func (s *TimelineService) Create(ctx context.Context, in TimelineInput) (*entity.Timeline, error) {
	in = in.trimmed()
	if in.Year == "" || in.Title == "" || in.Description == "" {
		return nil, apperror.BadRequest("All fields (year, title, description) are required")
	}
	t := &entity.Timeline{Year: in.Year, Title: in.Title, Description: in.Description}
	if err := s.Timelines.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TimelineService) List(ctx context.Context) ([]entity.Timeline, error) {
	return s.Timelines.List(ctx)
}

// Update overrides only the non-empty fields.
func (s *TimelineService) Update(ctx context.Context, id string, in TimelineInput) (*entity.Timeline, error) {
	t, err := s.Timelines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in = in.trimmed()
	if in.Year != "" {
		t.Year = in.Year
	}
	if in.Title != "" {
		t.Title = in.Title
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if err := s.Timelines.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TimelineService) Delete(ctx context.Context, id string) error {
	return s.Timelines.Delete(ctx, id)
}
