package application

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	repo "github.com/Codebuster0001/portfolio3/internal/domain/repository"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

// ProjectImagesFolder is where project screenshots live on the asset host.
const ProjectImagesFolder = "portfolio/projects"

const searchLimit = 20

type ProjectService struct {
	Projects repo.ProjectRepository
	Assets   AssetStore
	Index    ProjectIndex // optional
	Logger   *logrus.Logger
}

func NewProjectService(projects repo.ProjectRepository, assets AssetStore, index ProjectIndex, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Projects: projects, Assets: assets, Index: index, Logger: logger}
}

// ProjectInput carries form fields as received. The list fields hold JSON array
// text. Nil means the field was not sent.
type ProjectInput struct {
	Name            *string
	LongDescription *string
	Role            *string
	GithubURL       *string
	DemoURL         *string
	Type            *string
	Challenges      *string
	Learnings       *string
	Technologies    *string
	Images          []*Upload
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*entity.Project, error) {
	p := &entity.Project{Type: entity.ProjectWeb}
	if err := applyProject(p, in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.LongDescription) == "" {
		return nil, apperror.BadRequest("Please provide project name and description")
	}

	images, err := s.uploadImages(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	p.Images = images

	if err := s.Projects.Create(ctx, p); err != nil {
		s.dropImages(ctx, images)
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.Projects.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]entity.Project, error) {
	return s.Projects.List(ctx)
}

// Update changes the fields present in in. New images replace the whole set.
func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput) (*entity.Project, error) {
	p, err := s.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProject(p, in); err != nil {
		return nil, err
	}
	if len(in.Images) > 0 {
		s.dropImages(ctx, p.Images)
		images, err := s.uploadImages(ctx, in.Images)
		if err != nil {
			return nil, err
		}
		p.Images = images
	}
	if err := s.Projects.Update(ctx, p); err != nil {
		return nil, err
	}
	s.index(ctx, p)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	p, err := s.Projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.dropImages(ctx, p.Images)
	if err := s.Projects.Delete(ctx, id); err != nil {
		return err
	}
	if s.indexEnabled() {
		if err := s.Index.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("project_id", id).Warn("es delete failed")
		}
	}
	return nil
}

// Search prefers the search index and falls back to the database.
func (s *ProjectService) Search(ctx context.Context, q string) ([]entity.Project, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.BadRequest("Please provide a search query")
	}
	if s.indexEnabled() {
		res, err := s.Index.Search(ctx, q, searchLimit)
		if err == nil {
			return res, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("es search failed, falling back to database")
		}
	}
	return s.Projects.Search(ctx, q, searchLimit)
}

func applyProject(p *entity.Project, in ProjectInput) error {
	setIf(&p.Name, in.Name)
	setIf(&p.LongDescription, in.LongDescription)
	setIf(&p.Role, in.Role)
	setIf(&p.GithubURL, in.GithubURL)
	setIf(&p.DemoURL, in.DemoURL)
	if in.Type != nil && *in.Type != "" {
		t := entity.ProjectType(strings.ToLower(strings.TrimSpace(*in.Type)))
		if !t.Valid() {
			return apperror.BadRequest("Invalid project type")
		}
		p.Type = t
	}
	lists := []struct {
		field string
		raw   *string
		dst   *[]string
	}{
		{"challenges", in.Challenges, &p.Challenges},
		{"learnings", in.Learnings, &p.Learnings},
		{"technologies", in.Technologies, &p.Technologies},
	}
	for _, l := range lists {
		if l.raw == nil {
			continue
		}
		v, err := parseStringList(l.field, *l.raw)
		if err != nil {
			return err
		}
		*l.dst = v
	}
	return nil
}

// parseStringList decodes a JSON array of strings. Blank input is an empty list.
func parseStringList(field, raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, apperror.Wrap(apperror.Validation, "Invalid "+field+" format", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (s *ProjectService) uploadImages(ctx context.Context, files []*Upload) ([]entity.Asset, error) {
	out := make([]entity.Asset, 0, len(files))
	for _, f := range files {
		a, err := uploadAsset(ctx, s.Assets, ProjectImagesFolder, f)
		if err != nil {
			s.dropImages(ctx, out)
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *ProjectService) dropImages(ctx context.Context, images []entity.Asset) {
	for _, img := range images {
		deleteAsset(ctx, s.Assets, s.Logger, img)
	}
}

func (s *ProjectService) indexEnabled() bool {
	return s.Index != nil && s.Index.Enabled()
}

func (s *ProjectService) index(ctx context.Context, p *entity.Project) {
	if !s.indexEnabled() {
		return
	}
	if err := s.Index.Put(ctx, *p); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("project_id", p.ID).Warn("es index failed")
	}
}
