package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	repo "github.com/Codebuster0001/portfolio3/internal/domain/repository"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

var errBoom = errors.New("boom")

// fakeUsers stores copies so services cannot mutate state without Update.
type fakeUsers struct {
	mu        sync.Mutex
	byID      map[string]entity.User
	order     []string
	seq       int
	createErr error
	updates   int
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]entity.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, x := range f.byID {
		if x.Email == u.Email {
			return apperror.Conflictf("Duplicate field value entered: email")
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("u%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byID[u.ID] = *u
	f.order = append(f.order, u.ID)
	return nil
}

func (f *fakeUsers) get(id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFoundf("User not found")
	}
	return &u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(id)
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.order {
		if f.byID[id].Email == email {
			return f.get(id)
		}
	}
	return nil, apperror.NotFoundf("User not found")
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if apperror.Is(err, apperror.NotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUsers) GetFirst(_ context.Context) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.order) == 0 {
		return nil, apperror.NotFoundf("User not found")
	}
	return f.get(f.order[0])
}

func (f *fakeUsers) GetByResetToken(_ context.Context, hash string, now time.Time) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.order {
		u := f.byID[id]
		if u.HasPendingReset() && *u.ResetPasswordToken == hash && u.ResetPasswordExpire.After(now) {
			return f.get(id)
		}
	}
	return nil, apperror.NotFoundf("User not found")
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return apperror.NotFoundf("User not found")
	}
	f.updates++
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) CompleteReset(_ context.Context, u *entity.User, hash string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[u.ID]
	if !ok || !cur.HasPendingReset() || *cur.ResetPasswordToken != hash || !cur.ResetPasswordExpire.After(now) {
		return apperror.NotFoundf("User not found")
	}
	f.updates++
	cur.PasswordHash = u.PasswordHash
	cur.ClearReset()
	cur.TokenVersion++
	cur.UpdatedAt = now
	f.byID[u.ID] = cur
	u.TokenVersion, u.UpdatedAt = cur.TokenVersion, cur.UpdatedAt
	u.ClearReset()
	return nil
}

func (f *fakeUsers) stored(id string) entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// fakeSkills implements the store primitives only. WithinTx holds the lock for
// the whole callback and restores a snapshot when it fails.
type fakeSkills struct {
	mu     sync.Mutex
	skills []entity.Skill
	seq    int
	// failShift makes ShiftDownAfter fail to exercise rollback.
	failShift bool
}

type skillTx struct{ f *fakeSkills }

func (f *fakeSkills) WithinTx(ctx context.Context, fn func(ctx context.Context, r repo.SkillRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := append([]entity.Skill(nil), f.skills...)
	seq := f.seq
	if err := fn(ctx, skillTx{f}); err != nil {
		f.skills = snapshot
		f.seq = seq
		return err
	}
	return nil
}

func (f *fakeSkills) List(ctx context.Context) ([]entity.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return skillTx{f}.List(ctx)
}

func (f *fakeSkills) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return skillTx{f}.Count(ctx)
}

func (f *fakeSkills) FindConflict(ctx context.Context, label, icon, link string) (*entity.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return skillTx{f}.FindConflict(ctx, label, icon, link)
}

func (f *fakeSkills) Insert(ctx context.Context, s *entity.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return skillTx{f}.Insert(ctx, s)
}

func (f *fakeSkills) GetByOrder(ctx context.Context, order int) (*entity.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return skillTx{f}.GetByOrder(ctx, order)
}

func (f *fakeSkills) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return skillTx{f}.DeleteByID(ctx, id)
}

func (f *fakeSkills) ShiftDownAfter(ctx context.Context, order int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return skillTx{f}.ShiftDownAfter(ctx, order)
}

func (t skillTx) List(context.Context) ([]entity.Skill, error) {
	out := append([]entity.Skill{}, t.f.skills...)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (t skillTx) Count(context.Context) (int, error) { return len(t.f.skills), nil }

func (t skillTx) FindConflict(_ context.Context, label, icon, link string) (*entity.Skill, error) {
	for _, s := range t.f.skills {
		if s.Label == label || s.IconName == icon || s.Link == link {
			c := s
			return &c, nil
		}
	}
	return nil, nil
}

func (t skillTx) Insert(_ context.Context, s *entity.Skill) error {
	for _, x := range t.f.skills {
		if x.Label == s.Label || x.IconName == s.IconName || x.Link == s.Link {
			return apperror.Conflictf("Duplicate field value entered: label")
		}
	}
	t.f.seq++
	s.ID = fmt.Sprintf("s%d", t.f.seq)
	t.f.skills = append(t.f.skills, *s)
	return nil
}

func (t skillTx) GetByOrder(_ context.Context, order int) (*entity.Skill, error) {
	for _, s := range t.f.skills {
		if s.Order == order {
			c := s
			return &c, nil
		}
	}
	return nil, apperror.NotFoundf("Skill not found")
}

func (t skillTx) DeleteByID(_ context.Context, id string) error {
	for i, s := range t.f.skills {
		if s.ID == id {
			t.f.skills = append(t.f.skills[:i:i], t.f.skills[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundf("Skill not found")
}

func (t skillTx) ShiftDownAfter(_ context.Context, order int) (int64, error) {
	if t.f.failShift {
		return 0, apperror.InternalErr(errBoom)
	}
	var n int64
	for i := range t.f.skills {
		if t.f.skills[i].Order > order {
			t.f.skills[i].Order--
			n++
		}
	}
	return n, nil
}

var _ repo.SkillStore = (*fakeSkills)(nil)

type fakeAssets struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
	seq       int
}

func (f *fakeAssets) Upload(_ context.Context, folder, filename, _ string, r io.Reader) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", "", err
	}
	f.seq++
	id := fmt.Sprintf("%s/%d-%s", folder, f.seq, filename)
	f.uploads = append(f.uploads, id)
	return id, "https://assets.test/" + id, nil
}

func (f *fakeAssets) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, publicID)
	return f.deleteErr
}

type sentMail struct {
	to, subject, text, html string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

type fakeIndex struct {
	enabled   bool
	docs      map[string]entity.Project
	searchErr error
	searches  int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{enabled: true, docs: map[string]entity.Project{}}
}

func (f *fakeIndex) Enabled() bool { return f.enabled }

func (f *fakeIndex) Put(_ context.Context, p entity.Project) error {
	f.docs[p.ID] = p
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, _ int) ([]entity.Project, error) {
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []entity.Project
	for _, p := range f.docs {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeProjects struct {
	byID      map[string]entity.Project
	seq       int
	createErr error
	searched  []string
}

func newFakeProjects() *fakeProjects { return &fakeProjects{byID: map[string]entity.Project{}} }

func (f *fakeProjects) Create(_ context.Context, p *entity.Project) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	p.ID = fmt.Sprintf("p%d", f.seq)
	p.CreatedAt = time.Now()
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id string) (*entity.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFoundf("Project not found")
	}
	return &p, nil
}

func (f *fakeProjects) List(context.Context) ([]entity.Project, error) {
	out := make([]entity.Project, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjects) Update(_ context.Context, p *entity.Project) error {
	if _, ok := f.byID[p.ID]; !ok {
		return apperror.NotFoundf("Project not found")
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProjects) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return apperror.NotFoundf("Project not found")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProjects) Search(_ context.Context, q string, _ int) ([]entity.Project, error) {
	f.searched = append(f.searched, q)
	var out []entity.Project
	for _, p := range f.byID {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeTimelines struct {
	byID map[string]entity.Timeline
	seq  int
}

func newFakeTimelines() *fakeTimelines { return &fakeTimelines{byID: map[string]entity.Timeline{}} }

func (f *fakeTimelines) Create(_ context.Context, t *entity.Timeline) error {
	f.seq++
	t.ID = fmt.Sprintf("t%d", f.seq)
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTimelines) GetByID(_ context.Context, id string) (*entity.Timeline, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFoundf("Timeline entry not found")
	}
	return &t, nil
}

func (f *fakeTimelines) List(context.Context) ([]entity.Timeline, error) {
	out := make([]entity.Timeline, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (f *fakeTimelines) Update(_ context.Context, t *entity.Timeline) error {
	if _, ok := f.byID[t.ID]; !ok {
		return apperror.NotFoundf("Timeline entry not found")
	}
	f.byID[t.ID] = *t
	return nil
}

func (f *fakeTimelines) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return apperror.NotFoundf("Timeline entry not found")
	}
	delete(f.byID, id)
	return nil
}

type fakeMessages struct {
	items []entity.Message
	seq   int
}

func (f *fakeMessages) Create(_ context.Context, m *entity.Message) error {
	f.seq++
	m.ID = fmt.Sprintf("m%d", f.seq)
	m.CreatedAt = time.Now()
	f.items = append(f.items, *m)
	return nil
}

func (f *fakeMessages) List(context.Context) ([]entity.Message, error) {
	return append([]entity.Message{}, f.items...), nil
}

func (f *fakeMessages) Delete(_ context.Context, id string) error {
	for i, m := range f.items {
		if m.ID == id {
			f.items = append(f.items[:i:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundf("Message not found")
}
