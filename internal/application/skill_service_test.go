package application

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
	"github.com/Codebuster0001/portfolio3/pkg/apperror"
)

func skillInput(i int) AddSkillInput {
	return AddSkillInput{
		Label:    fmt.Sprintf("Skill %d", i),
		IconName: fmt.Sprintf("Icon%d", i),
		Link:     fmt.Sprintf("https://example.com/%d", i),
	}
}

func orders(t *testing.T, svc *SkillService) []int {
	t.Helper()
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	out := make([]int, 0, len(list))
	for _, s := range list {
		out = append(out, s.Order)
	}
	return out
}

func dense(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestAddSkillOnEmptyThenDuplicateLabel(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	ctx := context.Background()

	sk, err := svc.Add(ctx, AddSkillInput{Label: "React", IconName: "SiReact", Link: "https://reactjs.org"})
	require.NoError(t, err)
	assert.Equal(t, 1, sk.Order)
	assert.Equal(t, entity.DefaultSkillColor, sk.Color)

	_, err = svc.Add(ctx, AddSkillInput{Label: "React", IconName: "SiOther", Link: "https://other.org"})
	requireAppErr(t, err, apperror.Conflict, "Skill with same label, icon, or link already exists")
	assert.Equal(t, []int{1}, orders(t, svc))
}

func TestAddSkillConflictsOnAnyField(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	ctx := context.Background()
	_, err := svc.Add(ctx, AddSkillInput{Label: "Go", IconName: "SiGo", Link: "https://go.dev", Color: "text-cyan"})
	require.NoError(t, err)

	for _, in := range []AddSkillInput{
		{Label: "Go", IconName: "x1", Link: "l1"},
		{Label: "x2", IconName: "SiGo", Link: "l2"},
		{Label: "x3", IconName: "x3", Link: "https://go.dev"},
		{Label: " Go ", IconName: "x4", Link: "l4"},
	} {
		_, err := svc.Add(ctx, in)
		requireAppErr(t, err, apperror.Conflict, "")
	}
}

func TestAddSkillRequiresFields(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	for _, in := range []AddSkillInput{
		{IconName: "i", Link: "l"},
		{Label: "a", Link: "l"},
		{Label: "a", IconName: "i"},
		{Label: "  ", IconName: "i", Link: "l"},
	} {
		_, err := svc.Add(context.Background(), in)
		requireAppErr(t, err, apperror.Validation, "Please provide label, iconName, and link")
	}
}

func TestAddSkillAppendsAtCountPlusOne(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	for i := 1; i <= 5; i++ {
		sk, err := svc.Add(context.Background(), skillInput(i))
		require.NoError(t, err)
		assert.Equal(t, i, sk.Order)
	}
	assert.Equal(t, dense(5), orders(t, svc))
}

func TestDeleteSkillByOrderRenumbers(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	ctx := context.Background()
	var added []*entity.Skill
	for i := 1; i <= 3; i++ {
		sk, err := svc.Add(ctx, skillInput(i))
		require.NoError(t, err)
		added = append(added, sk)
	}

	require.NoError(t, svc.DeleteByOrder(ctx, 2))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, added[0].ID, list[0].ID)
	assert.Equal(t, 1, list[0].Order)
	assert.Equal(t, added[2].ID, list[1].ID, "former order 3 moves to 2")
	assert.Equal(t, 2, list[1].Order)
}

func TestDeleteSkillByOrderFailures(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	ctx := context.Background()
	_, err := svc.Add(ctx, skillInput(1))
	require.NoError(t, err)

	requireAppErr(t, svc.DeleteByOrder(ctx, 0), apperror.Validation, "Invalid order value")
	requireAppErr(t, svc.DeleteByOrder(ctx, -3), apperror.Validation, "Invalid order value")
	requireAppErr(t, svc.DeleteByOrder(ctx, 2), apperror.NotFound, "Skill not found")
	requireAppErr(t, svc.DeleteByOrder(ctx, math.MaxInt32+1), apperror.NotFound, "Skill not found")
	assert.Equal(t, []int{1}, orders(t, svc))
}

func TestDeleteSkillRollsBackWhenRenumberFails(t *testing.T) {
	store := &fakeSkills{}
	svc := NewSkillService(store, nil)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_, err := svc.Add(ctx, skillInput(i))
		require.NoError(t, err)
	}

	store.failShift = true
	requireAppErr(t, svc.DeleteByOrder(ctx, 1), apperror.Internal, "")
	assert.Equal(t, dense(3), orders(t, svc), "delete is undone with the failed shift")
}

func TestSkillOrdersStayDenseUnderRandomOperations(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	next := 0
	count := 0

	for step := 0; step < 200; step++ {
		if count == 0 || rng.Intn(3) > 0 {
			next++
			sk, err := svc.Add(ctx, skillInput(next))
			require.NoError(t, err)
			assert.Equal(t, count+1, sk.Order)
			count++
		} else {
			require.NoError(t, svc.DeleteByOrder(ctx, rng.Intn(count)+1))
			count--
		}
		require.Equal(t, dense(count), orders(t, svc), "step %d", step)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	labels := map[string]bool{}
	icons := map[string]bool{}
	links := map[string]bool{}
	for _, s := range list {
		assert.False(t, labels[s.Label] || icons[s.IconName] || links[s.Link])
		labels[s.Label], icons[s.IconName], links[s.Link] = true, true, true
	}
}

func TestConcurrentAddsGetDistinctOrders(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	const n = 25

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Add(context.Background(), skillInput(i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, dense(n), orders(t, svc))
}

func TestListSkillsEmpty(t *testing.T) {
	svc := NewSkillService(&fakeSkills{}, nil)
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
