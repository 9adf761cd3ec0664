package staple

import (
	"context"
	"strings"
	"testing"

	"meal-planner/domain"
	"meal-planner/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStapleRepo struct {
	staples []*entities.Staple
	nextID  uint
}

func (f *fakeStapleRepo) GetAll(_ context.Context) ([]*entities.Staple, error) {
	return f.staples, nil
}

func (f *fakeStapleRepo) GetByID(_ context.Context, id uint) (*entities.Staple, error) {
	for _, s := range f.staples {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStapleRepo) GetByName(_ context.Context, name string) (*entities.Staple, error) {
	for _, s := range f.staples {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStapleRepo) GetByNeedToBuy(_ context.Context, need bool) ([]*entities.Staple, error) {
	var out []*entities.Staple
	for _, s := range f.staples {
		if s.NeedToBuy == need {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStapleRepo) Add(_ context.Context, staple *entities.Staple) error {
	f.nextID++
	staple.ID = f.nextID
	f.staples = append(f.staples, staple)
	return nil
}

func (f *fakeStapleRepo) Update(_ context.Context, staple *entities.Staple) error {
	for i, s := range f.staples {
		if s.ID == staple.ID {
			f.staples[i] = staple
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStapleRepo) Delete(_ context.Context, id uint) error {
	for i, s := range f.staples {
		if s.ID == id {
			f.staples = append(f.staples[:i], f.staples[i+1:]...)
			return nil
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestAddStaple(t *testing.T) {
	repo := &fakeStapleRepo{}
	svc := NewStapleService(repo)

	res, err := svc.AddStaple(context.Background(), domain.StapleRequest{Name: "  Salt  "})
	require.NoError(t, err)
	assert.Equal(t, "Salt", res.Name)
	assert.False(t, res.NeedToBuy)
	require.Len(t, repo.staples, 1)
}

func TestAddStapleRejectsCaseInsensitiveDuplicate(t *testing.T) {
	repo := &fakeStapleRepo{staples: []*entities.Staple{{ID: 1, Name: "Salt"}}}
	svc := NewStapleService(repo)

	_, err := svc.AddStaple(context.Background(), domain.StapleRequest{Name: "salt"})
	assert.ErrorIs(t, err, domain.ErrStapleAlreadyExists)
	assert.Len(t, repo.staples, 1)
}

func TestUpdateStapleAllowsOwnNameCaseChange(t *testing.T) {
	repo := &fakeStapleRepo{staples: []*entities.Staple{{ID: 1, Name: "olive oil"}}}
	svc := NewStapleService(repo)

	err := svc.UpdateStaple(context.Background(), 1, domain.StapleRequest{
		Name:      "Olive Oil",
		NeedToBuy: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Olive Oil", repo.staples[0].Name)
	assert.True(t, repo.staples[0].NeedToBuy)
}

func TestUpdateStapleRejectsRenameOntoExisting(t *testing.T) {
	repo := &fakeStapleRepo{staples: []*entities.Staple{
		{ID: 1, Name: "Salt"},
		{ID: 2, Name: "Pepper"},
	}}
	svc := NewStapleService(repo)

	err := svc.UpdateStaple(context.Background(), 2, domain.StapleRequest{Name: "SALT"})
	assert.ErrorIs(t, err, domain.ErrStapleAlreadyExists)
}

func TestUpdateStapleNotFound(t *testing.T) {
	svc := NewStapleService(&fakeStapleRepo{})
	err := svc.UpdateStaple(context.Background(), 99, domain.StapleRequest{Name: "Salt"})
	assert.ErrorIs(t, err, domain.ErrStapleNotFound)
}

func TestDeleteStaple(t *testing.T) {
	repo := &fakeStapleRepo{staples: []*entities.Staple{{ID: 1, Name: "Salt"}}}
	svc := NewStapleService(repo)

	require.NoError(t, svc.DeleteStaple(context.Background(), 1))
	assert.Empty(t, repo.staples)

	err := svc.DeleteStaple(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrStapleNotFound)
}

func TestSetNeedToBuy(t *testing.T) {
	repo := &fakeStapleRepo{staples: []*entities.Staple{{ID: 1, Name: "Coffee"}}}
	svc := NewStapleService(repo)

	require.NoError(t, svc.SetNeedToBuy(context.Background(), 1, true))
	assert.True(t, repo.staples[0].NeedToBuy)

	require.NoError(t, svc.SetNeedToBuy(context.Background(), 1, false))
	assert.False(t, repo.staples[0].NeedToBuy)

	err := svc.SetNeedToBuy(context.Background(), 42, true)
	assert.ErrorIs(t, err, domain.ErrStapleNotFound)
}

func TestGetStaplesIncludesStoreName(t *testing.T) {
	repo := &fakeStapleRepo{staples: []*entities.Staple{
		{ID: 1, Name: "Coffee", PreferredStoreID: ptr(uint(3)), PreferredStore: &entities.Store{Name: "Costco"}},
		{ID: 2, Name: "Salt"},
	}}
	svc := NewStapleService(repo)

	res, err := svc.GetStaples(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.NotNil(t, res[0].PreferredStore)
	assert.Equal(t, "Costco", *res[0].PreferredStore)
	assert.Nil(t, res[1].PreferredStore)
}
