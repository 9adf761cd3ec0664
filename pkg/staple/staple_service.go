package staple

import (
	"context"
	"errors"
	"strings"

	"meal-planner/domain"
	"meal-planner/entities"

	"gorm.io/gorm"
)

type (
	StapleService interface {
		GetStaples(ctx context.Context) ([]domain.StapleResponse, error)
		AddStaple(ctx context.Context, req domain.StapleRequest) (domain.StapleResponse, error)
		UpdateStaple(ctx context.Context, id uint, req domain.StapleRequest) error
		DeleteStaple(ctx context.Context, id uint) error
		SetNeedToBuy(ctx context.Context, id uint, need bool) error
	}

	stapleService struct {
		stapleRepository StapleRepository
	}
)

func NewStapleService(stapleRepository StapleRepository) StapleService {
	return &stapleService{stapleRepository: stapleRepository}
}

func toResponse(staple *entities.Staple) domain.StapleResponse {
	res := domain.StapleResponse{
		ID:               staple.ID,
		Name:             staple.Name,
		Category:         staple.Category,
		PreferredStoreID: staple.PreferredStoreID,
		NeedToBuy:        staple.NeedToBuy,
	}
	if staple.PreferredStore != nil {
		res.PreferredStore = &staple.PreferredStore.Name
	}
	return res
}

func (s *stapleService) GetStaples(ctx context.Context) ([]domain.StapleResponse, error) {
	staples, err := s.stapleRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.StapleResponse, 0, len(staples))
	for _, staple := range staples {
		response = append(response, toResponse(staple))
	}
	return response, nil
}

// AddStaple rejects names that already exist, compared case-insensitively,
// so "Salt" and "salt" cannot coexist.
func (s *stapleService) AddStaple(ctx context.Context, req domain.StapleRequest) (domain.StapleResponse, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := s.stapleRepository.GetByName(ctx, name)
	if err != nil {
		return domain.StapleResponse{}, err
	}
	if existing != nil {
		return domain.StapleResponse{}, domain.ErrStapleAlreadyExists
	}

	staple := &entities.Staple{
		Name:             name,
		Category:         req.Category,
		PreferredStoreID: req.PreferredStoreID,
		NeedToBuy:        req.NeedToBuy,
	}
	if err := s.stapleRepository.Add(ctx, staple); err != nil {
		return domain.StapleResponse{}, err
	}
	return toResponse(staple), nil
}

func (s *stapleService) UpdateStaple(ctx context.Context, id uint, req domain.StapleRequest) error {
	staple, err := s.stapleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStapleNotFound
		}
		return err
	}

	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, staple.Name) {
		existing, err := s.stapleRepository.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrStapleAlreadyExists
		}
	}

	staple.Name = name
	staple.Category = req.Category
	staple.PreferredStoreID = req.PreferredStoreID
	staple.NeedToBuy = req.NeedToBuy
	staple.PreferredStore = nil
	return s.stapleRepository.Update(ctx, staple)
}

func (s *stapleService) DeleteStaple(ctx context.Context, id uint) error {
	if _, err := s.stapleRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStapleNotFound
		}
		return err
	}
	return s.stapleRepository.Delete(ctx, id)
}

func (s *stapleService) SetNeedToBuy(ctx context.Context, id uint, need bool) error {
	staple, err := s.stapleRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStapleNotFound
		}
		return err
	}
	staple.NeedToBuy = need
	staple.PreferredStore = nil
	return s.stapleRepository.Update(ctx, staple)
}
