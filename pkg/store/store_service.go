package store

import (
	"context"
	"errors"
	"strings"

	"meal-planner/domain"
	"meal-planner/entities"

	"gorm.io/gorm"
)

type (
	StoreService interface {
		GetStores(ctx context.Context) ([]domain.StoreResponse, error)
		AddStore(ctx context.Context, req domain.StoreRequest) (domain.StoreResponse, error)
		UpdateStore(ctx context.Context, id uint, req domain.StoreRequest) error
		DeleteStore(ctx context.Context, id uint) error
		GetOrCreate(ctx context.Context, name string) (*uint, error)
	}

	storeService struct {
		storeRepository StoreRepository
	}
)

func NewStoreService(storeRepository StoreRepository) StoreService {
	return &storeService{storeRepository: storeRepository}
}

func toResponse(store *entities.Store) domain.StoreResponse {
	return domain.StoreResponse{
		ID:       store.ID,
		Name:     store.Name,
		Location: store.Location,
		Notes:    store.Notes,
	}
}

func (s *storeService) GetStores(ctx context.Context) ([]domain.StoreResponse, error) {
	stores, err := s.storeRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.StoreResponse, 0, len(stores))
	for _, store := range stores {
		response = append(response, toResponse(store))
	}
	return response, nil
}

func (s *storeService) AddStore(ctx context.Context, req domain.StoreRequest) (domain.StoreResponse, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := s.storeRepository.GetByName(ctx, name)
	if err != nil {
		return domain.StoreResponse{}, err
	}
	if existing != nil {
		return domain.StoreResponse{}, domain.ErrStoreAlreadyExists
	}

	store := &entities.Store{
		Name:     name,
		Location: req.Location,
		Notes:    req.Notes,
	}
	if err := s.storeRepository.Add(ctx, store); err != nil {
		return domain.StoreResponse{}, err
	}
	return toResponse(store), nil
}

func (s *storeService) UpdateStore(ctx context.Context, id uint, req domain.StoreRequest) error {
	store, err := s.storeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStoreNotFound
		}
		return err
	}

	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, store.Name) {
		existing, err := s.storeRepository.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrStoreAlreadyExists
		}
	}

	store.Name = name
	store.Location = req.Location
	store.Notes = req.Notes
	return s.storeRepository.Update(ctx, store)
}

func (s *storeService) DeleteStore(ctx context.Context, id uint) error {
	if _, err := s.storeRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrStoreNotFound
		}
		return err
	}
	return s.storeRepository.Delete(ctx, id)
}

// GetOrCreate returns the store ID for a free-text store name, creating the
// store on first reference. Blank names resolve to nil (no store).
func (s *storeService) GetOrCreate(ctx context.Context, name string) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	existing, err := s.storeRepository.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &existing.ID, nil
	}

	store := &entities.Store{Name: name}
	if err := s.storeRepository.Add(ctx, store); err != nil {
		return nil, err
	}
	return &store.ID, nil
}
