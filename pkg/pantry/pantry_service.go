package pantry

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"meal-planner/domain"
	"meal-planner/entities"
	"meal-planner/pkg/store"

	"gorm.io/gorm"
)

type (
	PantryService interface {
		GetItems(ctx context.Context, location, category string) ([]domain.PantryItemResponse, error)
		GetItem(ctx context.Context, id uint) (domain.PantryItemResponse, error)
		AddItem(ctx context.Context, req domain.PantryItemRequest) (domain.PantryItemResponse, error)
		UpdateItem(ctx context.Context, id uint, req domain.PantryItemRequest) error
		DeleteItem(ctx context.Context, id uint) error
		DeleteItems(ctx context.Context, ids []uint) (int64, error)
		GetExpiringSoon(ctx context.Context, days int) ([]domain.PantryItemResponse, error)
		GetLocations(ctx context.Context) ([]string, error)
		GetCategories(ctx context.Context) ([]string, error)
		ImportCSV(ctx context.Context, file *multipart.FileHeader) (domain.ImportCSVResponse, error)
	}

	pantryService struct {
		pantryRepository PantryRepository
		storeService     store.StoreService
	}
)

func NewPantryService(pantryRepository PantryRepository, storeService store.StoreService) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		storeService:     storeService,
	}
}

func toResponse(item *entities.PantryItem) domain.PantryItemResponse {
	res := domain.PantryItemResponse{
		ID:               item.ID,
		Name:             item.Name,
		Barcode:          item.Barcode,
		Category:         item.Category,
		Location:         item.Location,
		Brand:            item.Brand,
		Quantity:         item.Quantity,
		Unit:             item.Unit,
		StockedDate:      item.StockedDate,
		BestBy:           item.BestBy,
		PreferredStoreID: item.PreferredStoreID,
		ProductNotes:     item.ProductNotes,
		ItemNotes:        item.ItemNotes,
		EstimatedPrice:   item.EstimatedPrice,
	}
	if item.PreferredStore != nil {
		res.PreferredStore = &item.PreferredStore.Name
	}
	return res
}

func (s *pantryService) GetItems(ctx context.Context, location, category string) ([]domain.PantryItemResponse, error) {
	items, err := s.pantryRepository.GetAll(ctx, location, category)
	if err != nil {
		return nil, err
	}

	response := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toResponse(item))
	}
	return response, nil
}

func (s *pantryService) GetItem(ctx context.Context, id uint) (domain.PantryItemResponse, error) {
	item, err := s.pantryRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PantryItemResponse{}, domain.ErrPantryItemNotFound
		}
		return domain.PantryItemResponse{}, err
	}
	return toResponse(item), nil
}

func applyRequest(item *entities.PantryItem, req domain.PantryItemRequest) {
	item.Name = strings.TrimSpace(req.Name)
	item.Barcode = req.Barcode
	item.Category = req.Category
	item.Location = req.Location
	item.Brand = req.Brand
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.StockedDate = req.StockedDate
	item.BestBy = req.BestBy
	item.PreferredStoreID = req.PreferredStoreID
	item.ProductNotes = req.ProductNotes
	item.ItemNotes = req.ItemNotes
	item.EstimatedPrice = req.EstimatedPrice
}

func (s *pantryService) AddItem(ctx context.Context, req domain.PantryItemRequest) (domain.PantryItemResponse, error) {
	if req.Quantity < 0 {
		return domain.PantryItemResponse{}, domain.ErrInvalidQuantity
	}

	item := &entities.PantryItem{}
	applyRequest(item, req)

	if err := s.pantryRepository.Add(ctx, item); err != nil {
		return domain.PantryItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *pantryService) UpdateItem(ctx context.Context, id uint, req domain.PantryItemRequest) error {
	if req.Quantity < 0 {
		return domain.ErrInvalidQuantity
	}

	item, err := s.pantryRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPantryItemNotFound
		}
		return err
	}

	applyRequest(item, req)
	item.PreferredStore = nil
	return s.pantryRepository.Update(ctx, item)
}

func (s *pantryService) DeleteItem(ctx context.Context, id uint) error {
	if _, err := s.pantryRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPantryItemNotFound
		}
		return err
	}
	return s.pantryRepository.Delete(ctx, id)
}

func (s *pantryService) DeleteItems(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.pantryRepository.DeleteMany(ctx, ids)
}

func (s *pantryService) GetExpiringSoon(ctx context.Context, days int) ([]domain.PantryItemResponse, error) {
	today := time.Now().Format("2006-01-02")
	cutoff := time.Now().AddDate(0, 0, days).Format("2006-01-02")

	items, err := s.pantryRepository.GetExpiringBetween(ctx, today, cutoff)
	if err != nil {
		return nil, err
	}

	response := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toResponse(item))
	}
	return response, nil
}

func (s *pantryService) GetLocations(ctx context.Context) ([]string, error) {
	return s.pantryRepository.GetLocations(ctx)
}

func (s *pantryService) GetCategories(ctx context.Context) ([]string, error) {
	return s.pantryRepository.GetCategories(ctx)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// ImportCSV loads a PantryChecker export. Rows are matched against existing
// items by barcode first, then by name+brand; matches are updated in place
// and everything else is inserted. Store names are auto-created on first
// reference.
func (s *pantryService) ImportCSV(ctx context.Context, file *multipart.FileHeader) (domain.ImportCSVResponse, error) {
	src, err := file.Open()
	if err != nil {
		return domain.ImportCSVResponse{}, err
	}
	defer src.Close()

	reader := csv.NewReader(src)
	header, err := reader.Read()
	if err != nil {
		return domain.ImportCSVResponse{}, domain.ErrEmptyCSV
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		// PantryChecker exports carry a UTF-8 BOM on the first column.
		col[strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF")] = i
	}
	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var inserted, updated int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.ImportCSVResponse{}, err
		}

		name := field(record, "Name")
		if name == "" {
			continue
		}

		storeID, err := s.storeService.GetOrCreate(ctx, field(record, "Store"))
		if err != nil {
			return domain.ImportCSVResponse{}, err
		}

		barcode := optional(field(record, "Barcode"))
		brand := optional(field(record, "Brand"))

		var existing *entities.PantryItem
		if barcode != nil {
			existing, err = s.pantryRepository.GetByBarcode(ctx, *barcode)
			if err != nil {
				return domain.ImportCSVResponse{}, err
			}
		}
		if existing == nil {
			existing, err = s.pantryRepository.GetByNameAndBrand(ctx, name, brand)
			if err != nil {
				return domain.ImportCSVResponse{}, err
			}
		}

		quantity := 1.0
		if qtyStr := field(record, "Quantity"); qtyStr != "" {
			if parsed, err := strconv.ParseFloat(qtyStr, 64); err == nil {
				quantity = parsed
			}
		}

		item := existing
		if item == nil {
			item = &entities.PantryItem{}
		}
		item.Barcode = barcode
		item.Category = optional(field(record, "Category"))
		item.Location = optional(field(record, "Location"))
		item.Brand = brand
		item.Name = name
		item.Quantity = quantity
		item.Unit = optional(field(record, "Unit"))
		item.StockedDate = optional(field(record, "Stocked"))
		item.BestBy = optional(field(record, "Best By"))
		item.PreferredStoreID = storeID
		item.ProductNotes = optional(field(record, "Product Notes"))
		item.ItemNotes = optional(field(record, "Item Notes"))

		if existing != nil {
			item.PreferredStore = nil
			if err := s.pantryRepository.Update(ctx, item); err != nil {
				return domain.ImportCSVResponse{}, err
			}
			updated++
		} else {
			if err := s.pantryRepository.Add(ctx, item); err != nil {
				return domain.ImportCSVResponse{}, err
			}
			inserted++
		}
	}

	return domain.ImportCSVResponse{Inserted: inserted, Updated: updated}, nil
}
