package knownprice

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"meal-planner/domain"
	"meal-planner/entities"
	"meal-planner/internal/utils"
	"meal-planner/internal/utils/storage"
	"meal-planner/pkg/assistant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	KnownPriceService interface {
		GetPrices(ctx context.Context) ([]domain.KnownPriceResponse, error)
		UpsertPrice(ctx context.Context, req domain.KnownPriceRequest) error
		DeletePrice(ctx context.Context, id uint) error
		ParseReceipt(ctx context.Context, req domain.UploadReceiptRequest) (domain.ParseReceiptResponse, error)
	}

	knownPriceService struct {
		knownPriceRepository KnownPriceRepository
		assistantService     assistant.AssistantService
		awsS3                storage.AwsS3
	}
)

func NewKnownPriceService(
	knownPriceRepository KnownPriceRepository,
	assistantService assistant.AssistantService,
	awsS3 storage.AwsS3,
) KnownPriceService {
	return &knownPriceService{
		knownPriceRepository: knownPriceRepository,
		assistantService:     assistantService,
		awsS3:                awsS3,
	}
}

func toResponse(price *entities.KnownPrice) domain.KnownPriceResponse {
	return domain.KnownPriceResponse{
		ID:          price.ID,
		ItemName:    price.ItemName,
		UnitPrice:   price.UnitPrice,
		Unit:        price.Unit,
		StoreID:     price.StoreID,
		LastUpdated: price.LastUpdated.Format("2006-01-02 15:04:05"),
	}
}

func (s *knownPriceService) GetPrices(ctx context.Context) ([]domain.KnownPriceResponse, error) {
	prices, err := s.knownPriceRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.KnownPriceResponse, 0, len(prices))
	for _, price := range prices {
		response = append(response, toResponse(price))
	}
	return response, nil
}

func (s *knownPriceService) UpsertPrice(ctx context.Context, req domain.KnownPriceRequest) error {
	if req.UnitPrice <= 0 {
		return domain.ErrInvalidUnitPrice
	}
	return s.knownPriceRepository.Upsert(ctx, req.ItemName, req.UnitPrice, req.Unit, req.StoreID)
}

func (s *knownPriceService) DeletePrice(ctx context.Context, id uint) error {
	return s.knownPriceRepository.Delete(ctx, id)
}

func mediaTypeFor(filename string) string {
	if mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); mediaType != "" {
		return mediaType
	}
	return "image/jpeg"
}

// ParseReceipt runs the full receipt pipeline: archive the photos to S3,
// hand them to the assistant for extraction, then upsert a known price per
// extracted line. A failed archive upload is logged and skipped; it never
// blocks the price extraction.
func (s *knownPriceService) ParseReceipt(ctx context.Context, req domain.UploadReceiptRequest) (domain.ParseReceiptResponse, error) {
	images := make([]domain.ReceiptImage, 0, len(req.Images))
	for _, header := range req.Images {
		src, err := header.Open()
		if err != nil {
			return domain.ParseReceiptResponse{}, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return domain.ParseReceiptResponse{}, err
		}
		images = append(images, domain.ReceiptImage{
			MediaType: mediaTypeFor(header.Filename),
			Data:      data,
		})

		fileName := "receipt-" + uuid.NewString()
		if _, err := s.awsS3.UploadFile(fileName, header, "receipts", storage.AllowImage...); err != nil {
			utils.Logger.Warn("receipt archive upload failed",
				zap.String("file", header.Filename),
				zap.Error(err),
			)
		}
	}

	items, err := s.assistantService.ParseReceiptImages(ctx, images)
	if err != nil {
		return domain.ParseReceiptResponse{}, err
	}

	upserted := 0
	for _, item := range items {
		if err := s.knownPriceRepository.Upsert(ctx, item.ItemName, item.UnitPrice, nil, nil); err != nil {
			return domain.ParseReceiptResponse{}, err
		}
		upserted++
	}

	return domain.ParseReceiptResponse{Items: items, Upserted: upserted}, nil
}
