package wardrobe

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/style-ai/internal/domain/outfit"
	apperrors "github.com/yanqian/style-ai/pkg/errors"
	"github.com/yanqian/style-ai/pkg/util"
)

// Categories lists the accepted wardrobe categories.
var Categories = []string{"Tops", "Bottoms", "Dresses", "Footwear", "Accessories"}

const maxUploadBytes = 10 << 20

// Storage persists wardrobe photos alongside generated outfit images.
type Storage interface {
	Save(ctx context.Context, key string, data []byte, mimeType string) (outfit.StoredImage, error)
	Delete(ctx context.Context, key string) error
}

// Service exposes wardrobe workflows.
type Service interface {
	Upload(ctx context.Context, userID int64, req UploadRequest) (Item, error)
	List(ctx context.Context, userID int64) ([]Item, error)
	Delete(ctx context.Context, userID, itemID int64) error
}

type service struct {
	repo    Repository
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a Service instance.
func NewService(repo Repository, storage Storage, logger *slog.Logger) Service {
	return &service{
		repo:    repo,
		storage: storage,
		logger:  logger.With("component", "wardrobe.service"),
		now:     util.NowUTC,
	}
}

func (s *service) Upload(ctx context.Context, userID int64, req UploadRequest) (Item, error) {
	category, err := normalizeCategory(req.Category)
	if err != nil {
		return Item{}, apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	if len(req.Data) == 0 {
		return Item{}, apperrors.Wrap("invalid_input", "file cannot be empty", nil)
	}
	if len(req.Data) > maxUploadBytes {
		return Item{}, apperrors.Wrap("invalid_input", "file exceeds the 10MB limit", nil)
	}
	key := itemKey(userID, req.Filename, req.MimeType)
	stored, err := s.storage.Save(ctx, key, req.Data, req.MimeType)
	if err != nil {
		return Item{}, apperrors.Wrap("storage_error", "failed to store wardrobe image", err)
	}
	item, err := s.repo.Create(ctx, Item{
		UserID:     userID,
		Category:   category,
		StorageKey: stored.Key,
		ImageURL:   stored.URL,
		CreatedAt:  s.now(),
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, stored.Key); delErr != nil {
			s.logger.Warn("failed to clean up orphaned wardrobe image", "key", stored.Key, "error", delErr)
		}
		return Item{}, apperrors.Wrap("storage_error", "failed to record wardrobe item", err)
	}
	s.logger.Info("wardrobe item uploaded", "userId", userID, "itemId", item.ID, "category", category)
	return item, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]Item, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list wardrobe items", err)
	}
	return items, nil
}

// Delete removes the stored photo and then the row. Items belonging to other
// users are reported as not found.
func (s *service) Delete(ctx context.Context, userID, itemID int64) error {
	item, found, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to load wardrobe item", err)
	}
	if !found || item.UserID != userID {
		return apperrors.Wrap("item_not_found", "wardrobe item not found", nil)
	}
	if err := s.storage.Delete(ctx, item.StorageKey); err != nil {
		s.logger.Warn("failed to delete wardrobe image", "key", item.StorageKey, "error", err)
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return apperrors.Wrap("storage_error", "failed to delete wardrobe item", err)
	}
	return nil
}

func normalizeCategory(raw string) (string, error) {
	category := strings.TrimSpace(raw)
	for _, allowed := range Categories {
		if strings.EqualFold(category, allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("category must be one of %s", strings.Join(Categories, ", "))
}

func itemKey(userID int64, filename, mimeType string) string {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		switch mimeType {
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}
	return fmt.Sprintf("wardrobe/%d/item_%s%s", userID, hex.EncodeToString(id[:]), ext)
}
