package wardrobe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/style-ai/internal/domain/outfit"
	apperrors "github.com/yanqian/style-ai/pkg/errors"
)

func TestService_UploadAndList(t *testing.T) {
	repo := newFakeRepo()
	storage := newFakeStorage()
	svc := NewService(repo, storage, newTestLogger())

	item, err := svc.Upload(context.Background(), 42, UploadRequest{
		Category: "tops",
		Filename: "shirt.png",
		MimeType: "image/png",
		Data:     []byte("png-bytes"),
	})
	require.NoError(t, err)
	require.Equal(t, "Tops", item.Category)
	require.True(t, strings.HasPrefix(item.StorageKey, "wardrobe/42/item_"), item.StorageKey)
	require.True(t, strings.HasSuffix(item.StorageKey, ".png"))
	require.Equal(t, "/uploads/"+item.StorageKey, item.ImageURL)
	require.NotZero(t, item.ID)

	items, err := svc.List(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, item.ID, items[0].ID)

	others, err := svc.List(context.Background(), 99)
	require.NoError(t, err)
	require.Empty(t, others)
}

func TestService_UploadRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeStorage(), newTestLogger())

	_, err := svc.Upload(context.Background(), 42, UploadRequest{Category: "hats", Data: []byte("x")})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Contains(t, err.Error(), "category must be one of")

	_, err = svc.Upload(context.Background(), 42, UploadRequest{Category: "Tops"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_UploadCleansUpOnRepoFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("db down")
	storage := newFakeStorage()
	svc := NewService(repo, storage, newTestLogger())

	_, err := svc.Upload(context.Background(), 42, UploadRequest{
		Category: "Footwear",
		Filename: "boots.jpg",
		Data:     []byte("jpg-bytes"),
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "storage_error"))
	require.Empty(t, storage.blobs)
}

func TestService_DeleteRemovesBlobAndRow(t *testing.T) {
	repo := newFakeRepo()
	storage := newFakeStorage()
	svc := NewService(repo, storage, newTestLogger())

	item, err := svc.Upload(context.Background(), 42, UploadRequest{
		Category: "Dresses",
		Filename: "dress.jpg",
		Data:     []byte("jpg-bytes"),
	})
	require.NoError(t, err)
	require.Len(t, storage.blobs, 1)

	require.NoError(t, svc.Delete(context.Background(), 42, item.ID))
	require.Empty(t, storage.blobs)

	items, err := svc.List(context.Background(), 42)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestService_DeleteRejectsForeignItems(t *testing.T) {
	repo := newFakeRepo()
	storage := newFakeStorage()
	svc := NewService(repo, storage, newTestLogger())

	item, err := svc.Upload(context.Background(), 42, UploadRequest{
		Category: "Accessories",
		Filename: "belt.jpg",
		Data:     []byte("jpg-bytes"),
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 99, item.ID)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "item_not_found"))
	require.Len(t, storage.blobs, 1)

	err = svc.Delete(context.Background(), 42, item.ID+100)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "item_not_found"))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type fakeRepo struct {
	nextID    int64
	items     map[int64]Item
	order     []int64
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, items: make(map[int64]Item)}
}

func (r *fakeRepo) Create(_ context.Context, item Item) (Item, error) {
	if r.createErr != nil {
		return Item{}, r.createErr
	}
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID int64) ([]Item, error) {
	var items []Item
	for i := len(r.order) - 1; i >= 0; i-- {
		item, ok := r.items[r.order[i]]
		if ok && item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (Item, bool, error) {
	item, ok := r.items[id]
	return item, ok, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

type fakeStorage struct {
	blobs map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte)}
}

func (s *fakeStorage) Save(_ context.Context, key string, data []byte, _ string) (outfit.StoredImage, error) {
	s.blobs[key] = data
	return outfit.StoredImage{Key: key, URL: "/uploads/" + key, Size: int64(len(data))}, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}
