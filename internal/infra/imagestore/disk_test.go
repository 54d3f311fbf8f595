package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root, "/uploads/")
	require.NoError(t, err)

	stored, err := store.Save(context.Background(), "outfits/outfit_abc.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "outfits/outfit_abc.jpg", stored.Key)
	require.Equal(t, "/uploads/outfits/outfit_abc.jpg", stored.URL)
	require.Equal(t, int64(10), stored.Size)

	data, err := os.ReadFile(filepath.Join(root, "outfits", "outfit_abc.jpg"))
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-bytes"), data)

	require.NoError(t, store.Delete(context.Background(), "outfits/outfit_abc.jpg"))
	_, err = os.Stat(filepath.Join(root, "outfits", "outfit_abc.jpg"))
	require.True(t, os.IsNotExist(err))

	// deleting again is a no-op
	require.NoError(t, store.Delete(context.Background(), "outfits/outfit_abc.jpg"))
}

func TestDiskStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, key := range []string{"../secrets.txt", "/etc/passwd", "a/../../b"} {
		_, err := store.Save(context.Background(), key, []byte("x"), "image/jpeg")
		require.Error(t, err, "key %q", key)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore("/uploads")

	stored, err := store.Save(context.Background(), "wardrobe/1/item_x.png", []byte("png"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "/uploads/wardrobe/1/item_x.png", stored.URL)

	data, err := store.Get("wardrobe/1/item_x.png")
	require.NoError(t, err)
	require.Equal(t, []byte("png"), data)

	require.NoError(t, store.Delete(context.Background(), "wardrobe/1/item_x.png"))
	_, err = store.Get("wardrobe/1/item_x.png")
	require.Error(t, err)
}
