package share

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "share.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestShortenAndResolve(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Shorten(ctx, "http://localhost:3000/clips/abc/youtube_shorts.mp4")
	require.NoError(t, err)
	require.Len(t, id, shortIDLength)

	target, err := s.Resolve(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000/clips/abc/youtube_shorts.mp4", target)
}

func TestShortenReusesID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Shorten(ctx, "http://example.com/v.mp4")
	require.NoError(t, err)
	second, err := s.Shorten(ctx, "http://example.com/v.mp4")
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := s.Shorten(ctx, "http://example.com/other.mp4")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Resolve(context.Background(), "deadbeef")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestShortenEmptyTarget(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Shorten(context.Background(), "   ")
	require.Error(t, err)
}

func TestBuildLinks(t *testing.T) {
	t.Parallel()

	l := BuildLinks("http://localhost:3000", "abcd1234", "http://localhost:3000/clips/x/youtube_shorts.mp4", "My short")
	require.Equal(t, "http://localhost:3000/s/abcd1234", l.ShortURL)
	require.Contains(t, l.Platforms["telegram"], "t.me/share/url")
	require.Contains(t, l.Platforms["whatsapp"], "wa.me")
	for _, link := range l.Platforms {
		require.True(t, strings.Contains(link, "http%3A%2F%2Flocalhost%3A3000%2Fs%2Fabcd1234"), link)
	}
}

func TestQRCodePNG(t *testing.T) {
	t.Parallel()

	png, err := QRCodePNG("http://localhost:3000/s/abcd1234")
	require.NoError(t, err)
	require.Greater(t, len(png), 100)
	require.Equal(t, "\x89PNG", string(png[:4]))
}
