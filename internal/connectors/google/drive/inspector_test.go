package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/drivelink-cli/internal/connectors/google"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
)

type fieldLog struct {
	mu     sync.Mutex
	fields []string
}

func (l *fieldLog) add(f string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fields = append(l.fields, f)
}

func (l *fieldLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.fields...)
}

func newTestInspector(t *testing.T, files map[string]map[string]any) (*Inspector, *fieldLog) {
	t.Helper()
	seen := &fieldLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		seen.add(r.URL.Query().Get("fields"))
		file, ok := files[id]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"File not found: ` + id + `"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(file)
	}))
	t.Cleanup(srv.Close)

	svc, err := drive.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/drive/v3/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	limiter := google.NewRateLimiterWithConfig(google.RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 10})
	return NewInspector(svc, limiter), seen
}

func TestInspector_Healthy(t *testing.T) {
	inspector, seen := newTestInspector(t, map[string]map[string]any{
		"root-1": {"id": "root-1", "name": "Cooking", "mimeType": domain.FolderMimeType, "parents": []string{"drive-root"}},
		"arch-1": {"id": "arch-1", "name": "Archive", "mimeType": domain.FolderMimeType, "parents": []string{"root-1"}},
	})

	got, err := inspector.Inspect(context.Background(), domain.ProvisionedFolders{RootFolderID: "root-1", ArchiveFolderID: "arch-1"})

	require.NoError(t, err)
	assert.Equal(t, "Cooking", got.Root.Name)
	assert.True(t, got.Healthy())
	fields := seen.all()
	require.Len(t, fields, 2)
	assert.Contains(t, fields[0], "parents")
	assert.Contains(t, fields[0], "trashed")
}

func TestInspector_ArchiveNotNested(t *testing.T) {
	inspector, _ := newTestInspector(t, map[string]map[string]any{
		"root-1": {"id": "root-1", "mimeType": domain.FolderMimeType},
		"arch-1": {"id": "arch-1", "mimeType": domain.FolderMimeType, "parents": []string{"elsewhere"}},
	})

	got, err := inspector.Inspect(context.Background(), domain.ProvisionedFolders{RootFolderID: "root-1", ArchiveFolderID: "arch-1"})

	require.NoError(t, err)
	assert.False(t, got.ArchiveUnderRoot())
	assert.False(t, got.Healthy())
}

func TestInspector_MissingFolder(t *testing.T) {
	inspector, _ := newTestInspector(t, map[string]map[string]any{
		"root-1": {"id": "root-1", "mimeType": domain.FolderMimeType},
	})

	_, err := inspector.Inspect(context.Background(), domain.ProvisionedFolders{RootFolderID: "root-1", ArchiveFolderID: "gone"})

	require.Error(t, err)
	assert.True(t, google.IsNotFound(err))
	assert.ErrorIs(t, err, google.ErrNotFound)
	assert.Contains(t, err.Error(), "archive folder gone")
}
