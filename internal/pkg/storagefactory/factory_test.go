package storagefactory

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"storyshot/internal/config"
)

func TestNewStorage(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		cfg      *config.StorageConfig
		wantErr  bool
		wantType string
	}{
		{
			name: "valid local storage config",
			cfg: &config.StorageConfig{
				Type:  "local",
				Local: &config.LocalConfig{BasePath: tmpDir, BaseURL: "http://localhost:7080/artifacts"},
			},
			wantType: "local",
		},
		{
			name:    "missing local config",
			cfg:     &config.StorageConfig{Type: "local"},
			wantErr: true,
		},
		{
			name:    "missing oss config",
			cfg:     &config.StorageConfig{Type: "oss"},
			wantErr: true,
		},
		{
			name:    "unsupported storage type",
			cfg:     &config.StorageConfig{Type: "s3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewStorage(context.Background(), tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewStorage() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStorage() unexpected error: %v", err)
			}
			if st.GetStorageType() != tt.wantType {
				t.Errorf("GetStorageType() = %v, want %v", st.GetStorageType(), tt.wantType)
			}
		})
	}
}

func TestLocalStorage_Operations(t *testing.T) {
	tmpDir := t.TempDir()
	baseURL := "http://localhost:7080/artifacts"

	ctx := context.Background()
	st, err := NewStorage(ctx, &config.StorageConfig{
		Type:  "local",
		Local: &config.LocalConfig{BasePath: tmpDir, BaseURL: baseURL},
	})
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	testKey := "runs/abc/shot_output_1min_anime.json"
	testContent := `[{"scene_number":1}]`

	url, err := st.Upload(ctx, testKey, strings.NewReader(testContent), "application/json")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if want := baseURL + "/" + testKey; url != want {
		t.Errorf("Upload() url = %v, want %v", url, want)
	}

	exists, err := st.Exists(ctx, testKey)
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v; want true, nil", exists, err)
	}

	reader, err := st.Download(ctx, testKey)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	got, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != testContent {
		t.Errorf("Download() content = %v, want %v", string(got), testContent)
	}

	presigned, err := st.GetPresignedDownloadURL(ctx, testKey, time.Hour)
	if err != nil {
		t.Fatalf("GetPresignedDownloadURL() error = %v", err)
	}
	if presigned != url {
		t.Errorf("GetPresignedDownloadURL() = %v, want %v", presigned, url)
	}

	if err := st.Delete(ctx, testKey); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	exists, err = st.Exists(ctx, testKey)
	if err != nil || exists {
		t.Errorf("Exists() after delete = %v, %v; want false, nil", exists, err)
	}

	// 删除不存在的文件应该成功
	if err := st.Delete(ctx, testKey); err != nil {
		t.Errorf("Delete() non-existent error = %v", err)
	}
}

func TestLocalStorage_KeyStaysInsideBasePath(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()
	st, err := NewStorage(ctx, &config.StorageConfig{
		Type:  "local",
		Local: &config.LocalConfig{BasePath: tmpDir},
	})
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	path, err := st.Upload(ctx, "../../escape.json", strings.NewReader("{}"), "application/json")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasPrefix(path, tmpDir) {
		t.Errorf("Upload() path = %v, want inside %v", path, tmpDir)
	}
	if filepath.Base(path) != "escape.json" {
		t.Errorf("Upload() base = %v, want escape.json", filepath.Base(path))
	}
}
