// file: internals/helpers/storage/supabase_client.go
package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Bucket tunggal untuk poster lomba, mengikuti skema Supabase Storage:
//   PUT    {SUPABASE_PROJECT_URL}/storage/v1/object/{bucket}/{path}
//   DELETE {SUPABASE_PROJECT_URL}/storage/v1/object/{bucket}/{path}
//   public {SUPABASE_PROJECT_URL}/storage/v1/object/public/{bucket}/{path}
const DefaultBucket = "competition-posters"

// Prefix folder untuk semua poster & gambar galeri
const PosterDir = "posters"

type SupabaseStorage struct {
	ProjectURL string
	ServiceKey string
	Bucket     string
	HTTP       *http.Client
}

func NewSupabaseStorageFromEnv() (*SupabaseStorage, error) {
	projectURL := strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_PROJECT_URL")), "/")
	serviceKey := strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))
	if projectURL == "" || serviceKey == "" {
		return nil, fmt.Errorf("SUPABASE_PROJECT_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}

	bucket := strings.TrimSpace(os.Getenv("SUPABASE_STORAGE_BUCKET"))
	if bucket == "" {
		bucket = DefaultBucket
	}

	return &SupabaseStorage{
		ProjectURL: projectURL,
		ServiceKey: serviceKey,
		Bucket:     bucket,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// GeneratePosterKey membuat object key unik: posters/{timestamp}-{random}{ext}
func GeneratePosterKey(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%d-%s%s", PosterDir, time.Now().UnixMilli(), randHex(4), ext)
}

// webpPosterKey membuat key untuk hasil re-encode: ekstensi asli
// (apapun kapitalisasinya, atau tanpa ekstensi sama sekali) diganti
// .webp sebelum key dibentuk.
func webpPosterKey(originalFilename string) string {
	base := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	return GeneratePosterKey(base + ".webp")
}

// Upload mengunggah bytes apa adanya ke path yang diberikan,
// lalu mengembalikan public URL-nya.
func (s *SupabaseStorage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty object path")
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.ProjectURL, s.Bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("gagal membuat request upload: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "public, max-age=31536000, immutable")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("gagal mengirim request upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload gagal status %d: %s", resp.StatusCode, string(body))
	}

	return s.PublicURL(path), nil
}

// UploadPoster: decode → downscale → re-encode WebP (kalau decodable),
// simpan di bawah posters/ dengan nama unik. Mengembalikan (publicURL, path).
func (s *SupabaseStorage) UploadPoster(ctx context.Context, filename string, data []byte) (string, string, error) {
	if s == nil {
		return "", "", fmt.Errorf("storage belum dikonfigurasi")
	}
	if len(data) == 0 {
		return "", "", fmt.Errorf("empty file")
	}

	webpData, err := ConvertToWebP(data, filename)
	if err == nil {
		path := webpPosterKey(filename)
		publicURL, err := s.Upload(ctx, path, "image/webp", webpData)
		if err != nil {
			return "", "", err
		}
		return publicURL, path, nil
	}

	// bukan format gambar yang dikenal → unggah apa adanya
	path := GeneratePosterKey(filename)
	publicURL, err := s.Upload(ctx, path, "", data)
	if err != nil {
		return "", "", err
	}
	return publicURL, path, nil
}

// Delete menghapus satu object; 404 dianggap sukses (sudah tidak ada).
func (s *SupabaseStorage) Delete(ctx context.Context, path string) error {
	if s == nil || path == "" {
		return nil
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.ProjectURL, s.Bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete gagal status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (s *SupabaseStorage) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	// object key selalu hasil GeneratePosterKey, tidak perlu di-escape
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.ProjectURL, s.Bucket, path)
}

// ExtractStoragePath mengambil object path dari public URL bucket ini.
func (s *SupabaseStorage) ExtractStoragePath(fullURL string) string {
	marker := fmt.Sprintf("/storage/v1/object/public/%s/", s.Bucket)
	parts := strings.SplitN(fullURL, marker, 2)
	if len(parts) == 2 {
		if p, err := url.PathUnescape(parts[1]); err == nil {
			return p
		}
		return parts[1]
	}
	return ""
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
