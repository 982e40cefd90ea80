package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"lombain_backend/internals/features/competitions/competitions/model"
)

// CompetitionService mengorkestrasi penulisan agregat lomba
// (row lomba + pivot bidang + gambar galeri + object storage) sebagai
// rangkaian langkah berurutan. Store tidak menyediakan transaksi
// multi-tabel lintas storage: langkah yang gagal menghentikan langkah
// berikutnya tapi TIDAK me-rollback langkah yang sudah commit.
type CompetitionService struct {
	Repo    CompetitionRepository
	Storage ImageStorage
	Now     func() time.Time // injectable untuk test
}

func NewCompetitionService(repo CompetitionRepository, storage ImageStorage) *CompetitionService {
	return &CompetitionService{
		Repo:    repo,
		Storage: storage,
		Now:     time.Now,
	}
}

/* =======================================================
   Reads (read-through, tanpa cache)
======================================================= */

func (s *CompetitionService) ListAll(ctx context.Context) ([]model.CompetitionModel, error) {
	return s.Repo.ListAggregates(ctx)
}

// ListVisible menyaring lomba yang masih tampil publik
// (deadline + masa tenggang 2 hari, inklusif).
func (s *CompetitionService) ListVisible(ctx context.Context) ([]model.CompetitionModel, error) {
	comps, err := s.Repo.ListAggregates(ctx)
	if err != nil {
		return nil, err
	}
	today := s.Now()
	visible := make([]model.CompetitionModel, 0, len(comps))
	for _, comp := range comps {
		if model.IsVisible(comp.DeadlineTime(), today) {
			visible = append(visible, comp)
		}
	}
	return visible, nil
}

func (s *CompetitionService) Get(ctx context.Context, id uuid.UUID) (*model.CompetitionModel, error) {
	return s.Repo.FindAggregate(ctx, id)
}

/* =======================================================
   Create
======================================================= */

func (s *CompetitionService) Create(ctx context.Context, p CreateCompetitionPayload) (*model.CompetitionModel, error) {
	// 1. Resolve poster utama (upload kalau source=file)
	primaryURL, primaryPath, err := s.resolveImage(ctx, p.PrimaryImage)
	if err != nil {
		return nil, err
	}

	// 2. Insert row lomba (id & created_at diisi store)
	comp := &model.CompetitionModel{
		Title:       p.Fields.Title,
		Description: p.Fields.Description,
		Category:    p.Fields.Category,
		Location:    p.Fields.Location,
		Deadline:    datatypes.Date(p.Fields.Deadline),
		Link:        p.Fields.Link,
		IsPriority:  p.Fields.IsPriority,
		ImageURL:    primaryURL,
		ImagePath:   primaryPath,
		ImageSource: imageSourceOf(p.PrimaryImage),
	}
	if err := s.Repo.Insert(ctx, comp); err != nil {
		return nil, &PersistenceError{Op: "insert competition", Err: err}
	}

	// 3. Pivot bidang. Gagal di sini = lomba sudah tersimpan tanpa
	// bidang (partial state yang disadari, tanpa kompensasi).
	if len(p.TypeIDs) > 0 {
		if err := s.Repo.InsertTypeLinks(ctx, comp.ID, p.TypeIDs); err != nil {
			return nil, &PersistenceError{Op: "insert type links", Err: err}
		}
	}

	// 4. Gambar galeri: upload paralel, insert batch setelah semua beres
	if len(p.AdditionalImages) > 0 {
		rows, err := s.resolveAdditionalImages(ctx, comp.ID, p.AdditionalImages)
		if err != nil {
			return nil, err
		}
		if err := s.Repo.InsertImages(ctx, rows); err != nil {
			return nil, &PersistenceError{Op: "insert images", Err: err}
		}
	}

	// 5. Re-fetch agregat supaya caller melihat hasil tulisannya sendiri
	return s.Repo.FindAggregate(ctx, comp.ID)
}

/* =======================================================
   Update
======================================================= */

func (s *CompetitionService) Update(ctx context.Context, id uuid.UUID, p UpdateCompetitionPayload) (*model.CompetitionModel, error) {
	// 1. Hapus dulu object lama yang sudah dilepas caller (best-effort)
	s.deletePathsBestEffort(ctx, p.DeletedPaths)

	// 2. Field skalar + poster utama (opsional)
	fields := map[string]any{
		"title":       p.Fields.Title,
		"description": p.Fields.Description,
		"category":    p.Fields.Category,
		"location":    p.Fields.Location,
		"deadline":    datatypes.Date(p.Fields.Deadline),
		"link":        p.Fields.Link,
		"is_priority": p.Fields.IsPriority,
	}
	if p.PrimaryImage != nil {
		url, path, err := s.resolveImage(ctx, *p.PrimaryImage)
		if err != nil {
			return nil, err
		}
		fields["image_url"] = url
		fields["image_path"] = path
		fields["image_source"] = imageSourceOf(*p.PrimaryImage)
	}
	if err := s.Repo.UpdateFields(ctx, id, fields); err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, &PersistenceError{Op: "update competition", Err: err}
	}

	// 3. Bidang: full replace (set kosong ⇒ lomba tanpa bidang)
	if p.TypeIDs != nil {
		if err := s.Repo.DeleteTypeLinks(ctx, id); err != nil {
			return nil, &PersistenceError{Op: "delete type links", Err: err}
		}
		if err := s.Repo.InsertTypeLinks(ctx, id, *p.TypeIDs); err != nil {
			return nil, &PersistenceError{Op: "insert type links", Err: err}
		}
	}

	// 4. Galeri: full replace
	if p.AdditionalImages != nil {
		if err := s.Repo.DeleteImages(ctx, id); err != nil {
			return nil, &PersistenceError{Op: "delete images", Err: err}
		}
		rows, err := s.resolveAdditionalImages(ctx, id, *p.AdditionalImages)
		if err != nil {
			return nil, err
		}
		if err := s.Repo.InsertImages(ctx, rows); err != nil {
			return nil, &PersistenceError{Op: "insert images", Err: err}
		}
	}

	// 5. Re-fetch
	return s.Repo.FindAggregate(ctx, id)
}

/* =======================================================
   Delete
======================================================= */

func (s *CompetitionService) Delete(ctx context.Context, id uuid.UUID) error {
	// 1. Ambil agregat untuk mengumpulkan semua object path
	comp, err := s.Repo.FindAggregate(ctx, id)
	if err != nil {
		return err
	}

	// 2. Hapus object storage best-effort paralel; satu path gagal
	// tidak membatalkan sisanya (row-nya toh akan hilang)
	s.deletePathsBestEffort(ctx, comp.StoragePaths())

	// 3. Hapus row; pivot & gambar ikut lewat cascade
	if err := s.Repo.Delete(ctx, id); err != nil {
		return &PersistenceError{Op: "delete competition", Err: err}
	}
	return nil
}

/* =======================================================
   Internal
======================================================= */

// resolveImage mengubah satu ImageInput menjadi (url, path):
// file → upload ke storage dengan key unik; url → dipakai langsung.
func (s *CompetitionService) resolveImage(ctx context.Context, in ImageInput) (string, *string, error) {
	if in.SourceType == model.ImageSourceFile && len(in.FileBytes) > 0 {
		url, path, err := s.Storage.UploadPoster(ctx, in.Filename, in.FileBytes)
		if err != nil {
			return "", nil, &StorageError{Op: "upload", Path: in.Filename, Err: err}
		}
		return url, &path, nil
	}
	return strings.TrimSpace(in.Value), in.Path, nil
}

// resolveAdditionalImages resolve galeri secara concurrent (errgroup),
// urutan dipertahankan lewat index; hanya row dengan URL terisi yang
// dikembalikan untuk di-insert sekali batch.
func (s *CompetitionService) resolveAdditionalImages(ctx context.Context, competitionID uuid.UUID, inputs []ImageInput) ([]model.CompetitionImageModel, error) {
	if len(inputs) > MaxAdditionalImages {
		inputs = inputs[:MaxAdditionalImages]
	}

	resolved := make([]model.CompetitionImageModel, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			url, path, err := s.resolveImage(gctx, in)
			if err != nil {
				return err
			}
			resolved[i] = model.CompetitionImageModel{
				CompetitionID: competitionID,
				URL:           url,
				Path:          path,
				Source:        imageSourceOf(in),
				Order:         i,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]model.CompetitionImageModel, 0, len(resolved))
	for _, row := range resolved {
		if row.URL != "" {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *CompetitionService) deletePathsBestEffort(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	var g errgroup.Group
	for _, path := range paths {
		if path == "" {
			continue
		}
		g.Go(func() error {
			if err := s.Storage.Delete(ctx, path); err != nil {
				log.Printf("[WARN] gagal hapus object %s: %v", path, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func imageSourceOf(in ImageInput) string {
	if in.SourceType == model.ImageSourceFile {
		return model.ImageSourceFile
	}
	return model.ImageSourceURL
}
