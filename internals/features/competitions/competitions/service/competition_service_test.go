package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"lombain_backend/internals/features/competitions/competitions/model"
	typeModel "lombain_backend/internals/features/competitions/types/model"
)

/* =======================================================
   Fakes in-memory (repo + storage)
======================================================= */

type fakeRepo struct {
	comps  map[uuid.UUID]*model.CompetitionModel
	pivots []model.CompetitionTypePivot
	images []model.CompetitionImageModel
	types  map[uuid.UUID]typeModel.CompetitionTypeModel

	failInsertTypeLinks bool
	failInsertImages    bool
	seq                 int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		comps: map[uuid.UUID]*model.CompetitionModel{},
		types: map[uuid.UUID]typeModel.CompetitionTypeModel{},
	}
}

func (r *fakeRepo) assemble(comp model.CompetitionModel) model.CompetitionModel {
	comp.Types = nil
	comp.Images = nil
	for _, p := range r.pivots {
		if p.CompetitionID == comp.ID {
			if t, ok := r.types[p.TypeID]; ok {
				comp.Types = append(comp.Types, t)
			}
		}
	}
	for _, img := range r.images {
		if img.CompetitionID == comp.ID {
			comp.Images = append(comp.Images, img)
		}
	}
	sort.Slice(comp.Images, func(i, j int) bool { return comp.Images[i].Order < comp.Images[j].Order })
	return comp
}

func (r *fakeRepo) ListAggregates(ctx context.Context) ([]model.CompetitionModel, error) {
	var out []model.CompetitionModel
	for _, comp := range r.comps {
		out = append(out, r.assemble(*comp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) FindAggregate(ctx context.Context, id uuid.UUID) (*model.CompetitionModel, error) {
	comp, ok := r.comps[id]
	if !ok {
		return nil, ErrNotFound
	}
	full := r.assemble(*comp)
	return &full, nil
}

func (r *fakeRepo) Insert(ctx context.Context, comp *model.CompetitionModel) error {
	comp.ID = uuid.New()
	r.seq++
	comp.CreatedAt = time.Unix(int64(r.seq), 0)
	stored := *comp
	r.comps[comp.ID] = &stored
	return nil
}

func (r *fakeRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	comp, ok := r.comps[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "title":
			comp.Title = value.(string)
		case "description":
			comp.Description = value.(string)
		case "category":
			comp.Category = value.(string)
		case "location":
			comp.Location, _ = value.(*string)
		case "deadline":
			comp.Deadline = value.(datatypes.Date)
		case "link":
			comp.Link = value.(string)
		case "is_priority":
			comp.IsPriority = value.(bool)
		case "image_url":
			comp.ImageURL = value.(string)
		case "image_path":
			comp.ImagePath, _ = value.(*string)
		case "image_source":
			comp.ImageSource = value.(string)
		}
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.comps, id)
	// cascade
	var pivots []model.CompetitionTypePivot
	for _, p := range r.pivots {
		if p.CompetitionID != id {
			pivots = append(pivots, p)
		}
	}
	r.pivots = pivots
	var images []model.CompetitionImageModel
	for _, img := range r.images {
		if img.CompetitionID != id {
			images = append(images, img)
		}
	}
	r.images = images
	return nil
}

func (r *fakeRepo) InsertTypeLinks(ctx context.Context, id uuid.UUID, typeIDs []uuid.UUID) error {
	if r.failInsertTypeLinks {
		return errors.New("pivot insert rejected")
	}
	for _, typeID := range typeIDs {
		r.pivots = append(r.pivots, model.CompetitionTypePivot{CompetitionID: id, TypeID: typeID})
	}
	return nil
}

func (r *fakeRepo) DeleteTypeLinks(ctx context.Context, id uuid.UUID) error {
	var pivots []model.CompetitionTypePivot
	for _, p := range r.pivots {
		if p.CompetitionID != id {
			pivots = append(pivots, p)
		}
	}
	r.pivots = pivots
	return nil
}

func (r *fakeRepo) InsertImages(ctx context.Context, rows []model.CompetitionImageModel) error {
	if r.failInsertImages {
		return errors.New("image insert rejected")
	}
	for _, row := range rows {
		row.ID = uuid.New()
		r.images = append(r.images, row)
	}
	return nil
}

func (r *fakeRepo) DeleteImages(ctx context.Context, competitionID uuid.UUID) error {
	var images []model.CompetitionImageModel
	for _, img := range r.images {
		if img.CompetitionID != competitionID {
			images = append(images, img)
		}
	}
	r.images = images
	return nil
}

func (r *fakeRepo) ListTypes(ctx context.Context) ([]typeModel.CompetitionTypeModel, error) {
	var out []typeModel.CompetitionTypeModel
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) InsertType(ctx context.Context, t *typeModel.CompetitionTypeModel) error {
	t.ID = uuid.New()
	r.types[t.ID] = *t
	return nil
}

func (r *fakeRepo) UpdateType(ctx context.Context, id uuid.UUID, name string) error {
	t, ok := r.types[id]
	if !ok {
		return ErrNotFound
	}
	t.Name = name
	r.types[id] = t
	return nil
}

func (r *fakeRepo) DeleteType(ctx context.Context, id uuid.UUID) error {
	delete(r.types, id)
	return nil
}

func (r *fakeRepo) CountTypeLinks(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.pivots {
		if p.TypeID == typeID {
			count++
		}
	}
	return count, nil
}

// fakeStorage dipanggil dari goroutine errgroup, jadi perlu mutex.
type fakeStorage struct {
	mu         sync.Mutex
	uploads    []string
	deletes    []string
	failUpload bool
	failDelete bool
}

func (s *fakeStorage) UploadPoster(ctx context.Context, filename string, data []byte) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpload {
		return "", "", errors.New("bucket unavailable")
	}
	path := fmt.Sprintf("posters/%d-%s", len(s.uploads), filename)
	s.uploads = append(s.uploads, path)
	return "https://cdn.test/" + path, path, nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, path)
	if s.failDelete {
		return errors.New("object locked")
	}
	return nil
}

/* =======================================================
   Helpers
======================================================= */

func newTestService() (*CompetitionService, *fakeRepo, *fakeStorage) {
	repo := newFakeRepo()
	storage := &fakeStorage{}
	svc := NewCompetitionService(repo, storage)
	svc.Now = func() time.Time { return time.Date(2025, time.June, 15, 10, 30, 0, 0, time.Local) }
	return svc, repo, storage
}

func seedType(repo *fakeRepo, name string) uuid.UUID {
	t := typeModel.CompetitionTypeModel{Name: name}
	_ = repo.InsertType(context.Background(), &t)
	return t.ID
}

func basicFields(deadline time.Time) CompetitionFields {
	return CompetitionFields{
		Title:       "Lomba Esai Nasional",
		Description: "Lomba esai untuk mahasiswa",
		Category:    model.CategoryExternal,
		Deadline:    deadline,
		Link:        "https://example.com/daftar",
	}
}

func urlImage(value string) ImageInput {
	return ImageInput{SourceType: model.ImageSourceURL, Value: value}
}

func fileImage(name string) ImageInput {
	return ImageInput{SourceType: model.ImageSourceFile, Filename: name, FileBytes: []byte("fake-image")}
}

/* =======================================================
   Scenario A: create polos (tanpa gambar, tanpa bidang)
======================================================= */

func TestCreate_Basic(t *testing.T) {
	svc, _, _ := newTestService()
	today := svc.Now()

	comp, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(today.AddDate(0, 0, 10)),
		PrimaryImage: urlImage("https://example.com/poster.png"),
	})
	if err != nil {
		t.Fatalf("Create gagal: %v", err)
	}

	list, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll gagal: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("jumlah lomba = %d, want 1", len(list))
	}
	if len(list[0].Types) != 0 {
		t.Errorf("bidang harus kosong, dapat %d", len(list[0].Types))
	}
	if len(list[0].Images) != 0 {
		t.Errorf("galeri harus kosong, dapat %d", len(list[0].Images))
	}

	if !model.IsVisible(comp.DeadlineTime(), today) {
		t.Error("lomba baru dengan deadline +10 hari harus visible")
	}
	if got := model.ClassifyStatus(comp.DeadlineTime(), today); got.Code != model.StatusActive {
		t.Errorf("status = %s, want %s", got.Code, model.StatusActive)
	}
	if comp.ImageSource != model.ImageSourceURL {
		t.Errorf("image_source = %s, want url", comp.ImageSource)
	}
	if comp.ImagePath != nil {
		t.Error("poster dari URL tidak boleh punya image_path")
	}
}

/* =======================================================
   Scenario B: create dengan 2 bidang + 2 gambar galeri
======================================================= */

func TestCreate_WithTypesAndImages(t *testing.T) {
	svc, repo, storage := newTestService()
	idDesain := seedType(repo, "Desain")
	idTeknologi := seedType(repo, "Teknologi")

	comp, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 7)),
		PrimaryImage: fileImage("poster.jpg"),
		AdditionalImages: []ImageInput{
			urlImage("https://example.com/slide-luar.png"),
			fileImage("slide-upload.png"),
		},
		TypeIDs: []uuid.UUID{idDesain, idTeknologi},
	})
	if err != nil {
		t.Fatalf("Create gagal: %v", err)
	}

	if len(comp.Types) != 2 {
		t.Fatalf("jumlah bidang = %d, want 2", len(comp.Types))
	}
	if len(comp.Images) != 2 {
		t.Fatalf("jumlah gambar galeri = %d, want 2", len(comp.Images))
	}

	// urutan galeri harus ikut index payload
	if comp.Images[0].Order != 0 || comp.Images[1].Order != 1 {
		t.Errorf("order galeri = %d,%d, want 0,1", comp.Images[0].Order, comp.Images[1].Order)
	}
	if comp.Images[0].Source != model.ImageSourceURL {
		t.Errorf("gambar pertama source = %s, want url", comp.Images[0].Source)
	}
	if comp.Images[1].Source != model.ImageSourceFile {
		t.Errorf("gambar kedua source = %s, want file", comp.Images[1].Source)
	}
	if comp.Images[1].Path == nil || *comp.Images[1].Path == "" {
		t.Error("gambar upload harus menyimpan object path")
	}

	// poster + 1 gambar file = 2 upload
	if len(storage.uploads) != 2 {
		t.Errorf("jumlah upload = %d, want 2", len(storage.uploads))
	}
	if comp.ImagePath == nil {
		t.Error("poster upload harus menyimpan image_path")
	}
}

/* =======================================================
   Scenario C: update bidang [A,B] → [B,C] (full replace)
======================================================= */

func TestUpdate_ReplaceTypeLinks(t *testing.T) {
	svc, repo, _ := newTestService()
	idA := seedType(repo, "A-Akademik")
	idB := seedType(repo, "B-Bisnis")
	idC := seedType(repo, "C-Coding")

	comp, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 7)),
		PrimaryImage: urlImage("https://example.com/poster.png"),
		TypeIDs:      []uuid.UUID{idA, idB},
	})
	if err != nil {
		t.Fatalf("Create gagal: %v", err)
	}

	newTypes := []uuid.UUID{idB, idC}
	updated, err := svc.Update(context.Background(), comp.ID, UpdateCompetitionPayload{
		Fields:  basicFields(svc.Now().AddDate(0, 0, 7)),
		TypeIDs: &newTypes,
	})
	if err != nil {
		t.Fatalf("Update gagal: %v", err)
	}

	if len(updated.Types) != 2 {
		t.Fatalf("jumlah bidang = %d, want 2", len(updated.Types))
	}
	got := map[uuid.UUID]bool{}
	for _, ty := range updated.Types {
		got[ty.ID] = true
	}
	if !got[idB] || !got[idC] || got[idA] {
		t.Errorf("bidang hasil update salah: %v (want tepat B dan C)", got)
	}
}

/* =======================================================
   Scenario D: delete lomba dengan 3 object storage
======================================================= */

func TestDelete_RemovesStorageObjects(t *testing.T) {
	svc, repo, storage := newTestService()

	comp, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 7)),
		PrimaryImage: fileImage("poster.jpg"),
		AdditionalImages: []ImageInput{
			fileImage("slide-1.png"),
			fileImage("slide-2.png"),
		},
	})
	if err != nil {
		t.Fatalf("Create gagal: %v", err)
	}

	if err := svc.Delete(context.Background(), comp.ID); err != nil {
		t.Fatalf("Delete gagal: %v", err)
	}

	if len(storage.deletes) != 3 {
		t.Errorf("jumlah delete storage = %d, want 3 (poster + 2 galeri)", len(storage.deletes))
	}

	if _, err := svc.Get(context.Background(), comp.ID); err != ErrNotFound {
		t.Errorf("Get setelah delete = %v, want ErrNotFound", err)
	}
	if len(repo.pivots) != 0 || len(repo.images) != 0 {
		t.Error("pivot/gambar harus ikut terhapus (cascade)")
	}
}

/* =======================================================
   Scenario E: deadline +3 hari → CLOSING_SOON, bukan ACTIVE
======================================================= */

func TestCreate_DeadlineBoundaryClosingSoon(t *testing.T) {
	svc, _, _ := newTestService()
	today := svc.Now()

	comp, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(today.AddDate(0, 0, 3)),
		PrimaryImage: urlImage("https://example.com/poster.png"),
	})
	if err != nil {
		t.Fatalf("Create gagal: %v", err)
	}

	if got := model.ClassifyStatus(comp.DeadlineTime(), today); got.Code != model.StatusClosingSoon {
		t.Errorf("status deadline +3 hari = %s, want %s", got.Code, model.StatusClosingSoon)
	}
}

/* =======================================================
   Partial state & error semantics
======================================================= */

func TestCreate_PivotFailureLeavesCompetitionRow(t *testing.T) {
	svc, repo, _ := newTestService()
	idDesain := seedType(repo, "Desain")
	repo.failInsertTypeLinks = true

	_, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 7)),
		PrimaryImage: urlImage("https://example.com/poster.png"),
		TypeIDs:      []uuid.UUID{idDesain},
	})
	if err == nil {
		t.Fatal("Create harus gagal saat pivot insert gagal")
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Errorf("error = %T, want *PersistenceError", err)
	}

	// row lomba sudah commit dan TIDAK di-rollback
	if len(repo.comps) != 1 {
		t.Errorf("row lomba = %d, want 1 (partial state dibiarkan)", len(repo.comps))
	}
}

func TestCreate_UploadFailureAbortsBeforeInsert(t *testing.T) {
	svc, repo, storage := newTestService()
	storage.failUpload = true

	_, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 7)),
		PrimaryImage: fileImage("poster.jpg"),
	})
	if err == nil {
		t.Fatal("Create harus gagal saat upload poster gagal")
	}
	var se *StorageError
	if !errors.As(err, &se) {
		t.Errorf("error = %T, want *StorageError", err)
	}
	if len(repo.comps) != 0 {
		t.Error("upload gagal sebelum insert: tidak boleh ada row lomba")
	}
}

func TestUpdate_DeletedPathsBestEffort(t *testing.T) {
	svc, _, storage := newTestService()

	comp, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 7)),
		PrimaryImage: urlImage("https://example.com/poster.png"),
	})
	if err != nil {
		t.Fatalf("Create gagal: %v", err)
	}

	// delete storage gagal → update tetap jalan
	storage.failDelete = true
	_, err = svc.Update(context.Background(), comp.ID, UpdateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 14)),
		DeletedPaths: []string{"posters/usang-1.webp", "posters/usang-2.webp"},
	})
	if err != nil {
		t.Fatalf("Update harus sukses walau delete storage gagal: %v", err)
	}
	if len(storage.deletes) != 2 {
		t.Errorf("delete storage dipanggil %d kali, want 2", len(storage.deletes))
	}
}

func TestUpdate_ReplaceImagesFully(t *testing.T) {
	svc, repo, _ := newTestService()

	comp, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 7)),
		PrimaryImage: urlImage("https://example.com/poster.png"),
		AdditionalImages: []ImageInput{
			urlImage("https://example.com/lama-1.png"),
			urlImage("https://example.com/lama-2.png"),
		},
	})
	if err != nil {
		t.Fatalf("Create gagal: %v", err)
	}

	newImages := []ImageInput{urlImage("https://example.com/baru.png")}
	updated, err := svc.Update(context.Background(), comp.ID, UpdateCompetitionPayload{
		Fields:           basicFields(svc.Now().AddDate(0, 0, 7)),
		AdditionalImages: &newImages,
	})
	if err != nil {
		t.Fatalf("Update gagal: %v", err)
	}

	if len(updated.Images) != 1 {
		t.Fatalf("jumlah gambar setelah replace = %d, want 1", len(updated.Images))
	}
	if updated.Images[0].URL != "https://example.com/baru.png" {
		t.Errorf("url gambar = %s", updated.Images[0].URL)
	}
	if len(repo.images) != 1 {
		t.Errorf("row gambar tersisa = %d, want 1", len(repo.images))
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), UpdateCompetitionPayload{
		Fields: basicFields(svc.Now().AddDate(0, 0, 7)),
	})
	if err != ErrNotFound {
		t.Errorf("Update id asing = %v, want ErrNotFound", err)
	}
}

/* =======================================================
   Listing publik (visibility filter)
======================================================= */

func TestListVisible_FiltersExpired(t *testing.T) {
	svc, _, _ := newTestService()
	today := svc.Now()

	deadlines := []time.Time{
		today.AddDate(0, 0, 10), // visible
		today.AddDate(0, 0, -2), // masa tenggang, masih visible
		today.AddDate(0, 0, -3), // sudah hilang
	}
	for i, deadline := range deadlines {
		fields := basicFields(deadline)
		fields.Title = fmt.Sprintf("Lomba %d", i)
		if _, err := svc.Create(context.Background(), CreateCompetitionPayload{
			Fields:       fields,
			PrimaryImage: urlImage("https://example.com/poster.png"),
		}); err != nil {
			t.Fatalf("Create gagal: %v", err)
		}
	}

	visible, err := svc.ListVisible(context.Background())
	if err != nil {
		t.Fatalf("ListVisible gagal: %v", err)
	}
	if len(visible) != 2 {
		t.Errorf("lomba visible = %d, want 2", len(visible))
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll gagal: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin tetap lihat semua: %d, want 3", len(all))
	}
}

/* =======================================================
   Manajemen bidang
======================================================= */

func TestDeleteType_InUseConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	idDesain := seedType(repo, "Desain")

	if _, err := svc.Create(context.Background(), CreateCompetitionPayload{
		Fields:       basicFields(svc.Now().AddDate(0, 0, 7)),
		PrimaryImage: urlImage("https://example.com/poster.png"),
		TypeIDs:      []uuid.UUID{idDesain},
	}); err != nil {
		t.Fatalf("Create gagal: %v", err)
	}

	if _, err := svc.DeleteType(context.Background(), idDesain); err != ErrTypeInUse {
		t.Errorf("DeleteType bidang terpakai = %v, want ErrTypeInUse", err)
	}

	types, err := svc.ListTypes(context.Background())
	if err != nil {
		t.Fatalf("ListTypes gagal: %v", err)
	}
	if len(types) != 1 {
		t.Errorf("bidang tidak boleh ikut terhapus: %d, want 1", len(types))
	}
}

func TestTypeCRUD_RefetchesList(t *testing.T) {
	svc, _, _ := newTestService()

	list, err := svc.AddType(context.Background(), "Desain")
	if err != nil {
		t.Fatalf("AddType gagal: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Desain" {
		t.Fatalf("list setelah add = %+v", list)
	}

	list, err = svc.RenameType(context.Background(), list[0].ID, "Desain Grafis")
	if err != nil {
		t.Fatalf("RenameType gagal: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Desain Grafis" {
		t.Fatalf("list setelah rename = %+v", list)
	}

	list, err = svc.DeleteType(context.Background(), list[0].ID)
	if err != nil {
		t.Fatalf("DeleteType gagal: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list setelah delete = %+v", list)
	}
}
