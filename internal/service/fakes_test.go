package service

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/models"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	mp4Bytes = append([]byte("\x00\x00\x00\x20ftypisom\x00\x00\x02\x00isomiso2avc1mp41"), make([]byte, 16)...)
)

type reviewKey struct {
	eventID int64
	userID  uuid.UUID
}

// fakeDB backs every fake repository. fail maps "table.Method" to an error.
type fakeDB struct {
	mu       sync.Mutex
	nextID   int64
	events   map[int64]models.Event
	photos   map[int64]models.Photo
	videos   map[int64]models.Video
	reviews  map[reviewKey]models.Review
	profiles map[uuid.UUID]models.Profile
	users    map[uuid.UUID]models.User
	fail     map[string]error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		events:   map[int64]models.Event{},
		photos:   map[int64]models.Photo{},
		videos:   map[int64]models.Video{},
		reviews:  map[reviewKey]models.Review{},
		profiles: map[uuid.UUID]models.Profile{},
		users:    map[uuid.UUID]models.User{},
		fail:     map[string]error{},
	}
}

func (db *fakeDB) id() int64 {
	db.nextID++
	return db.nextID
}

type fakeEventRepo struct{ db *fakeDB }

func (r fakeEventRepo) Create(ctx context.Context, tx *sql.Tx, e *models.Event) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail["events.Create"]; err != nil {
		return 0, err
	}
	e.ID = r.db.id()
	e.CreatedAt = time.Now()
	r.db.events[e.ID] = *e
	return e.ID, nil
}

func (r fakeEventRepo) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r fakeEventRepo) List(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Event, 0)
	for _, e := range r.db.events {
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.Event) int { return int(b.ID - a.ID) })
	return out, nil
}

func (r fakeEventRepo) UpdateStatus(ctx context.Context, id int64, status models.EventStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e := r.db.events[id]
	e.Status = status
	r.db.events[id] = e
	return nil
}

func (r fakeEventRepo) UpdateSchedule(ctx context.Context, id int64, start, end *time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e := r.db.events[id]
	e.DateStart, e.DateEnd = start, end
	r.db.events[id] = e
	return nil
}

func (r fakeEventRepo) UpdateCover(ctx context.Context, id int64, coverURL *string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e := r.db.events[id]
	e.CoverURL = coverURL
	r.db.events[id] = e
	return nil
}

func (r fakeEventRepo) ListCoverURLs(ctx context.Context) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []string
	for _, e := range r.db.events {
		if e.CoverURL != nil {
			out = append(out, *e.CoverURL)
		}
	}
	return out, nil
}

func (r fakeEventRepo) Remove(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail["events.Remove"]; err != nil {
		return err
	}
	delete(r.db.events, id)
	return nil
}

type fakePhotoRepo struct{ db *fakeDB }

func (r fakePhotoRepo) Create(ctx context.Context, p *models.Photo) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail["photos.Create"]; err != nil {
		return 0, err
	}
	p.ID = r.db.id()
	p.CreatedAt = time.Now()
	r.db.photos[p.ID] = *p
	return p.ID, nil
}

func (r fakePhotoRepo) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.photos[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r fakePhotoRepo) ListByEventID(ctx context.Context, eventID int64) ([]models.Photo, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Photo, 0)
	for _, p := range r.db.photos {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePhotoRepo) ListURLs(ctx context.Context) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []string
	for _, p := range r.db.photos {
		out = append(out, p.PhotoURL)
	}
	return out, nil
}

func (r fakePhotoRepo) Remove(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.photos, id)
	return nil
}

func (r fakePhotoRepo) RemoveByEventID(ctx context.Context, eventID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail["photos.RemoveByEventID"]; err != nil {
		return err
	}
	for id, p := range r.db.photos {
		if p.EventID == eventID {
			delete(r.db.photos, id)
		}
	}
	return nil
}

type fakeVideoRepo struct{ db *fakeDB }

func (r fakeVideoRepo) Create(ctx context.Context, v *models.Video) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v.ID = r.db.id()
	v.CreatedAt = time.Now()
	r.db.videos[v.ID] = *v
	return v.ID, nil
}

func (r fakeVideoRepo) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r fakeVideoRepo) ListByEventID(ctx context.Context, eventID int64) ([]models.Video, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Video, 0)
	for _, v := range r.db.videos {
		if v.EventID == eventID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r fakeVideoRepo) ListURLs(ctx context.Context) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []string
	for _, v := range r.db.videos {
		out = append(out, v.VideoURL)
	}
	return out, nil
}

func (r fakeVideoRepo) Remove(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.videos, id)
	return nil
}

func (r fakeVideoRepo) RemoveByEventID(ctx context.Context, eventID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, v := range r.db.videos {
		if v.EventID == eventID {
			delete(r.db.videos, id)
		}
	}
	return nil
}

type fakeReviewRepo struct{ db *fakeDB }

func (r fakeReviewRepo) Upsert(ctx context.Context, review *models.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := reviewKey{review.EventID, review.UserID}
	if existing, ok := r.db.reviews[key]; ok {
		review.ID = existing.ID
	} else {
		review.ID = r.db.id()
	}
	review.CreatedAt = time.Now()
	r.db.reviews[key] = *review
	return nil
}

func (r fakeReviewRepo) ListByEventID(ctx context.Context, eventID int64) ([]models.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Review, 0)
	for k, rv := range r.db.reviews {
		if k.eventID == eventID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r fakeReviewRepo) RemoveByEventID(ctx context.Context, eventID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for k := range r.db.reviews {
		if k.eventID == eventID {
			delete(r.db.reviews, k)
		}
	}
	return nil
}

type fakeProfileRepo struct{ db *fakeDB }

func (r fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r fakeProfileRepo) List(ctx context.Context) ([]models.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Profile, 0)
	for _, p := range r.db.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r fakeProfileRepo) UpsertDisplayName(ctx context.Context, id uuid.UUID, name *string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p := r.db.profiles[id]
	p.ID = id
	p.DisplayName = name
	r.db.profiles[id] = p
	return nil
}

func (r fakeProfileRepo) UpsertAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p := r.db.profiles[id]
	p.ID = id
	p.AvatarURL = &avatarURL
	r.db.profiles[id] = p
	return nil
}

type fakeUserRepo struct{ db *fakeDB }

func (r fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, false, nil
	}
	return &u, true, nil
}

func (r fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			return &u, true, nil
		}
	}
	return nil, false, nil
}

func (r fakeUserRepo) Create(ctx context.Context, tx *sql.Tx, u *models.User) (uuid.UUID, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.db.users[u.ID] = *u
	return u.ID, nil
}

const testPublicBase = "https://media.test"

type fakeStorage struct {
	mu         sync.Mutex
	objects    map[string][]byte
	modified   map[string]time.Time
	uploads    int
	failUpload error
	failRemove error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, modified: map[string]time.Time{}}
}

func (s *fakeStorage) Upload(ctx context.Context, bucket Bucket, path string, body []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpload != nil {
		return s.failUpload
	}
	s.uploads++
	s.objects[string(bucket)+"/"+path] = body
	s.modified[string(bucket)+"/"+path] = time.Now()
	return nil
}

func (s *fakeStorage) PublicURL(bucket Bucket, path string) string {
	return publicURL(testPublicBase, bucket, path)
}

func (s *fakeStorage) PathFromURL(bucket Bucket, url string) (string, bool) {
	return pathFromURL(testPublicBase, bucket, url)
}

func (s *fakeStorage) Remove(ctx context.Context, bucket Bucket, paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRemove != nil {
		return s.failRemove
	}
	for _, p := range paths {
		delete(s.objects, string(bucket)+"/"+p)
	}
	return nil
}

func (s *fakeStorage) List(ctx context.Context, bucket Bucket, prefix string) ([]StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	root := string(bucket) + "/"
	var out []StoredObject
	for k := range s.objects {
		if strings.HasPrefix(k, root+prefix) {
			out = append(out, StoredObject{Path: strings.TrimPrefix(k, root), LastModified: s.modified[k]})
		}
	}
	slices.SortFunc(out, func(a, b StoredObject) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}

func (s *fakeStorage) has(bucket Bucket, path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[string(bucket)+"/"+path]
	return ok
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

var errBoom = errors.New("boom")

type fixture struct {
	db      *fakeDB
	storage *fakeStorage
	events  EventService
	media   MediaService
	reviews ReviewService
	profile ProfileService
	user    uuid.UUID
}

func newFixture() *fixture {
	db := newFakeDB()
	storage := newFakeStorage()
	cleaner := NewStorageCleaner(storage)

	return &fixture{
		db:      db,
		storage: storage,
		events:  NewEventService(fakeEventRepo{db}, fakePhotoRepo{db}, fakeVideoRepo{db}, fakeReviewRepo{db}, fakeProfileRepo{db}, storage, cleaner),
		media:   NewMediaService(fakeEventRepo{db}, fakePhotoRepo{db}, fakeVideoRepo{db}, storage, cleaner),
		reviews: NewReviewService(fakeEventRepo{db}, fakeReviewRepo{db}),
		profile: NewProfileService(fakeProfileRepo{db}, storage, cleaner),
		user:    uuid.New(),
	}
}
