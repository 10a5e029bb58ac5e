package posts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"Compass/internal/core/blobs"
	"Compass/internal/core/likes"
	"Compass/internal/core/photos"
	"Compass/internal/core/themes"
	"Compass/internal/core/users"
)

// memoryStore is an in-memory stand-in for the database. WithinTx snapshots
// every table and restores the snapshot when fn fails, like a rollback.
type memoryStore struct {
	users      map[int64]*users.User
	themes     map[int64]*themes.Theme
	posts      map[int64]*Post
	photos     map[int64]*photos.Photo
	postPhotos map[int64]*photos.PostPhoto
	likes      map[int64][]*likes.Like
	comments   map[int64]int
	nextID     int64
	mu         sync.Mutex
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[int64]*users.User),
		themes:     make(map[int64]*themes.Theme),
		posts:      make(map[int64]*Post),
		photos:     make(map[int64]*photos.Photo),
		postPhotos: make(map[int64]*photos.PostPhoto),
		likes:      make(map[int64][]*likes.Like),
		comments:   make(map[int64]int),
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryStore) repos() Repositories {
	return Repositories{
		Posts:  &memoryPostRepo{m},
		Photos: &memoryPhotoRepo{m},
		Themes: &memoryThemeRepo{m},
		Users:  &memoryUserRepo{m},
	}
}

type snapshot struct {
	posts      map[int64]Post
	photos     map[int64]photos.Photo
	postPhotos map[int64]photos.PostPhoto
	nextID     int64
}

func (m *memoryStore) snapshot() snapshot {
	s := snapshot{
		posts:      make(map[int64]Post, len(m.posts)),
		photos:     make(map[int64]photos.Photo, len(m.photos)),
		postPhotos: make(map[int64]photos.PostPhoto, len(m.postPhotos)),
		nextID:     m.nextID,
	}
	for k, v := range m.posts {
		s.posts[k] = *v
	}
	for k, v := range m.photos {
		s.photos[k] = *v
	}
	for k, v := range m.postPhotos {
		s.postPhotos[k] = *v
	}
	return s
}

func (m *memoryStore) restore(s snapshot) {
	m.posts = make(map[int64]*Post, len(s.posts))
	for k, v := range s.posts {
		v := v
		m.posts[k] = &v
	}
	m.photos = make(map[int64]*photos.Photo, len(s.photos))
	for k, v := range s.photos {
		v := v
		m.photos[k] = &v
	}
	m.postPhotos = make(map[int64]*photos.PostPhoto, len(s.postPhotos))
	for k, v := range s.postPhotos {
		v := v
		m.postPhotos[k] = &v
	}
	m.nextID = s.nextID
}

func (m *memoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.snapshot()
	if err := fn(ctx, m.repos()); err != nil {
		m.restore(s)
		return err
	}
	return nil
}

func (m *memoryStore) CountByPostID(ctx context.Context, postID int64) (int, error) {
	return m.comments[postID], nil
}

func (m *memoryStore) postPhotosOf(postID int64) []*photos.PostPhoto {
	var list []*photos.PostPhoto
	for _, pp := range m.postPhotos {
		if pp.PostID == postID {
			cp := *pp
			cp.StoreFileURL = m.photos[pp.PhotoID].StoreFileURL
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

type memoryPostRepo struct{ m *memoryStore }

func (r *memoryPostRepo) Create(ctx context.Context, post *Post) error {
	if _, ok := r.m.users[post.UserID]; !ok {
		return errors.New("fk violation: user")
	}
	post.ID = r.m.id()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	cp := *post
	cp.Photos = nil
	r.m.posts[post.ID] = &cp
	return nil
}

func (r *memoryPostRepo) GetByID(ctx context.Context, id int64) (*Post, error) {
	p, ok := r.m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memoryPostRepo) GetByIDForUpdate(ctx context.Context, id int64) (*Post, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryPostRepo) GetWithLikes(ctx context.Context, id int64) (*Post, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Likes = r.m.likes[id]
	return p, nil
}

func (r *memoryPostRepo) Update(ctx context.Context, post *Post) error {
	if _, ok := r.m.posts[post.ID]; !ok {
		return ErrNotFound
	}
	post.UpdatedAt = time.Now()
	cp := *post
	cp.Photos = nil
	r.m.posts[post.ID] = &cp
	return nil
}

func (r *memoryPostRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.m.posts[id]; !ok {
		return ErrNotFound
	}
	for _, pp := range r.m.postPhotos {
		if pp.PostID == id {
			return errors.New("fk violation: post_photos")
		}
	}
	delete(r.m.posts, id)
	delete(r.m.likes, id)
	delete(r.m.comments, id)
	return nil
}

type memoryPhotoRepo struct{ m *memoryStore }

func (r *memoryPhotoRepo) CreatePhoto(ctx context.Context, photo *photos.Photo) error {
	photo.ID = r.m.id()
	photo.CreatedAt = time.Now()
	cp := *photo
	r.m.photos[photo.ID] = &cp
	return nil
}

func (r *memoryPhotoRepo) Attach(ctx context.Context, pp *photos.PostPhoto) error {
	if _, ok := r.m.posts[pp.PostID]; !ok {
		return errors.New("fk violation: post")
	}
	pp.ID = r.m.id()
	cp := *pp
	r.m.postPhotos[pp.ID] = &cp
	return nil
}

func (r *memoryPhotoRepo) ListByPostID(ctx context.Context, postID int64) ([]*photos.PostPhoto, error) {
	return r.m.postPhotosOf(postID), nil
}

func (r *memoryPhotoRepo) ListURLsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string)
	for _, id := range postIDs {
		if list := r.m.postPhotosOf(id); len(list) > 0 {
			out[id] = photos.URLs(list)
		}
	}
	return out, nil
}

func (r *memoryPhotoRepo) DetachByIDs(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.m.postPhotos[id]; ok {
			delete(r.m.postPhotos, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryPhotoRepo) DetachByPostID(ctx context.Context, postID int64) (int64, error) {
	return r.DetachByIDs(ctx, photos.IDs(r.m.postPhotosOf(postID)))
}

type memoryThemeRepo struct{ m *memoryStore }

func (r *memoryThemeRepo) Create(ctx context.Context, theme *themes.Theme) error {
	theme.ID = r.m.id()
	r.m.themes[theme.ID] = theme
	return nil
}

func (r *memoryThemeRepo) GetByID(ctx context.Context, id int64) (*themes.Theme, error) {
	t, ok := r.m.themes[id]
	if !ok {
		return nil, themes.ErrThemeNotFound
	}
	return t, nil
}

func (r *memoryThemeRepo) GetByName(ctx context.Context, name string) (*themes.Theme, error) {
	for _, t := range r.m.themes {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, themes.ErrThemeNotFound
}

func (r *memoryThemeRepo) List(ctx context.Context) ([]*themes.Theme, error) {
	list := make([]*themes.Theme, 0, len(r.m.themes))
	for _, t := range r.m.themes {
		list = append(list, t)
	}
	return list, nil
}

type memoryUserRepo struct{ m *memoryStore }

func (r *memoryUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	user.ID = r.m.id()
	r.m.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	u, ok := r.m.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, users.ErrUserNotFound
}

func (r *memoryUserRepo) UpdateProfile(ctx context.Context, user *users.User) error {
	if _, ok := r.m.users[user.ID]; !ok {
		return users.ErrUserNotFound
	}
	r.m.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) GetProfileStats(ctx context.Context, id int64) (*users.ProfileStats, error) {
	return &users.ProfileStats{}, nil
}

// fakeBlobService hands out sequential URLs and can fail on a chosen call
type fakeBlobService struct {
	failOn  int
	failErr error
	calls   int
}

func (f *fakeBlobService) Upload(ctx context.Context, userID int64, file blobs.File) (*blobs.StoredBlob, error) {
	f.calls++
	if f.failOn > 0 && f.calls == f.failOn {
		return nil, f.failErr
	}
	key := fmt.Sprintf("photos/%d/%s.jpg", userID, file.Name)
	return &blobs.StoredBlob{Key: key, URL: "https://cdn.example.com/" + key}, nil
}
