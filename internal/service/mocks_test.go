package service

import (
	"context"
	"time"

	"inkwell/internal/model"
)

// Hand-rolled mocks for the repository interfaces. Function fields let
// each test define custom behavior; stateful fakes back the components
// whose semantics are about row state (engagement, registrations).

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
	listFn          func(ctx context.Context) ([]model.User, error)
	deleteFn        func(ctx context.Context, id int64) error

	createCalls []*model.User
	deleteCalls []int64
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockProfileRepository struct {
	getByUserIDFn func(ctx context.Context, userID int64) (*model.Profile, error)
	upsertFn      func(ctx context.Context, profile *model.Profile) error
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, profile)
	}
	return nil
}

type mockPostRepository struct {
	createFn           func(ctx context.Context, post *model.Post) error
	getPublishedByIDFn func(ctx context.Context, postID int64) (*model.Post, error)
	incrementViewsFn   func(ctx context.Context, postID int64) error
	listPublishedFn    func(ctx context.Context, query string, cursor *string, limit int) ([]model.Post, *string, error)
	listByAuthorFn     func(ctx context.Context, authorID int64, draftsOnly bool) ([]model.Post, error)
	updateFn           func(ctx context.Context, postID, authorID int64, req *model.UpdatePostRequest) error
	deleteFn           func(ctx context.Context, postID, authorID int64) error
	existsFn           func(ctx context.Context, postID int64) (bool, error)
	listAllFn          func(ctx context.Context) ([]model.Post, error)
	deleteAnyFn        func(ctx context.Context, postID int64) error
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	post.ID = 1
	post.CreatedAt = time.Now()
	return nil
}

func (m *mockPostRepository) GetPublishedByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getPublishedByIDFn != nil {
		return m.getPublishedByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) IncrementViews(ctx context.Context, postID int64) error {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, postID)
	}
	return nil
}

func (m *mockPostRepository) ListPublished(ctx context.Context, query string, cursor *string, limit int) ([]model.Post, *string, error) {
	if m.listPublishedFn != nil {
		return m.listPublishedFn(ctx, query, cursor, limit)
	}
	return nil, nil, nil
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID int64, draftsOnly bool) ([]model.Post, error) {
	if m.listByAuthorFn != nil {
		return m.listByAuthorFn(ctx, authorID, draftsOnly)
	}
	return nil, nil
}

func (m *mockPostRepository) Update(ctx context.Context, postID, authorID int64, req *model.UpdatePostRequest) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, postID, authorID, req)
	}
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, postID, authorID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID, authorID)
	}
	return nil
}

func (m *mockPostRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, postID)
	}
	return true, nil
}

func (m *mockPostRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepository) DeleteAny(ctx context.Context, postID int64) error {
	if m.deleteAnyFn != nil {
		return m.deleteAnyFn(ctx, postID)
	}
	return nil
}

// fakeEngagementRepo keeps like/save rows in maps so tests exercise the
// toggle-by-existence semantics against real row state.
type fakeEngagementRepo struct {
	likes map[int64]map[string]bool
	saves map[int64]map[int64]bool

	toggleLikeErr error
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		likes: make(map[int64]map[string]bool),
		saves: make(map[int64]map[int64]bool),
	}
}

func (f *fakeEngagementRepo) ToggleLike(ctx context.Context, postID int64, actorKey string) (bool, int, error) {
	if f.toggleLikeErr != nil {
		return false, 0, f.toggleLikeErr
	}
	if f.likes[postID] == nil {
		f.likes[postID] = make(map[string]bool)
	}
	if f.likes[postID][actorKey] {
		delete(f.likes[postID], actorKey)
		return false, len(f.likes[postID]), nil
	}
	f.likes[postID][actorKey] = true
	return true, len(f.likes[postID]), nil
}

func (f *fakeEngagementRepo) ToggleSave(ctx context.Context, postID, userID int64) (bool, error) {
	if f.saves[postID] == nil {
		f.saves[postID] = make(map[int64]bool)
	}
	if f.saves[postID][userID] {
		delete(f.saves[postID], userID)
		return false, nil
	}
	f.saves[postID][userID] = true
	return true, nil
}

func (f *fakeEngagementRepo) CountLikes(ctx context.Context, postID int64) (int, error) {
	return len(f.likes[postID]), nil
}

// fakeRegistrationRepo keeps pending rows in a map so the onboarding
// state machine runs against real row lifecycle: upsert by email,
// refresh in place, promote-and-delete.
type fakeRegistrationRepo struct {
	rows   map[int64]*model.PendingRegistration
	nextID int64
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{rows: make(map[int64]*model.PendingRegistration)}
}

func (f *fakeRegistrationRepo) Upsert(ctx context.Context, p *model.PendingRegistration) error {
	for _, row := range f.rows {
		if row.Email == p.Email {
			row.Name = p.Name
			row.PasswordHash = p.PasswordHash
			row.Code = p.Code
			row.CodeExpiresAt = p.CodeExpiresAt
			p.ID = row.ID
			return nil
		}
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	copied := *p
	f.rows[p.ID] = &copied
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id int64) (*model.PendingRegistration, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, model.ErrRegistrationNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRegistrationRepo) RefreshCode(ctx context.Context, id int64, code string, expiresAt time.Time) error {
	row, ok := f.rows[id]
	if !ok {
		return model.ErrRegistrationNotFound
	}
	row.Code = code
	row.CodeExpiresAt = expiresAt
	return nil
}

func (f *fakeRegistrationRepo) Promote(ctx context.Context, p *model.PendingRegistration) (*model.User, error) {
	if _, ok := f.rows[p.ID]; !ok {
		return nil, model.ErrRegistrationNotFound
	}
	delete(f.rows, p.ID)
	hash := p.PasswordHash
	return &model.User{
		ID:           100 + p.ID,
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: &hash,
		CreatedAt:    time.Now(),
	}, nil
}

func (f *fakeRegistrationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, row := range f.rows {
		if row.Expired(now) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

type mockAdminRepository struct {
	statsFn func(ctx context.Context) (*model.Stats, error)
}

func (m *mockAdminRepository) Stats(ctx context.Context) (*model.Stats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &model.Stats{}, nil
}

// mockMailer records outbound mail and can fail on demand.
type mockMailer struct {
	otpErr     error
	contactErr error

	otpSends []otpSend
}

type otpSend struct {
	To   string
	Name string
	Code string
}

func (m *mockMailer) SendOTP(to, name, code string) error {
	if m.otpErr != nil {
		return m.otpErr
	}
	m.otpSends = append(m.otpSends, otpSend{To: to, Name: name, Code: code})
	return nil
}

func (m *mockMailer) SendContact(req *model.ContactRequest) error {
	return m.contactErr
}
