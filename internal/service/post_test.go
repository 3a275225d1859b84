package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inkwell/internal/model"
)

// =============================================================================
// CREATE TESTS
// =============================================================================

func TestPostService_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.CreatePostRequest
		wantErr error
	}{
		{
			name:    "valid draft",
			req:     &model.CreatePostRequest{Title: "Hello", Content: "First post."},
			wantErr: nil,
		},
		{
			name:    "valid published",
			req:     &model.CreatePostRequest{Title: "Hello", Content: "First post.", Published: true},
			wantErr: nil,
		},
		{
			name:    "missing title",
			req:     &model.CreatePostRequest{Title: "   ", Content: "Body."},
			wantErr: model.ErrTitleRequired,
		},
		{
			name:    "missing body",
			req:     &model.CreatePostRequest{Title: "Hello", Content: ""},
			wantErr: model.ErrBodyRequired,
		},
		{
			name:    "title too long",
			req:     &model.CreatePostRequest{Title: strings.Repeat("x", model.MaxPostTitleLength+1), Content: "Body."},
			wantErr: model.ErrTitleTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *model.Post
			postRepo := &mockPostRepository{
				createFn: func(ctx context.Context, post *model.Post) error {
					post.ID = 10
					created = post
					return nil
				},
			}
			svc := NewPostService(postRepo, newFakeEngagementRepo())

			post, err := svc.Create(context.Background(), 7, tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				if created != nil {
					t.Error("invalid posts should never reach the store")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if post.AuthorID != 7 {
				t.Errorf("author_id = %d, want 7", post.AuthorID)
			}
			if post.Published != tt.req.Published {
				t.Errorf("published = %v, want %v", post.Published, tt.req.Published)
			}
		})
	}
}

// =============================================================================
// READ TESTS
// =============================================================================

func TestPostService_GetPublished(t *testing.T) {
	engRepo := newFakeEngagementRepo()
	engRepo.likes[3] = map[string]bool{"user_1": true, "guest_abc": true}

	postRepo := &mockPostRepository{
		getPublishedByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, Title: "Hello", Views: 5, Published: true}, nil
		},
	}
	svc := NewPostService(postRepo, engRepo)

	post, err := svc.GetPublished(context.Background(), 3)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Views != 6 {
		t.Errorf("views = %d, want 6 after the read bump", post.Views)
	}
	if post.LikeCount != 2 {
		t.Errorf("like_count = %d, want 2", post.LikeCount)
	}
}

func TestPostService_GetPublished_ViewBumpFailureIsSoft(t *testing.T) {
	postRepo := &mockPostRepository{
		getPublishedByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, Title: "Hello", Views: 5}, nil
		},
		incrementViewsFn: func(ctx context.Context, postID int64) error {
			return errors.New("timeout")
		},
	}
	svc := NewPostService(postRepo, newFakeEngagementRepo())

	post, err := svc.GetPublished(context.Background(), 3)

	if err != nil {
		t.Fatalf("a lost view bump must not fail the read: %v", err)
	}
	if post.Views != 5 {
		t.Errorf("views = %d, want unbumped 5", post.Views)
	}
}

func TestPostService_GetPublished_NotFound(t *testing.T) {
	svc := NewPostService(&mockPostRepository{}, newFakeEngagementRepo())

	_, err := svc.GetPublished(context.Background(), 404)

	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
}

func TestPostService_ListPublished_LimitClamping(t *testing.T) {
	var gotLimit int
	postRepo := &mockPostRepository{
		listPublishedFn: func(ctx context.Context, query string, cursor *string, limit int) ([]model.Post, *string, error) {
			gotLimit = limit
			return nil, nil, nil
		},
	}
	svc := NewPostService(postRepo, newFakeEngagementRepo())

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, model.DefaultPageSize},
		{"negative falls back to default", -5, model.DefaultPageSize},
		{"in range passes through", 25, 25},
		{"over max is clamped", 500, model.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ListPublished(context.Background(), "", nil, tt.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotLimit != tt.want {
				t.Errorf("limit = %d, want %d", gotLimit, tt.want)
			}
		})
	}
}

func TestPostService_ListPublished_Pagination(t *testing.T) {
	next := "42:1700000000"
	postRepo := &mockPostRepository{
		listPublishedFn: func(ctx context.Context, query string, cursor *string, limit int) ([]model.Post, *string, error) {
			return []model.Post{{ID: 50}, {ID: 42}}, &next, nil
		},
	}
	svc := NewPostService(postRepo, newFakeEngagementRepo())

	resp, err := svc.ListPublished(context.Background(), "", nil, 2)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.HasMore {
		t.Error("expected has_more")
	}
	if resp.NextCursor == nil || *resp.NextCursor != next {
		t.Errorf("next_cursor = %v, want %q", resp.NextCursor, next)
	}
}

// =============================================================================
// MUTATION TESTS
// =============================================================================

func TestPostService_Update_OwnershipErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"not the owner", model.ErrNotPostOwner, model.ErrNotPostOwner},
		{"post missing", model.ErrPostNotFound, model.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := &mockPostRepository{
				updateFn: func(ctx context.Context, postID, authorID int64, req *model.UpdatePostRequest) error {
					return tt.repoErr
				},
			}
			svc := NewPostService(postRepo, newFakeEngagementRepo())

			err := svc.Update(context.Background(), 1, 2, &model.UpdatePostRequest{
				Title:   "Edited",
				Content: "Edited body.",
			})

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPostService_Update_ValidatesBeforeStore(t *testing.T) {
	postRepo := &mockPostRepository{
		updateFn: func(ctx context.Context, postID, authorID int64, req *model.UpdatePostRequest) error {
			t.Error("invalid updates should never reach the store")
			return nil
		},
	}
	svc := NewPostService(postRepo, newFakeEngagementRepo())

	err := svc.Update(context.Background(), 1, 2, &model.UpdatePostRequest{Title: "", Content: "Body."})

	if !errors.Is(err, model.ErrTitleRequired) {
		t.Errorf("error = %v, want %v", err, model.ErrTitleRequired)
	}
}

func TestPostService_Delete_PassesThroughErrors(t *testing.T) {
	postRepo := &mockPostRepository{
		deleteFn: func(ctx context.Context, postID, authorID int64) error {
			return model.ErrNotPostOwner
		},
	}
	svc := NewPostService(postRepo, newFakeEngagementRepo())

	if err := svc.Delete(context.Background(), 1, 2); !errors.Is(err, model.ErrNotPostOwner) {
		t.Errorf("error = %v, want %v", err, model.ErrNotPostOwner)
	}
}
