package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// PostService handles blog post lifecycle: drafts, publishing, the public
// feed, and owner-scoped mutation.
type PostService struct {
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
}

func NewPostService(postRepo repository.PostRepository, engagementRepo repository.EngagementRepository) *PostService {
	return &PostService{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
	}
}

func validatePost(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return model.ErrTitleRequired
	}
	if len(title) > model.MaxPostTitleLength {
		return model.ErrTitleTooLong
	}
	if strings.TrimSpace(content) == "" {
		return model.ErrBodyRequired
	}
	return nil
}

// Create makes a new post, as draft or published directly.
func (s *PostService) Create(ctx context.Context, authorID int64, req *model.CreatePostRequest) (*model.Post, error) {
	if err := validatePost(req.Title, req.Content); err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID:     authorID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Content:      req.Content,
		ThumbnailURL: req.ThumbnailURL,
		Category:     req.Category,
		Published:    req.Published,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	log.Printf("[Post] User %d created post %d (published=%v)", authorID, post.ID, post.Published)
	return post, nil
}

// GetPublished retrieves one published post with its author and profile
// join, bumps the view counter, and attaches the live like count.
func (s *PostService) GetPublished(ctx context.Context, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetPublishedByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViews(ctx, postID); err != nil {
		// A lost view bump should not fail the read.
		log.Printf("[Post] Failed to increment views for post %d: %v", postID, err)
	} else {
		post.Views++
	}

	total, err := s.engagementRepo.CountLikes(ctx, postID)
	if err != nil {
		log.Printf("[Post] Failed to count likes for post %d: %v", postID, err)
	} else {
		post.LikeCount = total
	}

	return post, nil
}

// ListPublished returns the public feed with optional title search.
func (s *PostService) ListPublished(ctx context.Context, search string, cursor *string, limit int) (*model.PostListResponse, error) {
	if limit <= 0 {
		limit = model.DefaultPageSize
	}
	if limit > model.MaxPageSize {
		limit = model.MaxPageSize
	}

	posts, nextCursor, err := s.postRepo.ListPublished(ctx, search, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}

	hasMore := nextCursor != nil

	var finalCursor *string
	if hasMore {
		finalCursor = nextCursor
	}

	return &model.PostListResponse{
		Posts:      posts,
		NextCursor: finalCursor,
		HasMore:    hasMore,
	}, nil
}

// ListMine returns all posts owned by the caller, drafts included.
func (s *PostService) ListMine(ctx context.Context, authorID int64) ([]model.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, false)
}

// ListDrafts returns the caller's unpublished posts.
func (s *PostService) ListDrafts(ctx context.Context, authorID int64) ([]model.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, true)
}

// Update edits a post; publishing is the same flag flip. Only the owner
// may mutate, enforced at the store.
func (s *PostService) Update(ctx context.Context, postID, authorID int64, req *model.UpdatePostRequest) error {
	if err := validatePost(req.Title, req.Content); err != nil {
		return err
	}
	return s.postRepo.Update(ctx, postID, authorID, req)
}

// Delete removes an owner's post together with its engagement rows.
func (s *PostService) Delete(ctx context.Context, postID, authorID int64) error {
	if err := s.postRepo.Delete(ctx, postID, authorID); err != nil {
		return err
	}
	log.Printf("[Post] User %d deleted post %d", authorID, postID)
	return nil
}
