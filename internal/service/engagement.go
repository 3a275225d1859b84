package service

import (
	"context"
	"fmt"
	"log"

	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// EngagementService reconciles like and save state per actor per post.
// Likes accept both authenticated users and client-identified guests;
// saves are users only, enforced by the route's auth requirement before
// this service is reached.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostRepository
}

func NewEngagementService(engagementRepo repository.EngagementRepository, postRepo repository.PostRepository) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
	}
}

// ToggleLike flips the like state for the actor on the post. The returned
// total is a live row count taken in the same transaction as the toggle,
// so it can never drift from the row set.
func (s *EngagementService) ToggleLike(ctx context.Context, postID int64, actor model.Actor) (*model.ToggleLikeResponse, error) {
	if actor.Kind == model.ActorAnonymous {
		return nil, model.ErrGuestIDRequired
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	liked, total, err := s.engagementRepo.ToggleLike(ctx, postID, actor.Key())
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	log.Printf("[Engagement] %s toggled like on post %d: liked=%v total=%d", actor.Key(), postID, liked, total)

	return &model.ToggleLikeResponse{Liked: liked, TotalLikes: total}, nil
}

// ToggleSave flips the bookmark state for the user on the post.
func (s *EngagementService) ToggleSave(ctx context.Context, postID, userID int64) (*model.ToggleSaveResponse, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	saved, err := s.engagementRepo.ToggleSave(ctx, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle save: %w", err)
	}

	return &model.ToggleSaveResponse{Saved: saved}, nil
}
