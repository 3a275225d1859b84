package service

import (
	"context"
	"log"

	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// AdminService is the moderation surface: stats, listing, and deleting
// any post or account.
type AdminService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
}

func NewAdminService(adminRepo repository.AdminRepository, userRepo repository.UserRepository, postRepo repository.PostRepository) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		userRepo:  userRepo,
		postRepo:  postRepo,
	}
}

// Stats returns live platform counts.
func (s *AdminService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.adminRepo.Stats(ctx)
}

// ListUsers returns all accounts.
func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// ListPosts returns every post, drafts included.
func (s *AdminService) ListPosts(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.ListAll(ctx)
}

// DeletePost removes any post regardless of owner.
func (s *AdminService) DeletePost(ctx context.Context, adminID, postID int64) error {
	if err := s.postRepo.DeleteAny(ctx, postID); err != nil {
		return err
	}
	log.Printf("[Admin] Admin %d deleted post %d", adminID, postID)
	return nil
}

// DeleteUser removes any account and everything it owns. An admin may not
// delete themselves through this path; that is a distinct error from
// insufficient privilege.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID int64) error {
	if adminID == userID {
		return model.ErrSelfDeletion
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	log.Printf("[Admin] Admin %d deleted user %d", adminID, userID)
	return nil
}
