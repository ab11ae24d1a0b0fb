package services

import (
	"blogsyte/internal/models"
	"blogsyte/internal/repositories"
)

type BlogService interface {
	CreatePost(post *models.BlogPost) error
	GetPost(id int) (*models.BlogPost, error)
	UpdatePost(post *models.BlogPost) error
	DeletePost(id int) error
	ListPosts(limit, offset int) ([]*models.BlogPost, error)
	ListByAuthor(authorID int) ([]*models.BlogPost, error)
}

type blogService struct {
	repo     repositories.BlogRepository
	telegram *TelegramService
}

func NewBlogService(repo repositories.BlogRepository, telegram *TelegramService) BlogService {
	return &blogService{repo: repo, telegram: telegram}
}

func (s *blogService) CreatePost(post *models.BlogPost) error {
	if err := s.repo.Create(post); err != nil {
		return err
	}
	s.telegram.NotifyNewPost(post.Title, post.AuthorName)
	return nil
}

func (s *blogService) GetPost(id int) (*models.BlogPost, error) {
	return s.repo.GetByID(id)
}

func (s *blogService) UpdatePost(post *models.BlogPost) error {
	return s.repo.Update(post)
}

func (s *blogService) DeletePost(id int) error {
	return s.repo.Delete(id)
}

func (s *blogService) ListPosts(limit, offset int) ([]*models.BlogPost, error) {
	return s.repo.List(limit, offset)
}

func (s *blogService) ListByAuthor(authorID int) ([]*models.BlogPost, error) {
	return s.repo.ListByAuthor(authorID)
}
