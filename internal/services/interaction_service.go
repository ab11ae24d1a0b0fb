package services

import (
	"log"

	"blogsyte/internal/models"
	"blogsyte/internal/repositories"
)

type InteractionService interface {
	ToggleLike(blogID, userID int) (liked bool, count int, err error)
	LikeStatus(blogID, userID int) (liked bool, count int, err error)
	AddComment(c *models.Comment) error
	GetComment(id int) (*models.Comment, error)
	ListComments(blogID int) ([]*models.Comment, error)
	DeleteComment(id int) error
	RecordView(v *models.View) error

	BlogStats(blogID int) models.BlogStats
	Dashboard(authorID int) models.DashboardStats
}

type interactionService struct {
	repo  repositories.InteractionRepository
	blogs repositories.BlogRepository
}

func NewInteractionService(repo repositories.InteractionRepository, blogs repositories.BlogRepository) InteractionService {
	return &interactionService{repo: repo, blogs: blogs}
}

func (s *interactionService) ToggleLike(blogID, userID int) (bool, int, error) {
	liked, err := s.repo.HasLiked(blogID, userID)
	if err != nil {
		return false, 0, err
	}
	if liked {
		err = s.repo.RemoveLike(blogID, userID)
	} else {
		err = s.repo.AddLike(blogID, userID)
	}
	if err != nil {
		return false, 0, err
	}
	count, err := s.repo.CountLikes(blogID)
	if err != nil {
		return !liked, 0, err
	}
	return !liked, count, nil
}

func (s *interactionService) LikeStatus(blogID, userID int) (bool, int, error) {
	liked, err := s.repo.HasLiked(blogID, userID)
	if err != nil {
		return false, 0, err
	}
	count, err := s.repo.CountLikes(blogID)
	if err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}

func (s *interactionService) AddComment(c *models.Comment) error {
	return s.repo.AddComment(c)
}

func (s *interactionService) GetComment(id int) (*models.Comment, error) {
	return s.repo.GetCommentByID(id)
}

func (s *interactionService) ListComments(blogID int) ([]*models.Comment, error) {
	return s.repo.ListComments(blogID)
}

func (s *interactionService) DeleteComment(id int) error {
	return s.repo.DeleteComment(id)
}

func (s *interactionService) RecordView(v *models.View) error {
	return s.repo.RecordView(v)
}

// BlogStats degrades each failing sub-query to zero instead of failing the
// parent request. Read-heavy aggregate endpoints stay best-effort.
func (s *interactionService) BlogStats(blogID int) models.BlogStats {
	var st models.BlogStats
	var err error

	if st.Likes, err = s.repo.CountLikes(blogID); err != nil {
		log.Printf("[stats][blog] likes count failed blog_id=%d: %v", blogID, err)
		st.Likes = 0
	}
	if st.Views, err = s.repo.CountViews(blogID); err != nil {
		log.Printf("[stats][blog] views count failed blog_id=%d: %v", blogID, err)
		st.Views = 0
	}
	if st.Comments, err = s.repo.CountComments(blogID); err != nil {
		log.Printf("[stats][blog] comments count failed blog_id=%d: %v", blogID, err)
		st.Comments = 0
	}
	return st
}

func (s *interactionService) Dashboard(authorID int) models.DashboardStats {
	out := models.DashboardStats{Blogs: []models.BlogWithStats{}}

	posts, err := s.blogs.ListByAuthor(authorID)
	if err != nil {
		log.Printf("[stats][dashboard] post list failed author_id=%d: %v", authorID, err)
		return out
	}

	out.TotalBlogs = len(posts)
	for _, p := range posts {
		st := s.BlogStats(p.ID)
		out.TotalViews += st.Views
		out.TotalLikes += st.Likes
		out.TotalComments += st.Comments
		out.Blogs = append(out.Blogs, models.BlogWithStats{
			ID:        p.ID,
			Title:     p.Title,
			CreatedAt: p.CreatedAt,
			Views:     st.Views,
			Likes:     st.Likes,
			Comments:  st.Comments,
		})
	}
	return out
}
