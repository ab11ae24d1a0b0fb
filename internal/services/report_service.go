package services

import (
	"log"

	"blogsyte/internal/models"
	"blogsyte/internal/repositories"
)

type ReportService struct {
	users        repositories.UserRepository
	blogs        repositories.BlogRepository
	interactions repositories.InteractionRepository
}

func NewReportService(
	users repositories.UserRepository,
	blogs repositories.BlogRepository,
	interactions repositories.InteractionRepository,
) *ReportService {
	return &ReportService{users: users, blogs: blogs, interactions: interactions}
}

// AdminStats runs the aggregate counts sequentially; a failing counter is
// logged and reported as zero.
func (s *ReportService) AdminStats() models.AdminStats {
	var st models.AdminStats
	var err error

	if st.TotalUsers, err = s.users.GetCount(); err != nil {
		log.Printf("[stats][admin] user count failed: %v", err)
		st.TotalUsers = 0
	}
	if st.BannedUsers, err = s.users.GetBannedCount(); err != nil {
		log.Printf("[stats][admin] banned count failed: %v", err)
		st.BannedUsers = 0
	}
	if st.TotalBlogs, err = s.blogs.GetCount(); err != nil {
		log.Printf("[stats][admin] blog count failed: %v", err)
		st.TotalBlogs = 0
	}
	if st.TotalLikes, err = s.interactions.CountAllLikes(); err != nil {
		log.Printf("[stats][admin] likes count failed: %v", err)
		st.TotalLikes = 0
	}
	if st.TotalComments, err = s.interactions.CountAllComments(); err != nil {
		log.Printf("[stats][admin] comments count failed: %v", err)
		st.TotalComments = 0
	}
	if st.TotalViews, err = s.interactions.CountAllViews(); err != nil {
		log.Printf("[stats][admin] views count failed: %v", err)
		st.TotalViews = 0
	}
	return st
}
