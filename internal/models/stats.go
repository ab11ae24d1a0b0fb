package models

import "time"

// BlogStats — per-post counters. Sub-query failures degrade to zero values
// rather than failing the whole request.
type BlogStats struct {
	Likes    int `json:"likes"`
	Views    int `json:"views"`
	Comments int `json:"comments"`
}

type BlogWithStats struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Views     int       `json:"views"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
}

type DashboardStats struct {
	TotalBlogs    int             `json:"totalBlogs"`
	TotalViews    int             `json:"totalViews"`
	TotalLikes    int             `json:"totalLikes"`
	TotalComments int             `json:"totalComments"`
	Blogs         []BlogWithStats `json:"blogs"`
}

type AdminStats struct {
	TotalUsers    int `json:"totalUsers"`
	BannedUsers   int `json:"bannedUsers"`
	TotalBlogs    int `json:"totalBlogs"`
	TotalLikes    int `json:"totalLikes"`
	TotalComments int `json:"totalComments"`
	TotalViews    int `json:"totalViews"`
}
