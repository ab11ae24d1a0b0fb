package repositories

import (
	"database/sql"
	"fmt"

	"blogsyte/internal/models"
)

// InteractionRepository covers likes, comments and views for blog posts.
type InteractionRepository interface {
	// likes
	HasLiked(blogID, userID int) (bool, error)
	AddLike(blogID, userID int) error
	RemoveLike(blogID, userID int) error
	CountLikes(blogID int) (int, error)

	// comments
	AddComment(c *models.Comment) error
	GetCommentByID(id int) (*models.Comment, error)
	ListComments(blogID int) ([]*models.Comment, error)
	DeleteComment(id int) error
	CountComments(blogID int) (int, error)

	// views
	RecordView(v *models.View) error
	CountViews(blogID int) (int, error)

	// global counters for the admin panel
	CountAllLikes() (int, error)
	CountAllComments() (int, error)
	CountAllViews() (int, error)
}

type interactionRepository struct {
	DB *sql.DB
}

func NewInteractionRepository(db *sql.DB) InteractionRepository {
	return &interactionRepository{DB: db}
}

func (r *interactionRepository) HasLiked(blogID, userID int) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS(SELECT 1 FROM likes WHERE blog_id = $1 AND user_id = $2)`
	if err := r.DB.QueryRow(q, blogID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("like status: %w", err)
	}
	return exists, nil
}

func (r *interactionRepository) AddLike(blogID, userID int) error {
	const q = `
		INSERT INTO likes (blog_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (blog_id, user_id) DO NOTHING
	`
	_, err := r.DB.Exec(q, blogID, userID)
	return err
}

func (r *interactionRepository) RemoveLike(blogID, userID int) error {
	_, err := r.DB.Exec(`DELETE FROM likes WHERE blog_id = $1 AND user_id = $2`, blogID, userID)
	return err
}

func (r *interactionRepository) CountLikes(blogID int) (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM likes WHERE blog_id = $1`, blogID).Scan(&c)
	return c, err
}

func (r *interactionRepository) AddComment(c *models.Comment) error {
	const q = `
		INSERT INTO comments (blog_id, user_id, comment_text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q, c.BlogID, c.UserID, c.Text).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("comment create: %w", err)
	}
	return nil
}

func (r *interactionRepository) GetCommentByID(id int) (*models.Comment, error) {
	const q = `
		SELECT id, blog_id, user_id, comment_text, created_at, updated_at
		FROM comments
		WHERE id = $1
	`
	c := &models.Comment{}
	err := r.DB.QueryRow(q, id).Scan(&c.ID, &c.BlogID, &c.UserID, &c.Text, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("comment get: %w", err)
	}
	return c, nil
}

func (r *interactionRepository) ListComments(blogID int) ([]*models.Comment, error) {
	const q = `
		SELECT c.id, c.blog_id, c.user_id, u.name, c.comment_text, c.created_at, c.updated_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.DB.Query(q, blogID)
	if err != nil {
		return nil, fmt.Errorf("comment list: %w", err)
	}
	defer rows.Close()

	var res []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.UserName, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *interactionRepository) DeleteComment(id int) error {
	res, err := r.DB.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("comment delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *interactionRepository) CountComments(blogID int) (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM comments WHERE blog_id = $1`, blogID).Scan(&c)
	return c, err
}

// RecordView is deduplicated per session: a repeat view with the same
// session_id is a silent no-op.
func (r *interactionRepository) RecordView(v *models.View) error {
	const q = `
		INSERT INTO views (blog_id, user_id, ip_address, session_id, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (blog_id, session_id) DO NOTHING
	`
	var userID sql.NullInt64
	if v.UserID != nil {
		userID = sql.NullInt64{Int64: int64(*v.UserID), Valid: true}
	}
	_, err := r.DB.Exec(q, v.BlogID, userID, v.IPAddress, v.SessionID, v.UserAgent)
	return err
}

func (r *interactionRepository) CountViews(blogID int) (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM views WHERE blog_id = $1`, blogID).Scan(&c)
	return c, err
}

func (r *interactionRepository) CountAllLikes() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM likes`).Scan(&c)
	return c, err
}

func (r *interactionRepository) CountAllComments() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&c)
	return c, err
}

func (r *interactionRepository) CountAllViews() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM views`).Scan(&c)
	return c, err
}
