package repositories

import (
	"database/sql"
	"fmt"

	"blogsyte/internal/models"
)

type BlogRepository interface {
	Create(post *models.BlogPost) error
	GetByID(id int) (*models.BlogPost, error)
	Update(post *models.BlogPost) error
	Delete(id int) error
	List(limit, offset int) ([]*models.BlogPost, error)
	ListByAuthor(authorID int) ([]*models.BlogPost, error)
	GetCount() (int, error)
}

type blogRepository struct {
	DB *sql.DB
}

func NewBlogRepository(db *sql.DB) BlogRepository {
	return &blogRepository{DB: db}
}

func (r *blogRepository) Create(post *models.BlogPost) error {
	const q = `
		INSERT INTO blog_posts (title, description, category, author_id, author_name, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	if post.Status == "" {
		post.Status = "published"
	}
	err := r.DB.QueryRow(q,
		post.Title, post.Description, post.Category,
		post.AuthorID, post.AuthorName, post.Status,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("blog create: %w", err)
	}
	return nil
}

func (r *blogRepository) GetByID(id int) (*models.BlogPost, error) {
	const q = `
		SELECT id, title, description, category, author_id, author_name, status, created_at, updated_at
		FROM blog_posts
		WHERE id = $1
	`
	p := &models.BlogPost{}
	err := r.DB.QueryRow(q, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Category,
		&p.AuthorID, &p.AuthorName, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blog get: %w", err)
	}
	return p, nil
}

func (r *blogRepository) Update(post *models.BlogPost) error {
	const q = `
		UPDATE blog_posts
		SET title = $1, description = $2, category = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`
	res, err := r.DB.Exec(q, post.Title, post.Description, post.Category, post.Status, post.ID)
	if err != nil {
		return fmt.Errorf("blog update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the post together with its likes, comments and views.
func (r *blogRepository) Delete(id int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("blog delete begin: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM likes WHERE blog_id = $1`,
		`DELETE FROM comments WHERE blog_id = $1`,
		`DELETE FROM views WHERE blog_id = $1`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("blog delete cascade: %w", err)
		}
	}

	res, err := tx.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("blog delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *blogRepository) List(limit, offset int) ([]*models.BlogPost, error) {
	const q = `
		SELECT id, title, description, category, author_id, author_name, status, created_at, updated_at
		FROM blog_posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryPosts(q, limit, offset)
}

func (r *blogRepository) ListByAuthor(authorID int) ([]*models.BlogPost, error) {
	const q = `
		SELECT id, title, description, category, author_id, author_name, status, created_at, updated_at
		FROM blog_posts
		WHERE author_id = $1
		ORDER BY created_at DESC
	`
	return r.queryPosts(q, authorID)
}

func (r *blogRepository) queryPosts(q string, args ...interface{}) ([]*models.BlogPost, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("blog list: %w", err)
	}
	defer rows.Close()

	var res []*models.BlogPost
	for rows.Next() {
		p := &models.BlogPost{}
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Category,
			&p.AuthorID, &p.AuthorName, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *blogRepository) GetCount() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM blog_posts`).Scan(&c)
	return c, err
}
