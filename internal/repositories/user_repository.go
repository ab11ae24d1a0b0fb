package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"blogsyte/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(limit, offset int) ([]*models.User, error)
	GetCount() (int, error)
	GetBannedCount() (int, error)

	SetBanned(userID int, banned bool) error
	DeleteCascade(userID int) error

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	GetByRefreshToken(token string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, email, password, banned, is_admin)
		VALUES ($1, $2, $3, FALSE, FALSE)
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		bannedAt sql.NullTime
		rt       sql.NullString
		rte      sql.NullTime
		rr       sql.NullBool
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Banned, &bannedAt, &u.IsAdmin, &u.CreatedAt,
		&rt, &rte, &rr,
	)
	if err != nil {
		return nil, err
	}
	if bannedAt.Valid {
		t := bannedAt.Time
		u.BannedAt = &t
	}
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	if rr.Valid {
		u.RefreshRevoked = rr.Bool
	}
	return u, nil
}

const userColumns = `
	id, name, email, password,
	banned, banned_at, is_admin, created_at,
	refresh_token, refresh_expires_at, COALESCE(refresh_revoked, FALSE)
`

func (r *userRepository) GetByID(id int) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := r.scanUser(r.DB.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := r.scanUser(r.DB.QueryRow(q, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE refresh_token = $1`
	u, err := r.scanUser(r.DB.QueryRow(q, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `
		SELECT id, name, email, banned, banned_at, is_admin, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		var bannedAt sql.NullTime
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Banned, &bannedAt, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		if bannedAt.Valid {
			t := bannedAt.Time
			u.BannedAt = &t
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}

func (r *userRepository) GetBannedCount() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE banned = TRUE`).Scan(&c)
	return c, err
}

func (r *userRepository) SetBanned(userID int, banned bool) error {
	const q = `
		UPDATE users
		SET banned = $1,
		    banned_at = CASE WHEN $1 THEN NOW() ELSE NULL END
		WHERE id = $2
	`
	res, err := r.DB.Exec(q, banned, userID)
	if err != nil {
		return fmt.Errorf("user set banned: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCascade removes the account and everything it owns in a single
// transaction: likes, comments, views, posts (with their interactions),
// then the user row itself.
func (r *userRepository) DeleteCascade(userID int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("user delete begin: %w", err)
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM likes WHERE user_id = $1`,
		`DELETE FROM comments WHERE user_id = $1`,
		`DELETE FROM views WHERE user_id = $1`,
		`DELETE FROM likes WHERE blog_id IN (SELECT id FROM blog_posts WHERE author_id = $1)`,
		`DELETE FROM comments WHERE blog_id IN (SELECT id FROM blog_posts WHERE author_id = $1)`,
		`DELETE FROM views WHERE blog_id IN (SELECT id FROM blog_posts WHERE author_id = $1)`,
		`DELETE FROM blog_posts WHERE author_id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(q, userID); err != nil {
			return fmt.Errorf("user delete cascade: %w", err)
		}
	}

	res, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("user delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET refresh_token = $1, refresh_expires_at = $2, refresh_revoked = FALSE
		WHERE id = $3
	`
	_, err := r.DB.Exec(q, token, expiresAt, userID)
	return err
}

func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
		UPDATE users
		SET refresh_token = $2, refresh_expires_at = $3, refresh_revoked = FALSE
		WHERE refresh_token = $1 AND COALESCE(refresh_revoked, FALSE) = FALSE
		RETURNING id, name, email, banned, is_admin
	`
	u := &models.User{}
	err := r.DB.QueryRow(q, oldToken, newToken, newExpiresAt).
		Scan(&u.ID, &u.Name, &u.Email, &u.Banned, &u.IsAdmin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user rotate refresh: %w", err)
	}
	return u, nil
}
