package repositories

import (
	"database/sql"
	"fmt"
	"log"
)

// InitSchema bootstraps the tables on startup, mirroring what the frontend
// expects. Safe to run repeatedly.
func InitSchema(db *sql.DB) error {
	stmts := []struct {
		name string
		q    string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				email VARCHAR(255) UNIQUE NOT NULL,
				password VARCHAR(255) NOT NULL,
				banned BOOLEAN DEFAULT FALSE,
				banned_at TIMESTAMP NULL,
				is_admin BOOLEAN DEFAULT FALSE,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				refresh_token TEXT NULL,
				refresh_expires_at TIMESTAMP NULL,
				refresh_revoked BOOLEAN DEFAULT FALSE
			)`},
		{"blog_posts", `
			CREATE TABLE IF NOT EXISTS blog_posts (
				id SERIAL PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				description TEXT NOT NULL,
				category VARCHAR(100) NOT NULL,
				author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				author_name VARCHAR(255) NOT NULL,
				status VARCHAR(20) DEFAULT 'published',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`},
		{"likes", `
			CREATE TABLE IF NOT EXISTS likes (
				id SERIAL PRIMARY KEY,
				blog_id INTEGER NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(blog_id, user_id)
			)`},
		{"comments", `
			CREATE TABLE IF NOT EXISTS comments (
				id SERIAL PRIMARY KEY,
				blog_id INTEGER NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				comment_text TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`},
		{"views", `
			CREATE TABLE IF NOT EXISTS views (
				id SERIAL PRIMARY KEY,
				blog_id INTEGER NOT NULL REFERENCES blog_posts(id) ON DELETE CASCADE,
				user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
				ip_address VARCHAR(45),
				session_id VARCHAR(255),
				user_agent TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(blog_id, session_id)
			)`},
	}

	for _, s := range stmts {
		if _, err := db.Exec(s.q); err != nil {
			return fmt.Errorf("create table %s: %w", s.name, err)
		}
		log.Printf("[db][schema] table %s ready", s.name)
	}
	return nil
}
