package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/arpitsinghofficial/videos-service/internal/config"
	"github.com/arpitsinghofficial/videos-service/internal/types"
)

type Postgres struct {
	Db *sql.DB
}

func NewPostgres(cfg *config.Config) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.PGSQL.Host, cfg.PGSQL.Port, cfg.PGSQL.User, cfg.PGSQL.Password, cfg.PGSQL.DBName, cfg.PGSQL.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	log.Println("Connected to Postgres database")

	// Create tables if they don't exist
	pg := &Postgres{Db: db}
	err = pg.CreateTables()
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pg, nil
}

func (p *Postgres) CreateTables() error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(256) NOT NULL,
			description TEXT,
			thumbnail_url TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		`,
	}

	for _, q := range queries {
		if _, err := p.Db.Exec(q); err != nil {
			return err
		}
	}

	return nil
}

func (p *Postgres) CreateUser(email, password string) (string, error) {
	var userID int
	query := `
	INSERT INTO users (email, password)
	VALUES ($1, $2)
	RETURNING id
	`

	err := p.Db.QueryRow(query, email, password).Scan(&userID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d", userID), nil
}

func (p *Postgres) GetUserByEmail(email string) (string, string, error) {
	var userID int
	var password string
	query := `SELECT id, password FROM users WHERE email = $1`

	err := p.Db.QueryRow(query, email).Scan(&userID, &password)
	if err != nil {
		return "", "", err
	}

	return fmt.Sprintf("%d", userID), password, nil
}

func (p *Postgres) CreateVideo(userID, title, description string) (types.Video, error) {
	video := types.Video{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
	}

	query := `
	INSERT INTO videos (id, user_id, title, description)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at::text, updated_at::text
	`

	err := p.Db.QueryRow(query, video.ID, userID, title, description).Scan(&video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return types.Video{}, err
	}

	return video, nil
}

func (p *Postgres) GetVideo(videoID string) (types.Video, error) {
	var video types.Video
	var thumbnailURL sql.NullString
	query := `
	SELECT id, user_id::text, title, COALESCE(description, ''), thumbnail_url, created_at::text, updated_at::text
	FROM videos WHERE id = $1
	`

	err := p.Db.QueryRow(query, videoID).Scan(
		&video.ID, &video.UserID, &video.Title, &video.Description,
		&thumbnailURL, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		return types.Video{}, err
	}

	if thumbnailURL.Valid {
		video.ThumbnailURL = thumbnailURL.String
	}

	return video, nil
}

func (p *Postgres) ListVideosByUser(userID string) ([]types.Video, error) {
	query := `
	SELECT id, user_id::text, title, COALESCE(description, ''), thumbnail_url, created_at::text, updated_at::text
	FROM videos WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := p.Db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []types.Video
	for rows.Next() {
		var video types.Video
		var thumbnailURL sql.NullString
		err := rows.Scan(
			&video.ID, &video.UserID, &video.Title, &video.Description,
			&thumbnailURL, &video.CreatedAt, &video.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if thumbnailURL.Valid {
			video.ThumbnailURL = thumbnailURL.String
		}
		videos = append(videos, video)
	}

	return videos, rows.Err()
}

func (p *Postgres) ListVideoIDs() ([]string, error) {
	rows, err := p.Db.Query(`SELECT id FROM videos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (p *Postgres) UpdateVideo(video types.Video) error {
	query := `
	UPDATE videos
	SET title = $2, description = $3, thumbnail_url = NULLIF($4, ''), updated_at = CURRENT_TIMESTAMP
	WHERE id = $1
	`

	result, err := p.Db.Exec(query, video.ID, video.Title, video.Description, video.ThumbnailURL)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
