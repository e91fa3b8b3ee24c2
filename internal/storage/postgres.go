package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/muzaproject/muza-bot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) UpsertUser(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO museum."user" (tg_id) VALUES ($1)
		ON CONFLICT (tg_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("error upserting user %d: %w", userID, err)
	}
	return nil
}

func (s *PostgresStorage) SetUserInterest(ctx context.Context, userID, interestID int64, present bool) error {
	if !present {
		query := `
			DELETE FROM museum.user_interest
			WHERE tg_id = $1 AND interest_id = $2`
		if _, err := s.db.ExecContext(ctx, query, userID, interestID); err != nil {
			return fmt.Errorf("error removing user interest: %w", err)
		}
		return nil
	}

	if err := s.UpsertUser(ctx, userID); err != nil {
		return err
	}

	query := `
		INSERT INTO museum.user_interest (tg_id, interest_id)
		VALUES ($1, $2)
		ON CONFLICT (tg_id, interest_id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, userID, interestID); err != nil {
		return fmt.Errorf("error adding user interest: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetUserInterests(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT i.interest_name
		FROM museum.user_interest ui
		JOIN museum.interest i ON ui.interest_id = i.interest_id
		WHERE ui.tg_id = $1
		ORDER BY i.interest_id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying user interests: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("error scanning user interest: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func (s *PostgresStorage) LookupInterestID(ctx context.Context, label string) (int64, bool, error) {
	query := `
		SELECT interest_id FROM museum.interest WHERE interest_name = $1`

	var id int64
	err := s.db.QueryRowContext(ctx, query, label).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("error looking up interest %q: %w", label, err)
	}
	return id, true, nil
}

func (s *PostgresStorage) FindMuseumsByCity(ctx context.Context, city string, limit int) ([]models.Museum, error) {
	query := `
		SELECT museum_id, name, description, city, address
		FROM museum.museum
		WHERE LOWER(city) = LOWER($1)
		ORDER BY museum_id
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, city, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying museums by city: %w", err)
	}
	defer rows.Close()

	var museums []models.Museum
	for rows.Next() {
		var m models.Museum
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.City, &m.Address); err != nil {
			return nil, fmt.Errorf("error scanning museum: %w", err)
		}
		museums = append(museums, m)
	}
	return museums, rows.Err()
}

func (s *PostgresStorage) GetMuseumTags(ctx context.Context, museumID int64) ([]string, bool, error) {
	var classified bool
	err := s.db.QueryRowContext(ctx,
		`SELECT tagged_at IS NOT NULL FROM museum.museum WHERE museum_id = $1`,
		museumID).Scan(&classified)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error checking museum tag state: %w", err)
	}

	query := `
		SELECT i.interest_name
		FROM museum.museum_interest mi
		JOIN museum.interest i ON mi.interest_id = i.interest_id
		WHERE mi.museum_id = $1
		ORDER BY i.interest_id`

	rows, err := s.db.QueryContext(ctx, query, museumID)
	if err != nil {
		return nil, false, fmt.Errorf("error querying museum tags: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, false, fmt.Errorf("error scanning museum tag: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, classified, rows.Err()
}

func (s *PostgresStorage) AddMuseumTag(ctx context.Context, museumID, interestID int64) error {
	query := `
		INSERT INTO museum.museum_interest (museum_id, interest_id)
		VALUES ($1, $2)
		ON CONFLICT (museum_id, interest_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, museumID, interestID); err != nil {
		return fmt.Errorf("error adding museum tag: %w", err)
	}
	return nil
}

func (s *PostgresStorage) MarkMuseumTagged(ctx context.Context, museumID int64) error {
	query := `
		UPDATE museum.museum SET tagged_at = now()
		WHERE museum_id = $1 AND tagged_at IS NULL`

	if _, err := s.db.ExecContext(ctx, query, museumID); err != nil {
		return fmt.Errorf("error marking museum tagged: %w", err)
	}
	return nil
}

func (s *PostgresStorage) SeedInterests(ctx context.Context, labels []string) error {
	query := `
		INSERT INTO museum.interest (interest_name) VALUES ($1)
		ON CONFLICT (interest_name) DO NOTHING`

	for _, label := range labels {
		if _, err := s.db.ExecContext(ctx, query, label); err != nil {
			return fmt.Errorf("error seeding interest %q: %w", label, err)
		}
	}
	return nil
}

func (s *PostgresStorage) AddMuseum(ctx context.Context, museum *models.Museum) error {
	query := `
		INSERT INTO museum.museum (name, description, city, address)
		VALUES ($1, $2, $3, $4)
		RETURNING museum_id`

	err := s.db.QueryRowContext(ctx, query,
		museum.Name, museum.Description, museum.City, museum.Address).Scan(&museum.ID)
	if err != nil {
		return fmt.Errorf("error inserting museum %q: %w", museum.Name, err)
	}
	return nil
}

func (s *PostgresStorage) CountMuseums(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM museum.museum`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting museums: %w", err)
	}
	return count, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
