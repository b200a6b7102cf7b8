package repo

import (
	"context"
	"database/sql"
	"time"
)

// Run is a stored calculation: the raw input as submitted plus the summary
// figures used for listings and alerts.
type Run struct {
	ID            string    `json:"id"`
	UserID        int       `json:"user_id"`
	Name          string    `json:"name"`
	ParamsJSON    string    `json:"params"`
	BottomholeKPa float64   `json:"bottomhole_pressure_kpa"`
	TotalDropKPa  float64   `json:"total_pressure_drop_kpa"`
	MaxVelocityMS float64   `json:"max_velocity_ms"`
	Warnings      int       `json:"warnings"`
	CreatedAt     time.Time `json:"created_at"`
}

type Profile struct {
	Login       string `json:"login"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	GetProfile(ctx context.Context, userID int) (Profile, error)
	UpdateProfile(ctx context.Context, userID int, login, description string) error

	SaveRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context, userID, limit int) ([]Run, error)
	GetRun(ctx context.Context, userID int, id string) (Run, error)
	ListRecentRuns(ctx context.Context, limit int) ([]Run, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) GetProfile(ctx context.Context, userID int) (Profile, error) {
	var p Profile
	query := "SELECT login, email, COALESCE(description, '') FROM users WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.Login, &p.Email, &p.Description)
	return p, err
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, userID int, login, description string) error {
	query := "UPDATE users SET login=$2, description=$3 WHERE id=$1"
	_, err := r.db.ExecContext(ctx, query, userID, login, description)
	return err
}

func (r *PostgresRepository) SaveRun(ctx context.Context, run Run) error {
	query := `INSERT INTO runs (id, user_id, name, params, bottomhole_kpa, total_drop_kpa, max_velocity_ms, warnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, run.ID, run.UserID, run.Name, run.ParamsJSON,
		run.BottomholeKPa, run.TotalDropKPa, run.MaxVelocityMS, run.Warnings)
	return err
}

const runColumns = "id, user_id, name, params, bottomhole_kpa, total_drop_kpa, max_velocity_ms, warnings, created_at"

func (r *PostgresRepository) ListRuns(ctx context.Context, userID, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2"
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (r *PostgresRepository) GetRun(ctx context.Context, userID int, id string) (Run, error) {
	query := "SELECT " + runColumns + " FROM runs WHERE user_id=$1 AND id=$2"
	var run Run
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(&run.ID, &run.UserID, &run.Name,
		&run.ParamsJSON, &run.BottomholeKPa, &run.TotalDropKPa, &run.MaxVelocityMS,
		&run.Warnings, &run.CreatedAt)
	return run, err
}

func (r *PostgresRepository) ListRecentRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC LIMIT $1"
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.UserID, &run.Name, &run.ParamsJSON,
			&run.BottomholeKPa, &run.TotalDropKPa, &run.MaxVelocityMS,
			&run.Warnings, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
