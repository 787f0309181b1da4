package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
)

//go:embed schema.sql
var schema string

var (
	ErrDuplicateSubject = errors.New("subject already exists")
	ErrNoPlan           = errors.New("no plan generated")
)

// Store holds the state of one planning session in an in-memory SQLite
// database. The database is gone once the store is closed.
type Store struct {
	db *sql.DB
}

// New creates an empty session store. Stores with different names never
// share data.
func New(name string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A memory database lives only as long as a connection to it
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection, discarding all session data
func (s *Store) Close() error {
	return s.db.Close()
}

// AddSubject stores a new subject and returns it with its ID and creation time
func (s *Store) AddSubject(subject domain.Subject) (*domain.Subject, error) {
	subject.ID = uuid.New().String()
	subject.CreatedAt = time.Now()

	_, err := s.db.Exec(`
		INSERT INTO subjects (id, position, name, total_hours, importance, difficulty, deadline_days, notes, created_at)
		VALUES (?, (SELECT COUNT(*) FROM subjects), ?, ?, ?, ?, ?, ?, ?)
	`,
		subject.ID, subject.Name, subject.TotalHours, subject.Importance,
		subject.Difficulty, subject.DeadlineDays, subject.Notes, subject.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSubject, subject.Name)
		}
		return nil, fmt.Errorf("insert subject: %w", err)
	}

	return &subject, nil
}

// ListSubjects returns subjects in the order they were added
func (s *Store) ListSubjects() ([]domain.Subject, error) {
	rows, err := s.db.Query(`
		SELECT id, name, total_hours, importance, difficulty, deadline_days, notes, created_at
		FROM subjects ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var sub domain.Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.TotalHours, &sub.Importance,
			&sub.Difficulty, &sub.DeadlineDays, &sub.Notes, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, sub)
	}

	return subjects, rows.Err()
}

// SavePlan replaces the stored plan
func (s *Store) SavePlan(plan *domain.Plan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"plans", "allocations", "plan_subjects"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO plans (id, budget_minutes, days, generated_at) VALUES (1, ?, ?, ?)",
		plan.BudgetMinutes, len(plan.Days), plan.GeneratedAt,
	); err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}

	for _, d := range plan.Days {
		for i, a := range d.Allocations {
			if _, err := tx.Exec(
				"INSERT INTO allocations (day, position, subject, minutes) VALUES (?, ?, ?, ?)",
				d.Day, i, a.Subject, a.Minutes,
			); err != nil {
				return fmt.Errorf("insert allocation: %w", err)
			}
		}
	}

	for i, series := range plan.Progress {
		if _, err := tx.Exec(
			"INSERT INTO plan_subjects (position, subject, remaining_minutes) VALUES (?, ?, ?)",
			i, series.Subject, plan.Remaining[series.Subject],
		); err != nil {
			return fmt.Errorf("insert plan subject: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit plan: %w", err)
	}
	return nil
}

// GetPlan loads the stored plan and rebuilds its progress series
func (s *Store) GetPlan() (*domain.Plan, error) {
	plan := &domain.Plan{Remaining: make(map[string]int)}
	var days int
	err := s.db.QueryRow(
		"SELECT budget_minutes, days, generated_at FROM plans WHERE id = 1",
	).Scan(&plan.BudgetMinutes, &days, &plan.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoPlan
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	plan.Days = make([]domain.Day, days)
	for i := range plan.Days {
		plan.Days[i].Day = i + 1
	}

	rows, err := s.db.Query("SELECT day, subject, minutes FROM allocations ORDER BY day, position")
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day int
		var a domain.Allocation
		if err := rows.Scan(&day, &a.Subject, &a.Minutes); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		if day < 1 || day > days {
			return nil, fmt.Errorf("allocation outside plan: day %d", day)
		}
		plan.Days[day-1].Allocations = append(plan.Days[day-1].Allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}

	subjects, err := s.db.Query("SELECT subject, remaining_minutes FROM plan_subjects ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list plan subjects: %w", err)
	}
	defer subjects.Close()

	for subjects.Next() {
		var name string
		var remaining int
		if err := subjects.Scan(&name, &remaining); err != nil {
			return nil, fmt.Errorf("scan plan subject: %w", err)
		}
		plan.Remaining[name] = remaining
		plan.Progress = append(plan.Progress, cumulative(name, plan.Days))
	}

	return plan, subjects.Err()
}

func cumulative(subject string, days []domain.Day) domain.Series {
	series := domain.Series{Subject: subject, Cumulative: make([]int, len(days))}
	total := 0
	for i, d := range days {
		for _, a := range d.Allocations {
			if a.Subject == subject {
				total += a.Minutes
			}
		}
		series.Cumulative[i] = total
	}
	return series
}
