package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/metrics"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/planner"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/store"
)

// Input limits. Minutes must fit an int32 and every deadline day gets a plan entry.
const (
	MaxTotalHours   = math.MaxInt32 / 60
	MaxDeadlineDays = 3650
	MaxHoursPerDay  = 24
)

var (
	ErrInvalidSubject   = errors.New("invalid subject")
	ErrDuplicateSubject = store.ErrDuplicateSubject
	ErrInvalidBudget    = planner.ErrInvalidBudget
	ErrNoSubjects       = planner.ErrNoSubjects
	ErrNoPlan           = store.ErrNoPlan
)

// Session is the state of one user's planning session: the subjects added
// so far and the most recently generated plan. Close discards everything.
type Session struct {
	ID string

	mu       sync.Mutex
	store    *store.Store
	log      *slog.Logger
	metrics  *metrics.Metrics
	minHours float64
}

// New starts an empty session. A nil metrics collects into a private registry.
func New(log *slog.Logger, m *metrics.Metrics, minHoursPerDay float64) (*Session, error) {
	id := uuid.New().String()
	st, err := store.New("session-" + id)
	if err != nil {
		return nil, fmt.Errorf("create session store: %w", err)
	}
	if m == nil {
		m = metrics.New()
	}

	log = log.With("session", id[:8])
	log.Debug("session started")

	return &Session{
		ID:       id,
		store:    st,
		log:      log,
		metrics:  m,
		minHours: minHoursPerDay,
	}, nil
}

// Close ends the session
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug("session closed")
	return s.store.Close()
}

// AddSubject validates and stores a subject. Names are unique keys.
func (s *Session) AddSubject(subject domain.Subject) (*domain.Subject, error) {
	subject.Name = strings.TrimSpace(subject.Name)
	if err := validate(subject); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.store.AddSubject(subject)
	if err != nil {
		return nil, err
	}
	s.metrics.SubjectsAdded.Inc()
	s.log.Info("subject added",
		"subject", added.Name,
		"hours", added.TotalHours,
		"deadline_days", added.DeadlineDays,
	)
	return added, nil
}

// Subjects returns the subjects in the order they were added
func (s *Session) Subjects() ([]domain.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ListSubjects()
}

// GeneratePlan recomputes the full plan for hoursPerDay and replaces the
// previous one.
func (s *Session) GeneratePlan(hoursPerDay float64) (*domain.Plan, error) {
	switch {
	case math.IsNaN(hoursPerDay) || hoursPerDay < s.minHours:
		return nil, fmt.Errorf("%w: %v hours per day is below the minimum of %v", ErrInvalidBudget, hoursPerDay, s.minHours)
	case hoursPerDay > MaxHoursPerDay:
		return nil, fmt.Errorf("%w: %v hours per day is more than a day", ErrInvalidBudget, hoursPerDay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	subjects, err := s.store.ListSubjects()
	if err != nil {
		return nil, err
	}

	plan, err := planner.Generate(subjects, planner.BudgetMinutes(hoursPerDay))
	if err != nil {
		return nil, err
	}
	if err := s.store.SavePlan(plan); err != nil {
		return nil, err
	}

	s.metrics.ObserveGenerate(start, plan.AllocatedMinutes(), plan.UnscheduledMinutes())
	s.log.Info("plan generated",
		"subjects", len(subjects),
		"days", len(plan.Days),
		"budget_minutes", plan.BudgetMinutes,
		"allocated_minutes", plan.AllocatedMinutes(),
	)
	return plan, nil
}

// Plan returns the most recently generated plan
func (s *Session) Plan() (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetPlan()
}

func validate(s domain.Subject) error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidSubject)
	case math.IsNaN(s.TotalHours) || math.IsInf(s.TotalHours, 0):
		return fmt.Errorf("%w: total hours must be a finite number", ErrInvalidSubject)
	case s.TotalHours < 0:
		return fmt.Errorf("%w: total hours must not be negative", ErrInvalidSubject)
	case s.TotalHours > MaxTotalHours:
		return fmt.Errorf("%w: total hours must not exceed %d", ErrInvalidSubject, MaxTotalHours)
	case s.Importance < 1 || s.Importance > 5:
		return fmt.Errorf("%w: importance must be between 1 and 5", ErrInvalidSubject)
	case s.Difficulty < 1 || s.Difficulty > 5:
		return fmt.Errorf("%w: difficulty must be between 1 and 5", ErrInvalidSubject)
	case s.DeadlineDays < 1:
		return fmt.Errorf("%w: deadline must be at least 1 day", ErrInvalidSubject)
	case s.DeadlineDays > MaxDeadlineDays:
		return fmt.Errorf("%w: deadline must not exceed %d days", ErrInvalidSubject, MaxDeadlineDays)
	}
	return nil
}
