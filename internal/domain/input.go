package domain

// Form defaults for fields left out of a subject submission
const (
	DefaultImportance   = 3
	DefaultDifficulty   = 3
	DefaultDeadlineDays = 1
)

// SubjectInput is a submitted subject. Omitted importance, difficulty and
// deadline take the form defaults.
type SubjectInput struct {
	Name         string  `json:"name"`
	TotalHours   float64 `json:"total_hours"`
	Importance   *int    `json:"importance,omitempty"`
	Difficulty   *int    `json:"difficulty,omitempty"`
	DeadlineDays *int    `json:"deadline_days,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// Subject applies the defaults and returns the subject to store
func (in SubjectInput) Subject() Subject {
	return Subject{
		Name:         in.Name,
		TotalHours:   in.TotalHours,
		Importance:   intOr(in.Importance, DefaultImportance),
		Difficulty:   intOr(in.Difficulty, DefaultDifficulty),
		DeadlineDays: intOr(in.DeadlineDays, DefaultDeadlineDays),
		Notes:        in.Notes,
	}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
