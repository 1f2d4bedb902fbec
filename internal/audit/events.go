package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LoadEvent records one ontology load attempt.
type LoadEvent struct {
	ID        string
	CreatedAt time.Time
	Framework string
	Version   string
	Skills    int
	Roles     int
	Success   bool
	Error     string
}

// AssessmentEvent records one portfolio scoring run.
type AssessmentEvent struct {
	ID          string
	CreatedAt   time.Time
	SubjectID   string
	AssessorID  string
	SkillCode   string
	TargetLevel int
	Total       float64
	Verdict     string
	PassStatus  bool
	Judge       string
}

// RecordLoad appends a load event and returns its generated ID.
func (s *Store) RecordLoad(ctx context.Context, ev LoadEvent) (string, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO load_events (id, created_at, framework, version, skills, roles, success, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.CreatedAt.Format(time.RFC3339Nano), ev.Framework, ev.Version,
		ev.Skills, ev.Roles, boolToInt(ev.Success), ev.Error)
	if err != nil {
		return "", err
	}
	return ev.ID, nil
}

// RecordAssessment appends an assessment event and returns its generated ID.
func (s *Store) RecordAssessment(ctx context.Context, ev AssessmentEvent) (string, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO assessment_events (id, created_at, subject_id, assessor_id, skill_code, target_level, total, verdict, pass_status, judge)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.CreatedAt.Format(time.RFC3339Nano), ev.SubjectID, ev.AssessorID,
		ev.SkillCode, ev.TargetLevel, ev.Total, ev.Verdict, boolToInt(ev.PassStatus), ev.Judge)
	if err != nil {
		return "", err
	}
	return ev.ID, nil
}

// RecentAssessments returns the most recent assessment events, newest first.
func (s *Store) RecentAssessments(ctx context.Context, limit int) ([]AssessmentEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, subject_id, assessor_id, skill_code, target_level, total, verdict, pass_status, judge
FROM assessment_events ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []AssessmentEvent
	for rows.Next() {
		var ev AssessmentEvent
		var createdAt string
		var pass int
		if err := rows.Scan(&ev.ID, &createdAt, &ev.SubjectID, &ev.AssessorID,
			&ev.SkillCode, &ev.TargetLevel, &ev.Total, &ev.Verdict, &pass, &ev.Judge); err != nil {
			return nil, err
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		ev.PassStatus = pass != 0
		events = append(events, ev)
	}
	return events, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
