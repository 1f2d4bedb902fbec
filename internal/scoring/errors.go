package scoring

import "fmt"

// ErrEmptyEvidence indicates a scoring request with no portfolio entries.
type ErrEmptyEvidence struct {
	SubjectID string
}

func (e *ErrEmptyEvidence) Error() string {
	return fmt.Sprintf("no portfolio entries supplied for subject %q", e.SubjectID)
}

// ErrUnknownSkill indicates the scoring target skill is not in the graph.
type ErrUnknownSkill struct {
	SkillCode string
}

func (e *ErrUnknownSkill) Error() string {
	return fmt.Sprintf("unknown skill: %q", e.SkillCode)
}

// ErrUnknownLevel indicates the target level is not one the skill defines.
type ErrUnknownLevel struct {
	SkillCode       string
	Level           int
	AvailableLevels []int
}

func (e *ErrUnknownLevel) Error() string {
	return fmt.Sprintf("skill %q is not defined at level %d (available: %v)", e.SkillCode, e.Level, e.AvailableLevels)
}

// ErrOrphanComment indicates a supervisor comment referencing no supplied
// entry. The whole request is rejected before any computation.
type ErrOrphanComment struct {
	CommentID string
	EntryIDs  []string
}

func (e *ErrOrphanComment) Error() string {
	return fmt.Sprintf("supervisor comment %q references no existing entry (refs: %v)", e.CommentID, e.EntryIDs)
}

// ErrScoringUnavailable indicates the reflection judge failed or timed out
// after the engine's single internal retry. The caller may retry with its
// own backoff; the engine never substitutes a default score.
type ErrScoringUnavailable struct {
	JudgeName string
	Err       error
}

func (e *ErrScoringUnavailable) Error() string {
	return fmt.Sprintf("reflection scoring unavailable (judge %q): %v", e.JudgeName, e.Err)
}

func (e *ErrScoringUnavailable) Unwrap() error { return e.Err }
