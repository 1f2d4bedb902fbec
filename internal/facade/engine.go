// Package facade exposes the engine's operations behind a single typed
// API. The CLI and HTTP server both call through here, so the two
// surfaces cannot drift apart.
package facade

import (
	"context"
	"errors"
	"slices"

	"github.com/mhartley/compass/internal/audit"
	"github.com/mhartley/compass/internal/framework"
	"github.com/mhartley/compass/internal/graph"
	"github.com/mhartley/compass/internal/logger"
	"github.com/mhartley/compass/internal/ontology"
	"github.com/mhartley/compass/internal/reasoning"
	"github.com/mhartley/compass/internal/scoring"
)

var errNoScorer = errors.New("no scoring engine configured")

// Engine bundles the graph store, ontology loader, scoring engine and
// audit log. The audit store is optional: a nil audit means events are
// not recorded, which the read-only CLI commands use.
type Engine struct {
	store  *graph.Store
	loader *ontology.Loader
	scorer *scoring.Engine
	rubric scoring.Rubric
	audit  *audit.Store
	log    *logger.Logger
}

// Options configures an Engine.
type Options struct {
	Scorer *scoring.Engine
	Rubric scoring.Rubric
	Audit  *audit.Store
	Log    *logger.Logger
}

// New creates an Engine over an empty graph.
func New(opts Options) *Engine {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	store := graph.NewStore()
	return &Engine{
		store:  store,
		loader: ontology.NewLoader(store, opts.Log),
		scorer: opts.Scorer,
		rubric: opts.Rubric,
		audit:  opts.Audit,
		log:    opts.Log,
	}
}

// Store returns the underlying graph store.
func (e *Engine) Store() *graph.Store {
	return e.store
}

// LoadOntology merges a framework document into the graph. When replace is
// set the current graph is discarded first. Every attempt, failed or not,
// is recorded in the audit log.
func (e *Engine) LoadOntology(ctx context.Context, raw []byte, replace bool) (*ontology.Result, error) {
	var res *ontology.Result
	var err error
	if replace {
		res, err = e.loader.Replace(raw)
	} else {
		res, err = e.loader.Load(raw)
	}

	if e.audit != nil {
		ev := audit.LoadEvent{Success: err == nil}
		if err != nil {
			ev.Error = err.Error()
		} else {
			ev.Framework = res.Framework
			ev.Version = res.Version
			ev.Skills = res.Statistics.Skills
			ev.Roles = res.Statistics.Roles
		}
		if _, aerr := e.audit.RecordLoad(ctx, ev); aerr != nil {
			e.log.Warn("audit record failed", "error", aerr)
		}
	}
	return res, err
}

// GetSkill returns a skill together with its per-level descriptors.
func (e *Engine) GetSkill(code string) (framework.Skill, []framework.SkillLevel, error) {
	snap := e.store.Snapshot()
	sk, err := snap.Skill(code)
	if err != nil {
		return framework.Skill{}, nil, err
	}
	levels := make([]framework.SkillLevel, 0, len(sk.AvailableLevels))
	for _, lv := range sk.AvailableLevels {
		if sl, ok := snap.SkillLevel(sk.Code, lv); ok {
			levels = append(levels, sl)
		}
	}
	return sk, levels, nil
}

// FindSkills returns skills matching the filter, in code order. A positive
// limit stops the underlying lazy sequence early; zero means no limit.
func (e *Engine) FindSkills(f graph.Filter, limit int) []framework.Skill {
	if limit <= 0 {
		return slices.Collect(e.store.Snapshot().FindSkills(f))
	}
	skills := make([]framework.Skill, 0, limit)
	for sk := range e.store.Snapshot().FindSkills(f) {
		skills = append(skills, sk)
		if len(skills) == limit {
			break
		}
	}
	return skills
}

// GetRole returns a role and its derived profile.
func (e *Engine) GetRole(code string) (framework.Role, framework.Profile, error) {
	snap := e.store.Snapshot()
	role, err := snap.Role(code)
	if err != nil {
		return framework.Role{}, framework.Profile{}, err
	}
	return role, framework.ProfileOf(&role), nil
}

// Gap computes the skill gaps between a current skill set and a role.
func (e *Engine) Gap(roleCode string, current map[string]int) ([]reasoning.GapRecord, error) {
	return reasoning.Gap(e.store.Snapshot(), roleCode, current)
}

// Pathways finds roles sharing at least minShared skills with the given
// role. Pass minShared <= 0 for the default threshold.
func (e *Engine) Pathways(fromRoleCode string, minShared int) ([]reasoning.Pathway, error) {
	if minShared <= 0 {
		minShared = reasoning.DefaultMinSharedSkills
	}
	return reasoning.Pathways(e.store.Snapshot(), fromRoleCode, minShared)
}

// MatchTeam assigns candidates to a role's merged requirements.
func (e *Engine) MatchTeam(roleCode string, candidates []reasoning.Candidate, cfg reasoning.TeamMatchConfig) (*reasoning.TeamMatch, error) {
	snap := e.store.Snapshot()
	role, err := snap.Role(roleCode)
	if err != nil {
		return nil, err
	}
	match := reasoning.MatchTeam(role.Requirements, candidates, cfg)
	return &match, nil
}

// ScorePortfolio runs the rubric evaluator against a portfolio and records
// the outcome in the audit log.
func (e *Engine) ScorePortfolio(ctx context.Context, req scoring.Request) (*scoring.AssessmentResult, error) {
	if e.scorer == nil {
		return nil, &scoring.ErrScoringUnavailable{JudgeName: "none", Err: errNoScorer}
	}
	rubric := e.rubric
	if len(req.Components) > 0 {
		rubric.Components = req.Components
	}
	res, err := e.scorer.Score(ctx, e.store.Snapshot(), req, rubric)
	if err != nil {
		return nil, err
	}

	if e.audit != nil {
		ev := audit.AssessmentEvent{
			SubjectID:   req.SubjectID,
			AssessorID:  req.AssessorID,
			SkillCode:   req.SkillCode,
			TargetLevel: req.TargetLevel,
			Total:       res.Total,
			Verdict:     string(res.Verdict),
			PassStatus:  res.PassStatus,
			Judge:       res.JudgeName,
		}
		if _, aerr := e.audit.RecordAssessment(ctx, ev); aerr != nil {
			e.log.Warn("audit record failed", "error", aerr)
		}
	}
	return res, nil
}

// Statistics reports counts for every entity kind in the current graph.
func (e *Engine) Statistics() graph.Statistics {
	return e.store.Snapshot().Statistics()
}
