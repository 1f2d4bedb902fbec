package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mhartley/compass/internal/graph"
	"github.com/mhartley/compass/internal/reasoning"
	"github.com/mhartley/compass/internal/scoring"
)

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthcheck", s.handleHealth)

	api := r.Group("/api")
	api.POST("/ontology", s.handleLoadOntology)
	api.GET("/skills", s.handleFindSkills)
	api.GET("/skills/:code", s.handleGetSkill)
	api.GET("/roles/:code", s.handleGetRole)
	api.POST("/gap", s.handleGap)
	api.POST("/pathways", s.handlePathways)
	api.POST("/team", s.handleMatchTeam)
	api.POST("/score", s.handleScore)
	api.GET("/stats", s.handleStats)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLoadOntology(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body: " + err.Error()})
		return
	}
	replace := c.Query("replace") == "true"

	res, err := s.engine.LoadOntology(c.Request.Context(), raw, replace)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleFindSkills(c *gin.Context) {
	f := graph.Filter{
		Category: c.Query("category"),
		Keyword:  c.Query("q"),
	}
	if lv := c.Query("level"); lv != "" {
		n, err := strconv.Atoi(lv)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level must be an integer"})
			return
		}
		f.Level = n
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	skills := s.engine.FindSkills(f, limit)
	c.JSON(http.StatusOK, gin.H{"skills": skills, "count": len(skills)})
}

func (s *Server) handleGetSkill(c *gin.Context) {
	sk, levels, err := s.engine.GetSkill(c.Param("code"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skill": sk, "levels": levels})
}

func (s *Server) handleGetRole(c *gin.Context) {
	role, profile, err := s.engine.GetRole(c.Param("code"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role, "profile": profile})
}

type gapRequest struct {
	RoleCode string         `json:"role_code" binding:"required"`
	Current  map[string]int `json:"current"`
}

func (s *Server) handleGap(c *gin.Context) {
	var req gapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gaps, err := s.engine.Gap(req.RoleCode, req.Current)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gaps": gaps, "count": len(gaps)})
}

type pathwaysRequest struct {
	RoleCode  string `json:"role_code" binding:"required"`
	MinShared int    `json:"min_shared"`
}

func (s *Server) handlePathways(c *gin.Context) {
	var req pathwaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pathways, err := s.engine.Pathways(req.RoleCode, req.MinShared)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pathways": pathways, "count": len(pathways)})
}

type teamRequest struct {
	RoleCode   string                `json:"role_code" binding:"required"`
	Candidates []reasoning.Candidate `json:"candidates" binding:"required"`

	// MissingPenalty overrides the default when non-nil.
	MissingPenalty *float64 `json:"missing_penalty"`
}

func (s *Server) handleMatchTeam(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg := reasoning.DefaultTeamMatchConfig()
	if req.MissingPenalty != nil {
		cfg.MissingPenalty = *req.MissingPenalty
	}
	match, err := s.engine.MatchTeam(req.RoleCode, req.Candidates, cfg)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (s *Server) handleScore(c *gin.Context) {
	var req scoring.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.engine.ScorePortfolio(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Statistics())
}

// writeError maps domain errors to HTTP statuses: schema and request
// validation failures are 400, missing entities 404, an unavailable
// reflection judge 503, anything else 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var (
		schemaErr   *graph.ErrSchemaViolation
		notFound    *graph.ErrNotFound
		emptyErr    *scoring.ErrEmptyEvidence
		skillErr    *scoring.ErrUnknownSkill
		levelErr    *scoring.ErrUnknownLevel
		orphanErr   *scoring.ErrOrphanComment
		unavailable *scoring.ErrScoringUnavailable
	)

	switch {
	case errors.As(err, &schemaErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "schema violation", "problems": schemaErr.Problems})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &emptyErr), errors.As(err, &skillErr),
		errors.As(err, &levelErr), errors.As(err, &orphanErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		s.log.Error("internal error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
