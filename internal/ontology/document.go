// Package ontology parses and validates framework definition documents
// produced by the external authoritative source (spreadsheet/document
// converter) and loads them into the graph store. A document is rejected
// as a whole on any violation.
package ontology

import (
	"github.com/mhartley/compass/internal/framework"
	"github.com/mhartley/compass/internal/graph"
)

// Document is the on-wire JSON form of a fact batch.
type Document struct {
	Framework string `json:"framework"`
	Version   string `json:"version"`

	Levels []struct {
		Rank    int    `json:"rank"`
		Guiding string `json:"guiding"`
		Essence string `json:"essence"`
	} `json:"levels"`

	Skills []struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		Subcategory string `json:"subcategory"`
		Description string `json:"description"`
		Levels      []int  `json:"levels"`
	} `json:"skills"`

	Attributes []struct {
		Code              string         `json:"code"`
		Name              string         `json:"name"`
		LevelDescriptions map[string]string `json:"level_descriptions"`
	} `json:"attributes"`

	SkillLevels []struct {
		Skill       string `json:"skill"`
		Level       int    `json:"level"`
		Description string `json:"description"`
	} `json:"skill_levels"`

	Roles []struct {
		Code         string `json:"code"`
		Name         string `json:"name"`
		Requirements []struct {
			Skill     string `json:"skill"`
			Level     int    `json:"level"`
			Essential bool   `json:"essential"`
		} `json:"requirements"`
	} `json:"roles"`

	Prerequisites []struct {
		Skill string `json:"skill"`
		From  int    `json:"from"`
		To    int    `json:"to"`
	} `json:"prerequisites"`

	Complements []struct {
		A string `json:"a"`
		B string `json:"b"`
	} `json:"complements"`
}

// facts converts the document into a graph fact batch. Attribute level
// descriptions arrive with string keys (JSON objects); non-numeric keys are
// caught by schema validation before this runs.
func (d *Document) facts() graph.Facts {
	var f graph.Facts

	for _, l := range d.Levels {
		f.Levels = append(f.Levels, framework.Level{
			Rank:    l.Rank,
			Guiding: l.Guiding,
			Essence: l.Essence,
		})
	}
	for _, s := range d.Skills {
		f.Skills = append(f.Skills, framework.Skill{
			Code:            s.Code,
			Name:            s.Name,
			Category:        s.Category,
			Subcategory:     s.Subcategory,
			Description:     s.Description,
			AvailableLevels: s.Levels,
		})
	}
	for _, a := range d.Attributes {
		attr := framework.Attribute{
			Code:              a.Code,
			Name:              a.Name,
			LevelDescriptions: make(map[int]string, len(a.LevelDescriptions)),
		}
		for key, desc := range a.LevelDescriptions {
			attr.LevelDescriptions[levelKeyToRank(key)] = desc
		}
		f.Attributes = append(f.Attributes, attr)
	}
	for _, sl := range d.SkillLevels {
		f.SkillLevels = append(f.SkillLevels, framework.SkillLevel{
			SkillCode:   sl.Skill,
			Level:       sl.Level,
			Description: sl.Description,
		})
	}
	for _, r := range d.Roles {
		role := framework.Role{Code: r.Code, Name: r.Name}
		for _, req := range r.Requirements {
			role.Requirements = append(role.Requirements, framework.Requirement{
				SkillCode: req.Skill,
				MinLevel:  req.Level,
				Essential: req.Essential,
			})
		}
		f.Roles = append(f.Roles, role)
	}
	for _, p := range d.Prerequisites {
		f.Prerequisites = append(f.Prerequisites, graph.Prerequisite{
			SkillCode: p.Skill,
			FromLevel: p.From,
			ToLevel:   p.To,
		})
	}
	for _, c := range d.Complements {
		f.Complements = append(f.Complements, graph.Complement{SkillA: c.A, SkillB: c.B})
	}

	return f
}

func levelKeyToRank(key string) int {
	rank := 0
	for _, ch := range key {
		if ch < '0' || ch > '9' {
			return -1
		}
		rank = rank*10 + int(ch-'0')
	}
	return rank
}
