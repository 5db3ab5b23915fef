// Package catalog holds the exams available to take and validates exam
// definitions loaded from disk.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/examportal/internal/logging"
)

// Catalog is an immutable, ID-indexed set of exams.
type Catalog struct {
	exams []ExamConfig
	byID  map[string]int
}

// New validates exams and indexes them. When two definitions share an ID the
// one with the higher version is kept; equal versions keep the first.
func New(exams []ExamConfig) (*Catalog, error) {
	logger := logging.Component("catalog")

	var errs []string
	chosen := make(map[string]ExamConfig)
	var order []string
	for _, cfg := range exams {
		cfg = cfg.Clone()
		cfg.normalize()
		if err := Validate(cfg); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		prev, ok := chosen[cfg.ID]
		if !ok {
			order = append(order, cfg.ID)
			chosen[cfg.ID] = cfg
			continue
		}
		if semver.Compare(cfg.Version, prev.Version) > 0 {
			logger.Info().Str("exam", cfg.ID).
				Str("from", prev.Version).Str("to", cfg.Version).
				Msg("exam definition overridden by newer version")
			chosen[cfg.ID] = cfg
		} else {
			logger.Debug().Str("exam", cfg.ID).Str("version", cfg.Version).
				Msg("ignoring exam definition with older or equal version")
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	if len(order) == 0 {
		return nil, errors.New("catalog is empty")
	}

	c := &Catalog{byID: make(map[string]int, len(order))}
	for _, id := range order {
		c.exams = append(c.exams, chosen[id])
	}
	sort.SliceStable(c.exams, func(i, j int) bool {
		return c.exams[i].Name < c.exams[j].Name
	})
	for i, e := range c.exams {
		c.byID[e.ID] = i
	}
	return c, nil
}

// Len returns the number of exams.
func (c *Catalog) Len() int {
	return len(c.exams)
}

// All returns copies of every exam sorted by name.
func (c *Catalog) All() []ExamConfig {
	out := make([]ExamConfig, len(c.exams))
	for i, e := range c.exams {
		out[i] = e.Clone()
	}
	return out
}

// Get returns a copy of the exam with the given ID.
func (c *Catalog) Get(id string) (ExamConfig, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ExamConfig{}, false
	}
	return c.exams[i].Clone(), true
}

// Topics returns the distinct question topics across all exams, sorted.
func (c *Catalog) Topics() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.exams {
		for _, q := range e.Questions {
			if !seen[q.Topic] {
				seen[q.Topic] = true
				out = append(out, q.Topic)
			}
		}
	}
	sort.Strings(out)
	return out
}

// QuestionsByTopic returns copies of every question on topic. An empty topic
// matches all questions. Question IDs are prefixed with the exam ID so they
// stay unique once pooled.
func (c *Catalog) QuestionsByTopic(topic string) []Question {
	var out []Question
	for _, e := range c.exams {
		for _, q := range e.Questions {
			if topic != "" && q.Topic != topic {
				continue
			}
			q = q.Clone()
			q.ID = e.ID + "/" + q.ID
			out = append(out, q)
		}
	}
	return out
}
