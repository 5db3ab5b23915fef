// Package practice assembles short practice exams from the pooled catalog,
// topping up with generated questions when a model is configured.
package practice

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/exam"
)

// ErrNoQuestions is returned when no question matches the settings.
var ErrNoQuestions = errors.New("no questions match the practice settings")

// Builder turns Settings into an exam config.
type Builder struct {
	catalog *catalog.Catalog
	gen     Generator

	mu   sync.Mutex // guards rand
	rand *rand.Rand
}

// NewBuilder creates a Builder. gen may be nil, in which case sessions are
// drawn from the catalog only.
func NewBuilder(cat *catalog.Catalog, gen Generator) *Builder {
	return &Builder{
		catalog: cat,
		gen:     gen,
		rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand replaces the random source.
func (b *Builder) WithRand(r *rand.Rand) *Builder {
	b.mu.Lock()
	b.rand = r
	b.mu.Unlock()
	return b
}

// CanGenerate reports whether missing questions can be generated.
func (b *Builder) CanGenerate() bool {
	return b.gen != nil
}

// Available counts pooled questions matching topic and difficulty.
func (b *Builder) Available(topic string, d catalog.Difficulty) int {
	return len(b.pool(topic, d))
}

// Build returns an exam config with up to s.Count questions. Catalog
// questions are drawn at random. When the pool is short and a generator is
// set, the rest are generated; generation failures end the top-up early
// and the exam runs with what it has.
func (b *Builder) Build(ctx context.Context, s Settings) (catalog.ExamConfig, error) {
	if err := s.Validate(); err != nil {
		return catalog.ExamConfig{}, err
	}

	pool := b.pool(s.Topic, s.Difficulty)
	b.mu.Lock()
	exam.Shuffle(b.rand, pool)
	b.mu.Unlock()
	if len(pool) > s.Count {
		pool = pool[:s.Count]
	}

	if missing := s.Count - len(pool); missing > 0 && b.gen != nil {
		pool = append(pool, b.generate(ctx, s, pool, missing)...)
	}
	if len(pool) == 0 {
		return catalog.ExamConfig{}, ErrNoQuestions
	}

	topicName := s.Topic
	if topicName == "" {
		topicName = "All Topics"
	}
	cfg := catalog.ExamConfig{
		ID:              ExamID(s.Topic, s.Mode),
		Name:            fmt.Sprintf("%s: %s", s.Mode.Title(), topicName),
		Description:     s.Mode.Description(),
		DurationMinutes: s.Minutes,
		Difficulty:      s.Difficulty,
		Version:         "v1.0.0",
		Questions:       pool,
	}
	return catalog.Prepare(cfg)
}

func (b *Builder) generate(ctx context.Context, s Settings, have []catalog.Question, n int) []catalog.Question {
	in := Input{Topic: s.Topic, Difficulty: s.Difficulty}
	for _, q := range have {
		in.Prior = append(in.Prior, q.Text)
	}
	for _, q := range b.catalog.QuestionsByTopic(s.Topic) {
		in.Examples = append(in.Examples, q.Text)
	}

	var out []catalog.Question
	for i := 0; i < n; i++ {
		q, err := b.gen.Generate(ctx, in)
		if err != nil {
			log.Warn().Err(err).Str("topic", s.Topic).Int("generated", len(out)).Msg("question generation stopped")
			break
		}
		q.ID = fmt.Sprintf("gen-%d", i+1)
		if q.Difficulty == "" {
			q.Difficulty = s.Difficulty
		}
		in.Prior = append(in.Prior, q.Text)
		out = append(out, *q)
	}
	return out
}

func (b *Builder) pool(topic string, d catalog.Difficulty) []catalog.Question {
	all := b.catalog.QuestionsByTopic(topic)
	if d == "" {
		return all
	}
	out := all[:0]
	for _, q := range all {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out
}

// ExamID returns the id of a practice exam, practice-<topic>-<mode>.
func ExamID(topic string, m Mode) string {
	slug := "all"
	if topic != "" {
		slug = slugify(topic)
	}
	return fmt.Sprintf("practice-%s-%s", slug, m)
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "topic"
	}
	return out
}
