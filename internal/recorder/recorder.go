// Package recorder persists exam lifecycle events: history, the activity
// log, progress totals and certificates. Persistence failures are logged
// and swallowed so a result is always delivered.
package recorder

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/examportal/internal/catalog"
	"github.com/abhisek/examportal/internal/certificates"
	"github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/logging"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/user"
)

// Repos groups the repositories the recorder writes to.
type Repos struct {
	History      store.HistoryRepo
	Activity     store.ActivityRepo
	Progress     store.ProgressRepo
	Certificates store.CertificateRepo
}

// ReposFrom returns the repositories of st.
func ReposFrom(st *store.Store) Repos {
	return Repos{
		History:      st.HistoryRepo(),
		Activity:     st.ActivityRepo(),
		Progress:     st.ProgressRepo(),
		Certificates: st.CertificateRepo(),
	}
}

// Options caps the stored logs. Zero values use the store defaults.
type Options struct {
	HistoryLimit  int
	ActivityLimit int
}

// Recorder writes exam events for one user at a time.
type Recorder struct {
	repos  Repos
	certs  *certificates.Service
	opts   Options
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a Recorder.
func New(repos Repos, opts Options) *Recorder {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = store.DefaultHistoryLimit
	}
	if opts.ActivityLimit <= 0 {
		opts.ActivityLimit = store.DefaultActivityLimit
	}
	return &Recorder{
		repos:  repos,
		certs:  certificates.NewService(repos.Certificates),
		opts:   opts,
		logger: logging.Component("recorder"),
		now:    time.Now,
	}
}

// Outcome is what Completed stored, for display on the results screen.
type Outcome struct {
	// Previous holds earlier scores on the same exam, newest first.
	Previous    []int
	Progress    *store.Progress
	Certificate *store.Certificate
}

// Improvement compares the result with the most recent earlier attempt.
func (o *Outcome) Improvement(score int) *grading.Improvement {
	if o == nil {
		return nil
	}
	return grading.CompareToPrevious(score, o.Previous)
}

// Started logs the start of a session.
func (r *Recorder) Started(ctx context.Context, u user.User, cfg catalog.ExamConfig, sessionID string) {
	r.activity(ctx, u, store.ActionExamStarted, cfg.ID, map[string]any{
		"sessionId": sessionID,
		"questions": len(cfg.Questions),
		"duration":  cfg.DurationMinutes,
	})
}

// Exited logs an abandoned session. Nothing is added to history.
func (r *Recorder) Exited(ctx context.Context, u user.User, cfg catalog.ExamConfig, sessionID string) {
	r.activity(ctx, u, store.ActionExamExited, cfg.ID, map[string]any{
		"sessionId": sessionID,
	})
}

// Completed stores a submitted result and returns what was recorded.
// The returned Outcome is never nil; fields are nil where a write failed.
func (r *Recorder) Completed(ctx context.Context, u user.User, res *exam.Result) *Outcome {
	out := &Outcome{}
	if res == nil {
		return out
	}
	lg := r.logger.With().Str("user", u.ID).Str("exam", res.Exam.ID).Str("session", res.SessionID).Logger()

	prev, err := r.repos.History.List(ctx, u.ID, store.QueryOpts{Filter: res.Exam.ID})
	if err != nil {
		lg.Warn().Err(err).Msg("failed to load previous attempts")
	}
	for _, e := range prev {
		out.Previous = append(out.Previous, e.Score)
	}

	taken := res.CompletedAt
	if taken.IsZero() {
		taken = r.now()
	}
	entry := &store.HistoryEntry{
		UserID:           u.ID,
		SessionID:        res.SessionID,
		ExamID:           res.Exam.ID,
		Name:             res.Exam.Name,
		Score:            res.Score,
		Grade:            res.Grade.Letter,
		TakenAt:          taken,
		TimeSpentMinutes: res.TimeSpentSeconds / 60,
		QuestionsCorrect: res.CorrectAnswers,
		TotalQuestions:   res.TotalQuestions,
		AutoSubmitted:    res.IsAutoSubmit,
		Passed:           res.Passed,
	}
	if err := r.repos.History.Append(ctx, entry, r.opts.HistoryLimit); err != nil {
		lg.Warn().Err(err).Msg("failed to append exam history")
	}

	r.activity(ctx, u, store.ActionExamCompleted, res.Exam.ID, map[string]any{
		"sessionId":    res.SessionID,
		"score":        res.Score,
		"grade":        res.Grade.Letter,
		"passed":       res.Passed,
		"autoSubmit":   res.IsAutoSubmit,
		"timeSpentSec": res.TimeSpentSeconds,
	})

	if p, err := r.repos.Progress.Record(ctx, u.ID, res.Passed, grading.XP(res.Score)); err != nil {
		lg.Warn().Err(err).Msg("failed to update progress")
	} else {
		out.Progress = p
	}

	if c, err := r.certs.Issue(ctx, u.ID, res); err != nil {
		lg.Warn().Err(err).Msg("failed to issue certificate")
	} else if c != nil {
		out.Certificate = c
		lg.Info().Str("credential", c.CredentialID).Str("tier", c.Tier).Msg("certificate issued")
	}

	lg.Info().Int("score", res.Score).Str("grade", res.Grade.Letter).Bool("auto", res.IsAutoSubmit).Msg("exam recorded")
	return out
}

// Reset clears the user's history, progress and certificates.
func (r *Recorder) Reset(ctx context.Context, u user.User) error {
	if err := r.repos.History.Clear(ctx, u.ID); err != nil {
		return err
	}
	if err := r.repos.Progress.Reset(ctx, u.ID); err != nil {
		return err
	}
	return r.repos.Certificates.Clear(ctx, u.ID)
}

func (r *Recorder) activity(ctx context.Context, u user.User, action store.ActivityAction, examID string, data map[string]any) {
	a := &store.Activity{
		UserID: u.ID,
		Action: action,
		ExamID: examID,
		Data:   data,
		At:     r.now(),
	}
	if err := r.repos.Activity.Append(ctx, a, r.opts.ActivityLimit); err != nil {
		r.logger.Warn().Err(err).Str("action", string(action)).Str("exam", examID).Msg("failed to log activity")
	}
}
