// Package certificates issues a credential for every passed exam.
package certificates

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/store"
)

// StatusVerified is the status of every issued certificate.
const StatusVerified = "verified"

// Service issues and lists certificates.
type Service struct {
	repo  store.CertificateRepo
	now   func() time.Time
	newID func() string
}

// NewService creates a Service backed by repo.
func NewService(repo store.CertificateRepo) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Issue stores a certificate for a passed result. It returns nil without
// error when the result did not pass.
func (s *Service) Issue(ctx context.Context, userID string, r *exam.Result) (*store.Certificate, error) {
	if r == nil || !r.Passed {
		return nil, nil
	}
	issued := r.CompletedAt
	if issued.IsZero() {
		issued = s.now()
	}
	c := &store.Certificate{
		CredentialID: CredentialID(r.Exam.ID, issued.Year(), s.newID()),
		UserID:       userID,
		ExamID:       r.Exam.ID,
		Title:        r.Exam.Name,
		Score:        r.Score,
		Grade:        r.Grade.Letter,
		Tier:         string(TierFor(r.Score)),
		Status:       StatusVerified,
		IssuedAt:     issued,
	}
	if err := s.repo.Issue(ctx, c); err != nil {
		return nil, fmt.Errorf("issue certificate for %s: %w", r.Exam.ID, err)
	}
	return c, nil
}

// List returns the user's certificates, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]store.Certificate, error) {
	return s.repo.List(ctx, userID)
}

// CredentialID formats UPPER(examID)-YYYY-XXXXXX, taking the suffix from
// the first six hex digits of id.
func CredentialID(examID string, year int, id string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("%s-%04d-%s", strings.ToUpper(examID), year, suffix)
}

// Summary aggregates a list of certificates.
type Summary struct {
	Total        int
	AverageScore int
	Verified     int
	ByTier       map[Tier]int
}

// Summarize computes totals over certs. AverageScore is rounded.
func Summarize(certs []store.Certificate) Summary {
	sum := Summary{ByTier: make(map[Tier]int)}
	total := 0
	for _, c := range certs {
		sum.Total++
		total += c.Score
		if c.Status == StatusVerified {
			sum.Verified++
		}
		sum.ByTier[Tier(c.Tier)]++
	}
	if sum.Total > 0 {
		sum.AverageScore = int(math.Round(float64(total) / float64(sum.Total)))
	}
	return sum
}
