package middleware

import (
	"context"
	"regexp"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/ports"
)

const mask = "***"

type redactMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks substrings of
// worker free text matching the patterns before persisting. Sessions carry
// verbatim trainee input, which can contain phone numbers or names; stores
// behind this middleware never see the raw values.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactMiddleware) Save(ctx context.Context, sess *domain.Session) error {
	// Clone before masking so the in-memory session used by the caller is
	// not mutated.
	cloned := *sess
	cloned.Turns = make([]domain.Turn, len(sess.Turns))
	copy(cloned.Turns, sess.Turns)
	for i := range cloned.Turns {
		cloned.Turns[i].UserText = m.redact(cloned.Turns[i].UserText)
	}

	if sess.Report != nil {
		report := *sess.Report
		report.Transcript = make([]domain.TranscriptEntry, len(sess.Report.Transcript))
		copy(report.Transcript, sess.Report.Transcript)
		for i := range report.Transcript {
			report.Transcript[i].Worker = m.redact(report.Transcript[i].Worker)
		}
		cloned.Report = &report
	}

	return m.next.Save(ctx, &cloned)
}

func (m *redactMiddleware) redact(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, mask)
	}
	return s
}

func (m *redactMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *redactMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactMiddleware) Recent(ctx context.Context, deviceID string, limit int) ([]*domain.Session, error) {
	return m.next.Recent(ctx, deviceID, limit)
}
