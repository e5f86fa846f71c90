// Package moderation assembles conversational context for new comments
// and rewrites hostile language through an external text-generation
// service. The transform is strictly best-effort: every failure mode
// falls back to the author's original text, so moderation can never
// block a submission.
package moderation

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Moderator applies the rewriting transform with a bounded timeout.
type Moderator struct {
	rewriter TextRewriter
	timeout  time.Duration
	log      *zap.SugaredLogger
}

// NewModerator wires a rewriter. A nil rewriter disables moderation;
// comments then pass through unchanged.
func NewModerator(rewriter TextRewriter, timeout time.Duration, log *zap.SugaredLogger) *Moderator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Moderator{rewriter: rewriter, timeout: timeout, log: log}
}

// Moderate rewrites newText given the post body and prior turns. The
// returned string is always a usable comment body: on any rewriter
// error, an empty or whitespace-only response, or a response that is
// empty after cleanup, the original newText comes back unchanged.
func (m *Moderator) Moderate(ctx context.Context, postContent string, history []ContextEntry, newText string) string {
	if m == nil || m.rewriter == nil {
		return newText
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	prompt := buildPrompt(postContent, history, newText)
	out, err := m.rewriter.Rewrite(ctx, prompt)
	if err != nil {
		if m.log != nil {
			m.log.Warnf("moderation rewrite failed, keeping original text: %v", err)
		}
		return newText
	}

	cleaned := cleanResponse(out)
	if cleaned == "" {
		if m.log != nil {
			m.log.Warn("moderation rewrite returned empty text, keeping original")
		}
		return newText
	}
	return cleaned
}

// cleanResponse normalizes a raw completion: trims whitespace, strips a
// single surrounding quotation-mark pair when both are present, and
// removes emphasis markers the service sometimes adds despite the
// output-format instruction.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}
