package moderation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Marcelmutsaarts/Dialink/models"
)

type fakeRewriter struct {
	reply string
	err   error
}

func (f *fakeRewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

func TestModerateFallsBackToOriginal(t *testing.T) {
	cases := []struct {
		name     string
		rewriter TextRewriter
	}{
		{name: "rewriter error", rewriter: &fakeRewriter{err: errors.New("network down")}},
		{name: "empty response", rewriter: &fakeRewriter{reply: ""}},
		{name: "whitespace response", rewriter: &fakeRewriter{reply: "  \n\t "}},
		{name: "only markup", rewriter: &fakeRewriter{reply: `"****"`}},
		{name: "no rewriter", rewriter: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModerator(tc.rewriter, time.Second, nil)
			got := m.Moderate(context.Background(), "post", nil, "You never listen!!")
			if got != "You never listen!!" {
				t.Fatalf("Moderate() = %q, want the original text", got)
			}
		})
	}
}

func TestModerateCleansResponse(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "quotes and emphasis", reply: `"Hello **world**"`, want: "Hello world"},
		{name: "only leading quote kept", reply: `"Hello`, want: `"Hello`},
		{name: "surrounding whitespace", reply: "  rewritten text \n", want: "rewritten text"},
		{name: "clean response untouched", reply: "Already fine.", want: "Already fine."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModerator(&fakeRewriter{reply: tc.reply}, time.Second, nil)
			got := m.Moderate(context.Background(), "post", nil, "original")
			if got != tc.want {
				t.Fatalf("Moderate() = %q, want %q", got, tc.want)
			}
		})
	}
}

type promptCapture struct {
	prompt string
}

func (p *promptCapture) Rewrite(ctx context.Context, prompt string) (string, error) {
	p.prompt = prompt
	return "ok", nil
}

func TestPromptEmbedsConversation(t *testing.T) {
	capture := &promptCapture{}
	m := NewModerator(capture, time.Second, nil)

	history := []ContextEntry{
		{Author: "Alice", Text: "I feel ignored."},
		{Author: "Bob", Text: "That was not my intent."},
	}
	m.Moderate(context.Background(), "The post body", history, "You never listen!!")

	for _, want := range []string{
		"The post body",
		"1. Alice: I feel ignored.",
		"2. Bob: That was not my intent.",
		"Newest comment to review and possibly rewrite: You never listen!!",
	} {
		if !strings.Contains(capture.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, capture.prompt)
		}
	}
}

func TestPromptMarksEmptyHistory(t *testing.T) {
	capture := &promptCapture{}
	m := NewModerator(capture, time.Second, nil)

	m.Moderate(context.Background(), "The post body", nil, "First!")
	if !strings.Contains(capture.prompt, "(No prior comments yet)") {
		t.Fatalf("prompt missing the empty-history marker:\n%s", capture.prompt)
	}
}

func TestPromptRespectsTimeout(t *testing.T) {
	m := NewModerator(&deadlineChecker{t: t}, 5*time.Second, nil)
	m.Moderate(context.Background(), "post", nil, "text")
}

type deadlineChecker struct {
	t *testing.T
}

func (d *deadlineChecker) Rewrite(ctx context.Context, prompt string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		d.t.Fatal("rewrite context carries no deadline")
	}
	return "ok", nil
}

func TestBuildContextUsesModeratedTextAndUsernames(t *testing.T) {
	post := models.NewPost("u-alice", "Post body", "")
	c1 := models.NewComment("u-alice", "I feel ignored.", post.ID, "I FEEL IGNORED", "")
	c2 := models.NewComment("u-ghost", "Me too.", post.ID, "", "")
	post.AddComment(c1)
	post.AddComment(c2)
	// Replies are not part of the context; only the top-level list is.
	c1.AddReply(models.NewComment("u-alice", "nested", post.ID, "", c1.ID))

	entries := BuildContext(post, map[string]string{"u-alice": "Alice"})

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Author != "Alice" || entries[0].Text != "I feel ignored." {
		t.Fatalf("entry 0 = %+v, want moderated text under the author's name", entries[0])
	}
	if entries[1].Author != UnknownUser {
		t.Fatalf("entry 1 author = %q, want %q", entries[1].Author, UnknownUser)
	}
}

func TestBuildContextEmptyThread(t *testing.T) {
	post := models.NewPost("u1", "Post body", "")
	if entries := BuildContext(post, nil); len(entries) != 0 {
		t.Fatalf("got %d entries for an empty thread", len(entries))
	}
}
