package models

import "testing"

// buildThread creates a post with a reply chain nested to the given
// depth under its first top-level comment.
func buildThread(depth int) (*Post, *Comment) {
	post := NewPost("author", "post body", "")
	top := NewComment("author", "top", post.ID, "", "")
	post.AddComment(top)

	current := top
	for i := 0; i < depth; i++ {
		reply := NewComment("author", "reply", post.ID, "", current.ID)
		current.AddReply(reply)
		current = reply
	}
	return post, current
}

func TestFindCommentAtAnyDepth(t *testing.T) {
	for _, depth := range []int{0, 1, 2, 7} {
		post, deepest := buildThread(depth)
		if got := post.FindComment(deepest.ID); got != deepest {
			t.Fatalf("depth %d: FindComment(%q) = %v, want the nested comment", depth, deepest.ID, got)
		}
	}
}

func TestFindCommentChecksSiblingsAfterReplies(t *testing.T) {
	post := NewPost("author", "post body", "")
	first := NewComment("author", "first", post.ID, "", "")
	nested := NewComment("author", "nested", post.ID, "", first.ID)
	first.AddReply(nested)
	second := NewComment("author", "second", post.ID, "", "")
	post.AddComment(first)
	post.AddComment(second)

	if got := post.FindComment(nested.ID); got != nested {
		t.Fatalf("expected nested comment, got %v", got)
	}
	if got := post.FindComment(second.ID); got != second {
		t.Fatalf("expected second top-level comment, got %v", got)
	}
}

func TestFindCommentMissing(t *testing.T) {
	post, _ := buildThread(3)
	if got := post.FindComment("no-such-id"); got != nil {
		t.Fatalf("FindComment for absent id = %v, want nil", got)
	}
}

func TestNewCommentDefaultsOriginalContent(t *testing.T) {
	c := NewComment("u1", "displayed text", "p1", "", "")
	if c.OriginalContent != "displayed text" {
		t.Fatalf("OriginalContent = %q, want the displayed text", c.OriginalContent)
	}

	c = NewComment("u1", "rewritten", "p1", "raw original", "")
	if c.OriginalContent != "raw original" {
		t.Fatalf("OriginalContent = %q, want %q", c.OriginalContent, "raw original")
	}
	if c.ModeratedContent != "rewritten" {
		t.Fatalf("ModeratedContent = %q, want %q", c.ModeratedContent, "rewritten")
	}
}

func TestAddReplyKeepsOrder(t *testing.T) {
	post := NewPost("author", "post body", "")
	top := NewComment("author", "top", post.ID, "", "")
	post.AddComment(top)

	first := NewComment("a", "one", post.ID, "", top.ID)
	second := NewComment("b", "two", post.ID, "", top.ID)
	top.AddReply(first)
	top.AddReply(second)

	if len(top.Replies) != 2 || top.Replies[0] != first || top.Replies[1] != second {
		t.Fatalf("replies not in arrival order: %v", top.Replies)
	}
}

func TestCommentCount(t *testing.T) {
	post, _ := buildThread(3)
	extra := NewComment("author", "extra", post.ID, "", "")
	post.AddComment(extra)

	if got := post.CommentCount(); got != 5 {
		t.Fatalf("CommentCount() = %d, want 5", got)
	}
}
