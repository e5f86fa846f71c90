package moderation

import "github.com/Marcelmutsaarts/Dialink/models"

// UnknownUser labels context entries whose author id no longer resolves
// to a registered username.
const UnknownUser = "Unknown User"

// ContextEntry is one prior conversation turn shown to the rewriter.
type ContextEntry struct {
	Author string
	Text   string
}

// BuildContext assembles the conversational history for a post: its
// top-level comments in stored order, each rendered with the author's
// display name and the comment's moderated text. The displayed text is
// used on purpose; the rewriter must never see withheld originals.
//
// Replies deep in the tree get the same full top-level list as context.
// That is a deliberate simplification of the product: the rewriter
// mostly needs the tone of the thread, not the exact ancestor chain.
func BuildContext(post *models.Post, usernames map[string]string) []ContextEntry {
	entries := make([]ContextEntry, 0, len(post.Comments))
	for _, c := range post.Comments {
		author, ok := usernames[c.UserID]
		if !ok {
			author = UnknownUser
		}
		entries = append(entries, ContextEntry{Author: author, Text: c.ModeratedContent})
	}
	return entries
}
