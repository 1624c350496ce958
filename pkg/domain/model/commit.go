package model

import "strings"

// BreakingChangeMarker is the literal footer marker that forces a major
// release regardless of the commit type
const BreakingChangeMarker = "BREAKING CHANGE"

// RawCommit is one revision as read from source-control history, before
// classification. Body may be empty.
type RawCommit struct {
	ID      string // Full commit hash
	Subject string // First line of the commit message
	Body    string // Remainder of the message, empty if none
}

// Message joins subject and body back into the full commit message
func (r *RawCommit) Message() string {
	if r.Body == "" {
		return r.Subject
	}
	return r.Subject + "\n\n" + r.Body
}

// Commit is a classified revision. Type, Scope and Breaking are only
// populated when conventional-commit parsing is enabled and the message
// carries a recognizable header; their absence is not an error.
type Commit struct {
	ID       string
	Message  string
	Type     string
	Scope    string
	Breaking bool
}

// Subject returns the first line of the commit message
func (c *Commit) Subject() string {
	if idx := strings.IndexByte(c.Message, '\n'); idx >= 0 {
		return c.Message[:idx]
	}
	return c.Message
}

// ShortID returns the abbreviated commit hash
func (c *Commit) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// IsBreaking reports whether this commit forces a major release, either via
// its parsed breaking flag or via the literal marker anywhere in the message
func (c *Commit) IsBreaking() bool {
	return c.Breaking || strings.Contains(c.Message, BreakingChangeMarker)
}
