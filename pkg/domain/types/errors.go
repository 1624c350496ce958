package types

import "github.com/m-mizutani/goerr/v2"

// TagNotFound marks errors that represent an absent resource (e.g. a 404 from
// the hosting API) as opposed to an infrastructure failure. Callers that need
// to branch on absence must use IsNotFound instead of inspecting messages.
var TagNotFound = goerr.NewTag("not_found")

// ErrNotFound is the base error for absent resources.
var ErrNotFound = goerr.New("not found", goerr.T(TagNotFound))

// IsNotFound reports whether err represents an absent resource
func IsNotFound(err error) bool {
	return goerr.HasTag(err, TagNotFound)
}
