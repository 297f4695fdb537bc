// Package collab defines the narrow, failure-tolerant contracts for the
// external collaborators the evaluator consumes: the network profile, the
// code-hosting profile, the personal website and the uploaded resume.
//
// Every fetch returns a Result instead of throwing across the boundary: a
// failed fetch carries its error for logging but always degrades to the zero
// value of the snapshot, so evaluation never aborts on a missing source.
package collab

import (
	"context"

	"etf-grader/internal/candidate"
)

// Result wraps a collaborator snapshot with its fetch outcome.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the fetch succeeded.
func (r Result[T]) Ok() bool { return r.Err == nil }

// Soft builds a degraded Result carrying the zero value alongside the error.
func Soft[T any](err error) Result[T] {
	var zero T
	return Result[T]{Value: zero, Err: err}
}

// Of builds a successful Result.
func Of[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// ProfileFetcher fetches a network profile for a profile URL.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, url string) Result[candidate.Profile]
}

// CodeProfileFetcher fetches a code-hosting profile for a username or URL.
type CodeProfileFetcher interface {
	FetchCodeProfile(ctx context.Context, url string) Result[candidate.CodeProfile]
}

// WebsiteFetcher fetches and summarizes a personal website.
type WebsiteFetcher interface {
	FetchWebsite(ctx context.Context, url string) Result[candidate.Website]
}

// ResumeLoader loads and structures an uploaded resume from a local path.
type ResumeLoader interface {
	LoadResume(ctx context.Context, path string) Result[candidate.Resume]
}
