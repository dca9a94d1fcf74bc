package domain

import (
	"errors"
	"fmt"
)

// Kind is the closed set of finding kinds a record can carry.
type Kind string

const (
	KindCommit      Kind = "commit"
	KindPullRequest Kind = "pull_request"
	KindCode        Kind = "code"
)

// LifecycleState is the merge status of a pull request.
type LifecycleState string

const (
	StateMerged LifecycleState = "merged"
	StateOpen   LifecycleState = "open"
	StateClosed LifecycleState = "closed"
)

// Validation errors returned when a wire row does not form a valid record.
var (
	ErrUnknownKind                       = errors.New("unknown record kind")
	ErrUnknownState                      = errors.New("unknown lifecycle state")
	ErrStateOnNonPullRequest             = errors.New("lifecycle state is only valid on pull requests")
	ErrPullRequestFieldsOnNonPullRequest = errors.New("pull request fields are only valid on pull requests")
	ErrMissingPullRequestNumber          = errors.New("pull request number is required")
	ErrMissingCommitHash                 = errors.New("commit hash is required")
	ErrMissingRepository                 = errors.New("repository is required")
)

// ParseKind validates a raw kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCommit, KindPullRequest, KindCode:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ParseLifecycleState validates a raw lifecycle state string.
func ParseLifecycleState(s string) (LifecycleState, error) {
	switch LifecycleState(s) {
	case StateMerged, StateOpen, StateClosed:
		return LifecycleState(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownState, s)
	}
}

// Base holds the fields every vulnerability record carries,
// whatever its kind.
type Base struct {
	// Repository is the "org/project" identifier on the hosting platform.
	Repository string

	// Year the finding was recorded.
	Year int

	// Title is the curated summary. May be empty.
	Title string

	// Message is the raw message (commit message, PR body line).
	// Used when Title is empty.
	Message string

	// Author is the username that introduced the fix.
	Author string

	// FilePath is the affected file, relative to the repository root.
	FilePath string

	// CommitHash anchors deep links for commits and code findings.
	CommitHash string
}

// Summary returns the title, falling back to the message.
func (b Base) Summary() string {
	if b.Title != "" {
		return b.Title
	}
	return b.Message
}

// Record is one vulnerability finding. The set of implementations is closed:
// CommitRecord, PullRequestRecord and CodeRecord.
type Record interface {
	Kind() Kind
	Info() Base
	isRecord()
}

// CommitRecord is a finding fixed by a direct commit.
type CommitRecord struct {
	Base
}

func (CommitRecord) Kind() Kind   { return KindCommit }
func (r CommitRecord) Info() Base { return r.Base }
func (CommitRecord) isRecord()    {}

// CodeRecord is a finding located in code, anchored on the commit that
// touched it.
type CodeRecord struct {
	Base
}

func (CodeRecord) Kind() Kind   { return KindCode }
func (r CodeRecord) Info() Base { return r.Base }
func (CodeRecord) isRecord()    {}

// PullRequestRecord is a finding fixed (or being fixed) through a pull request.
type PullRequestRecord struct {
	Base

	// InternalID is the platform's internal identifier. Zero when unknown.
	InternalID int64

	// Number is the user-facing pull request number used in links.
	Number int

	// State is the lifecycle state of the pull request.
	State LifecycleState
}

func (PullRequestRecord) Kind() Kind   { return KindPullRequest }
func (r PullRequestRecord) Info() Base { return r.Base }
func (PullRequestRecord) isRecord()    {}

// StateOf returns the lifecycle state of a record, if it has one.
func StateOf(r Record) (LifecycleState, bool) {
	if pr, ok := r.(PullRequestRecord); ok && pr.State != "" {
		return pr.State, true
	}
	return "", false
}
