package store

import "errors"

// Sentinel errors for store lookups and mutations. They are surfaced to the
// originating caller only, never broadcast, and none of them is
// process-fatal.
var (
	ErrUnknownIdentity = errors.New("unknown identity")
	ErrPostNotFound    = errors.New("post not found")
	ErrNotOwner        = errors.New("not the post owner")
)
