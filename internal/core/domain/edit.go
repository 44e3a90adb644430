package domain

import (
	"fmt"
	"strings"
	"time"
)

// EditSession is the content of the single "currently editing" slot.
// A zero PostID means the slot holds an empty draft.
type EditSession struct {
	PostID    uint64
	ActorID   uint64
	Snapshot  Post
	StartedAt time.Time
}

func (s EditSession) IsEmpty() bool {
	return s.PostID == 0
}

func (s EditSession) Draft() PostDraft {
	if s.IsEmpty() {
		return PostDraft{}
	}
	return s.Snapshot.Draft()
}

type DiscardPolicy string

const (
	// DiscardDeletes removes the post being edited outright.
	DiscardDeletes DiscardPolicy = "delete"
	// DiscardReverts restores the post to the snapshot taken when editing started.
	DiscardReverts DiscardPolicy = "revert"
)

func ParseDiscardPolicy(value string) (DiscardPolicy, error) {
	switch DiscardPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", DiscardDeletes:
		return DiscardDeletes, nil
	case DiscardReverts:
		return DiscardReverts, nil
	default:
		return "", fmt.Errorf("unknown discard policy %q", value)
	}
}
