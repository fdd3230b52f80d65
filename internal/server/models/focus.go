package models

import "time"

// Focus is one node of a user's focus tree. The root has a nil
// ParentFocusID; every other node points at an existing node of the same user.
type Focus struct {
	ID            string
	UserID        string
	ParentFocusID *string
	Name          string
	CreatedAt     time.Time

	// Children holds the immediate children only and is filled by reads that
	// ask for them. Grandchildren are never loaded.
	Children []Focus
}

// IsRoot reports whether f anchors its owner's tree.
func (f *Focus) IsRoot() bool {
	return f.ParentFocusID == nil
}
