package model

// UserAction is what the user asked the collection to do with a point.
type UserAction int

const (
	ActionUpdatePoint UserAction = iota
	ActionDeletePoint
)

func (a UserAction) String() string {
	switch a {
	case ActionUpdatePoint:
		return "update"
	case ActionDeletePoint:
		return "delete"
	}
	return "unknown"
}

// UpdateType tells the collection how much of the list to redraw.
type UpdateType int

const (
	// UpdateMinor redraws a single point; ordering is unaffected.
	UpdateMinor UpdateType = iota
	// UpdateMajor may change ordering; the whole list is rebuilt.
	UpdateMajor
)

func (t UpdateType) String() string {
	switch t {
	case UpdateMinor:
		return "minor"
	case UpdateMajor:
		return "major"
	}
	return "unknown"
}

// Classify compares a committed edit against the stored point.
// Price, start date and type are major; every other field is minor.
func Classify(before, after Point) UpdateType {
	if before.BasePrice != after.BasePrice ||
		!before.Date.Start.Equal(after.Date.Start) ||
		before.Type != after.Type {
		return UpdateMajor
	}
	return UpdateMinor
}
