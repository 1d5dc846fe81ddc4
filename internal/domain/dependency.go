package domain

// Dependency says DependentID cannot finish before PrerequisiteID.
// The Prerequisite* fields are filled from a join when read.
type Dependency struct {
	ID             int64
	ProjectID      int64
	ItemKind       ItemKind
	PrerequisiteID int64
	DependentID    int64
	Type           DependencyType

	PrerequisiteTitle  string
	PrerequisiteStatus WorkItemStatus
	PrerequisiteHours  float64
}

// Complete reports whether the prerequisite is in the closed-state set.
func (d Dependency) Complete() bool {
	return d.PrerequisiteStatus.IsClosed()
}
