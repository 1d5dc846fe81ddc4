package domain

import (
	"fmt"
	"regexp"
	"time"
)

var projectKeyPattern = regexp.MustCompile(`^[A-Z]{2,6}[0-9]{0,4}$`)

type Project struct {
	ID        int64
	Key       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateKey checks that Key is 2-6 uppercase letters optionally followed by
// up to 4 digits (e.g. MPT, CORE01).
func (p *Project) ValidateKey() error {
	if p.Key == "" {
		return fmt.Errorf("project key is required")
	}
	if !projectKeyPattern.MatchString(p.Key) {
		return fmt.Errorf("project key %q must be 2-6 uppercase letters followed by up to 4 digits (e.g. MPT01)", p.Key)
	}
	return nil
}

// DisplayID returns the key, or the numeric id when no key is set.
func (p *Project) DisplayID() string {
	if p.Key != "" {
		return p.Key
	}
	return fmt.Sprintf("%d", p.ID)
}
