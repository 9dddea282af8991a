package enums

import "fmt"

// BlogStatus tracks the publication state of a blog post.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusArchived  BlogStatus = "archived"
)

var validBlogStatuses = []BlogStatus{
	BlogStatusDraft,
	BlogStatusPublished,
	BlogStatusArchived,
}

// String implements fmt.Stringer.
func (s BlogStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BlogStatus.
func (s BlogStatus) IsValid() bool {
	for _, candidate := range validBlogStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBlogStatus converts raw input into a BlogStatus.
func ParseBlogStatus(value string) (BlogStatus, error) {
	for _, candidate := range validBlogStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid blog status %q", value)
}
