package validation

import (
	"fmt"
	"strings"
)

// ValidatePostContent validates progress post content
func ValidatePostContent(content string, maxLength int) error {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return fmt.Errorf("progress content is required")
	}

	if len(content) > maxLength {
		return fmt.Errorf("progress content is too long (max %d characters)", maxLength)
	}

	return nil
}

// ValidateProjectName validates project name
func ValidateProjectName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return fmt.Errorf("project name is required")
	}

	if len(trimmed) > 200 {
		return fmt.Errorf("project name is too long (max 200 characters)")
	}

	return nil
}
