package templates

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/blogsmith/internal/foundation/errors"
)

// MissingTemplateError reports a required fragment that the theme does not provide.
type MissingTemplateError struct {
	Name string
	Path string
}

func (e *MissingTemplateError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing template fragment %q", e.Name)
	}
	return fmt.Sprintf("missing template fragment %q (expected %s)", e.Name, e.Path)
}

// Category routes the error to the template category.
func (e *MissingTemplateError) Category() ferrors.ErrorCategory { return ferrors.CategoryTemplate }

// UnresolvedPlaceholderError reports a placeholder that cannot be filled: either
// it is outside the fragment's schema (detected at load) or no binding was
// supplied for it (detected at render).
type UnresolvedPlaceholderError struct {
	Fragment    Kind
	Placeholder string
	Unbound     bool
}

func (e *UnresolvedPlaceholderError) Error() string {
	if e.Unbound {
		return fmt.Sprintf("fragment %q: no binding for placeholder %q", e.Fragment, e.Placeholder)
	}
	return fmt.Sprintf("fragment %q: placeholder %q is not one of %v", e.Fragment, e.Placeholder, schemas[e.Fragment])
}

// Category routes the error to the template category.
func (e *UnresolvedPlaceholderError) Category() ferrors.ErrorCategory {
	return ferrors.CategoryTemplate
}
