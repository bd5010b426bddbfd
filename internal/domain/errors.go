package domain

import "errors"

var (
	// ErrVersionUnknown indicates the manifest declares no Storybook package.
	ErrVersionUnknown = errors.New("unable to determine storybook version")

	// ErrVersionUnparseable indicates a version string holds no numeric version.
	ErrVersionUnparseable = errors.New("unparseable version")

	// ErrManifestNotFound indicates package.json is missing from the project root.
	ErrManifestNotFound = errors.New("package.json not found")

	// ErrUnknownFix indicates a fix id that is not in the catalog.
	ErrUnknownFix = errors.New("unknown fix")

	// ErrInvalidCatalog indicates a catalog that violates its construction rules.
	ErrInvalidCatalog = errors.New("invalid fix catalog")

	// ErrNotGitRepo indicates the project is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")
)

// IsHardFailure reports whether err stops a run because a foundational
// fact about the project could not be established.
func IsHardFailure(err error) bool {
	return errors.Is(err, ErrVersionUnknown) ||
		errors.Is(err, ErrVersionUnparseable) ||
		errors.Is(err, ErrManifestNotFound)
}
