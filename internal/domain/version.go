package domain

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

// VersionSpec is a major.minor.patch triple coerced from a free-form
// version string such as "^7.2.0", "~7.0.0-rc.1" or "v7".
type VersionSpec struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

// coercePattern finds the first run of up to three dot-separated numbers of
// at most 16 digits each, neither preceded nor followed by another digit.
var coercePattern = regexp.MustCompile(`(?:^|[^\d])(\d{1,16})(?:\.(\d{1,16}))?(?:\.(\d{1,16}))?(?:$|[^\d])`)

// CoerceVersion extracts a VersionSpec from text. Qualifiers, range
// operators, pre-release and build metadata are dropped; missing minor or
// patch parts become zero. Text without any number is rejected.
func CoerceVersion(text string) (VersionSpec, error) {
	m := coercePattern.FindStringSubmatch(text)
	if m == nil {
		return VersionSpec{}, fmt.Errorf("%w: %q", ErrVersionUnparseable, text)
	}

	var parts [3]uint64
	for i := range parts {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return VersionSpec{}, fmt.Errorf("%w: %q", ErrVersionUnparseable, text)
		}
		parts[i] = n
	}

	return VersionSpec{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// MustCoerceVersion is like CoerceVersion but panics on failure.
// Intended for package-level boundary constants.
func MustCoerceVersion(text string) VersionSpec {
	v, err := CoerceVersion(text)
	if err != nil {
		panic(err)
	}
	return v
}

func (v VersionSpec) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v VersionSpec) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, "", "")
}

// AtLeast reports whether v >= boundary. Equal versions satisfy it.
func (v VersionSpec) AtLeast(boundary VersionSpec) bool {
	return v.semver().Compare(boundary.semver()) >= 0
}

// InRange reports whether v satisfies a semver constraint such as
// ">= 7.0.0, < 8.0.0".
func (v VersionSpec) InRange(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(v.semver()), nil
}

// GTE coerces boundary and reports whether v >= boundary.
func GTE(v VersionSpec, boundary string) (bool, error) {
	b, err := CoerceVersion(boundary)
	if err != nil {
		return false, err
	}
	return v.AtLeast(b), nil
}
