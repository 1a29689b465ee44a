// Package readme places a generated table into a README between two marker
// lines and checks what is already there.
package readme

import (
	"errors"
	"fmt"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeMarkersInvalid = "README_MARKERS_INVALID"
	codeSectionStale   = "README_SECTION_STALE"
	codeTableMalformed = "README_TABLE_MALFORMED"
)

var (
	ErrMarkerMissing   = errors.New("marker not found")
	ErrMarkerRepeated  = errors.New("marker appears more than once")
	ErrMarkersReversed = errors.New("end marker precedes start marker")
	ErrStale           = errors.New("generated table differs from README")
)

func markerError(err error, marker string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", err, marker), goerrors.CategoryCommand, "readme markers").
		WithTextCode(codeMarkersInvalid)
}

// IsMarkerError reports whether err came from locating the markers.
func IsMarkerError(err error) bool {
	return errors.Is(err, ErrMarkerMissing) || errors.Is(err, ErrMarkerRepeated) || errors.Is(err, ErrMarkersReversed)
}

// bounds returns the offsets just past start and at end.
func bounds(doc, start, end string) (int, int, error) {
	for _, m := range []string{start, end} {
		switch strings.Count(doc, m) {
		case 0:
			return 0, 0, markerError(ErrMarkerMissing, m)
		case 1:
		default:
			return 0, 0, markerError(ErrMarkerRepeated, m)
		}
	}
	s := strings.Index(doc, start)
	e := strings.Index(doc, end)
	if e < s+len(start) {
		return 0, 0, markerError(ErrMarkersReversed, end)
	}
	return s + len(start), e, nil
}

// Splice replaces whatever sits between the markers with section. The
// markers themselves are kept.
func Splice(doc, section, start, end string) (string, error) {
	from, to, err := bounds(doc, start, end)
	if err != nil {
		return "", err
	}
	return doc[:from] + "\n" + strings.TrimSpace(section) + "\n" + doc[to:], nil
}

// Extract returns the text between the markers, trimmed.
func Extract(doc, start, end string) (string, error) {
	from, to, err := bounds(doc, start, end)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc[from:to]), nil
}

// Scaffold returns a minimal README holding section between the markers.
func Scaffold(title, section, start, end string) string {
	return "# " + title + "\n\n" + start + "\n" + strings.TrimSpace(section) + "\n" + end + "\n"
}

// WriteSection splices section into the README at path. A missing README is
// created from Scaffold. It reports whether the file content changed.
func WriteSection(path, title, section, start, end string) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, os.WriteFile(path, []byte(Scaffold(title, section, start, end)), 0o644)
	}
	if err != nil {
		return false, err
	}
	updated, err := Splice(string(existing), section, start, end)
	if err != nil {
		return false, err
	}
	if updated == string(existing) {
		return false, nil
	}
	return true, os.WriteFile(path, []byte(updated), 0o644)
}

// Compare checks the README section at path against the freshly generated
// one, by digest.
func Compare(path, section, start, end string) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	current, err := Extract(string(existing), start, end)
	if err != nil {
		return err
	}
	if Digest(current) != Digest(section) {
		return goerrors.Wrap(fmt.Errorf("%w: %s", ErrStale, path), goerrors.CategoryCommand, "readme out of date").
			WithTextCode(codeSectionStale)
	}
	return nil
}
