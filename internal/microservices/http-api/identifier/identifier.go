// Package identifier parses the loosely typed path segments used to address
// novels and chapters. A segment is either a surrogate key or a natural key
// (title, chapter number), and callers decide which column to match once,
// here, instead of re-testing "is this numeric" at every branch.
package identifier

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	// Numeric identifiers match ^[1-9][0-9]*$ and fit in an int64.
	Numeric Kind = iota + 1
	// Text identifiers are everything else, compared as exact strings.
	Text
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

var (
	ErrEmpty      = errors.New("identifier is required")
	ErrNotNumeric = errors.New("identifier must be a positive integer")
)

var numericPattern = regexp.MustCompile(`^[1-9][0-9]*$`)

type Identifier struct {
	Kind Kind
	ID   int64
	// Text is the normalised form: whitespace trimmed, path-decoded and
	// unquoted.
	Text string

	raw string
}

func (i Identifier) IsNumeric() bool {
	return i.Kind == Numeric
}

func (i Identifier) String() string {
	return i.Text
}

// Candidates lists the title forms to try, in order: the segment exactly as
// received (whitespace trimmed), then its path-decoded form, then Text.
// Titles may legitimately contain quotes, '+' or '%'.
func (i Identifier) Candidates() []string {
	if i.Kind != Text {
		return nil
	}
	out := make([]string, 0, 3)
	add := func(s string) {
		if strings.TrimSpace(s) == "" {
			return
		}
		for _, seen := range out {
			if seen == s {
				return
			}
		}
		out = append(out, s)
	}
	add(i.raw)
	add(decode(i.raw))
	add(i.Text)
	return out
}

// Parse classifies a path segment. The normalised form decides the kind, so
// "%31%32" and a quoted "12" are keys; titles keep their raw form for
// Candidates. Segments that fail to decode (a literal "%" in a title) are
// used as-is.
func Parse(raw string) (Identifier, error) {
	s := strings.TrimSpace(raw)
	norm := strings.TrimSpace(strings.Trim(decode(s), `"'`))
	if norm == "" {
		return Identifier{}, ErrEmpty
	}

	if numericPattern.MatchString(norm) {
		if id, err := strconv.ParseInt(norm, 10, 64); err == nil {
			return Identifier{Kind: Numeric, ID: id, Text: norm, raw: s}, nil
		}
	}
	return Identifier{Kind: Text, Text: norm, raw: s}, nil
}

func decode(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// ParseID is Parse restricted to surrogate keys, for routes that never accept titles.
func ParseID(raw string) (int64, error) {
	id, err := Parse(raw)
	if err != nil {
		return 0, err
	}
	if !id.IsNumeric() {
		return 0, ErrNotNumeric
	}
	return id.ID, nil
}
