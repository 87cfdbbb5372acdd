package toc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	separatorRun = regexp.MustCompile(`[-\s]+`)
	countSuffix  = regexp.MustCompile(`^(.*)_([0-9]+)$`)
)

// Slugify turns heading text into an anchor id: compatibility-decomposed,
// reduced to ASCII word characters, lowercased, whitespace and dash runs
// collapsed to a single "-".
func Slugify(value string) string {
	decomposed := norm.NFKD.String(value)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	slug := strings.ToLower(strings.TrimSpace(b.String()))
	return separatorRun.ReplaceAllString(slug, "-")
}

// IDSet hands out unique ids within one document.
type IDSet struct {
	seen map[string]struct{}
}

// NewIDSet returns an empty set.
func NewIDSet() *IDSet {
	return &IDSet{seen: make(map[string]struct{})}
}

// Unique returns id, or id with a numeric "_N" suffix when it was already
// taken or is empty. The returned id is reserved.
func (s *IDSet) Unique(id string) string {
	for {
		if _, taken := s.seen[id]; id != "" && !taken {
			break
		}
		if m := countSuffix.FindStringSubmatch(id); m != nil {
			n, _ := strconv.Atoi(m[2])
			id = fmt.Sprintf("%s_%d", m[1], n+1)
		} else {
			id = id + "_1"
		}
	}
	s.seen[id] = struct{}{}
	return id
}

// Reserve marks id as taken without altering it, for ids set explicitly by authors.
func (s *IDSet) Reserve(id string) {
	s.seen[id] = struct{}{}
}
