package router

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/ambient/core/scope"
)

type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segParam
	segWildcard
)

type segment struct {
	kind  segmentKind
	value string
}

func parsePattern(pattern string) ([]segment, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	parts := splitPath(pattern)
	segments := make([]segment, 0, len(parts))
	for i, p := range parts {
		switch {
		case p == "*":
			if i != len(parts)-1 {
				return nil, fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern)
			}
			segments = append(segments, segment{kind: segWildcard, value: "*"})
		case strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}"):
			name := p[1 : len(p)-1]
			if name == "" || strings.ContainsAny(name, "{}/*") {
				return nil, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
			}
			segments = append(segments, segment{kind: segParam, value: name})
		case strings.ContainsAny(p, "{}*"):
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
		default:
			segments = append(segments, segment{kind: segLiteral, value: p})
		}
	}
	return segments, nil
}

// splitPath splits a path into segments, ignoring the leading slash. A
// trailing slash yields a final empty segment.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// match reports whether parts fit segments and returns the captures.
func match(segments []segment, parts []string) (scope.Params, bool) {
	params := scope.Params{}
	for i, seg := range segments {
		if seg.kind == segWildcard {
			params.Add("*", strings.Join(parts[i:], "/"))
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}
		switch seg.kind {
		case segLiteral:
			if parts[i] != seg.value {
				return nil, false
			}
		case segParam:
			if parts[i] == "" {
				return nil, false
			}
			params.Add(seg.value, parts[i])
		}
	}
	if len(parts) != len(segments) {
		return nil, false
	}
	return params, true
}

// moreSpecific reports whether a ranks above b: the first differing
// segment decides, literal before param before wildcard.
func moreSpecific(a, b []segment) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].kind != b[i].kind {
			return a[i].kind < b[i].kind
		}
	}
	return len(a) > len(b)
}
