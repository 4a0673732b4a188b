package cidermill

/*-------------------------------------------------------------
 *
 * Purpose:	Wildcard matching for archive entry paths.
 *
 *		Patterns are split into path components and each
 *		component becomes a small anchored regular expression,
 *		so '*' and '?' never cross a directory boundary.
 *		A backslash escapes the next character, including
 *		wildcards and separator characters; an escaped
 *		separator stays inside its component.
 *
 *		Different archive formats use different separators, so
 *		the separator set is declared per construction and the
 *		actual separator per match.
 *
 *--------------------------------------------------------------*/

import (
	"regexp"
	"strings"
)

/* Separator value for "the path is a single component". */
const GlobNoSeparator rune = 0

type Glob struct {
	pattern     string
	regexes     []*regexp.Regexp
	has_matched bool /* any successful match since construction */
}

/*-------------------------------------------------------------
 *
 * Name:	CompileGlob
 *
 * Purpose:	Build a matcher from a wildcard pattern.
 *
 * Inputs:	pattern		- Wildcard pattern, e.g. "docs/*.txt".
 *		separators	- Characters that may split the pattern
 *				  into components, e.g. "/:".
 *		case_sensitive	- Construction-time choice.
 *
 * Returns:	Matcher, or an error if a component doesn't compile.
 *		A trailing lone backslash escapes nothing and is
 *		dropped from its component.
 *
 *--------------------------------------------------------------*/

func CompileGlob(pattern string, separators string, case_sensitive bool) (*Glob, error) {
	var components = split_glob_pattern(pattern, separators)

	var g = &Glob{pattern: pattern}
	for _, comp := range components {
		var re, err = compile_glob_component(comp, case_sensitive)
		if err != nil {
			return nil, err
		}
		g.regexes = append(g.regexes, re)
	}
	return g, nil
}

// split_glob_pattern splits on any separator character, honoring
// backslash escapes.  The escapes are preserved in the component text
// for compile_glob_component to interpret.
func split_glob_pattern(pattern string, separators string) []string {
	if pattern == "" {
		return []string{""}
	}
	var components []string
	var current strings.Builder
	var escaped = false
	for _, ch := range pattern {
		if escaped {
			current.WriteRune(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			current.WriteRune(ch)
			escaped = true
			continue
		}
		if strings.ContainsRune(separators, ch) {
			components = append(components, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(ch)
	}
	components = append(components, current.String())
	return components
}

// compile_glob_component turns one pattern component into an anchored
// regular expression.  Unescaped '*' becomes ".*", unescaped '?'
// becomes '.', everything else is literal.
func compile_glob_component(component string, case_sensitive bool) (*regexp.Regexp, error) {
	var expr strings.Builder
	if !case_sensitive {
		expr.WriteString("(?i)")
	}
	expr.WriteString("^")
	var escaped = false
	for _, ch := range component {
		if escaped {
			expr.WriteString(regexp.QuoteMeta(string(ch)))
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case '*':
			expr.WriteString(".*")
		case '?':
			expr.WriteString(".")
		default:
			expr.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	expr.WriteString("$")
	return regexp.Compile(expr.String())
}

/*-------------------------------------------------------------
 *
 * Name:	Match
 *
 * Purpose:	Test a path against the pattern.
 *
 * Inputs:	path		- Path string to test.
 *		separator	- This path's component separator, or
 *				  GlobNoSeparator for a flat name.
 *		prefix_ok	- Allow the pattern to match a leading
 *				  subset of the path's components, so
 *				  "dir" can select everything below it.
 *
 * Description:	A single trailing separator is ignored; archives
 *		often store directory entries that way.
 *
 *--------------------------------------------------------------*/

func (g *Glob) Match(path string, separator rune, prefix_ok bool) bool {
	var components []string
	if separator == GlobNoSeparator {
		components = []string{path}
	} else {
		path = strings.TrimSuffix(path, string(separator))
		components = strings.Split(path, string(separator))
	}

	if len(components) < len(g.regexes) {
		return false
	}
	if !prefix_ok && len(components) != len(g.regexes) {
		return false
	}
	for i, re := range g.regexes {
		if !re.MatchString(components[i]) {
			return false
		}
	}
	g.has_matched = true
	return true
}

// Pattern returns the original pattern text.
func (g *Glob) Pattern() string {
	return g.pattern
}

// HasMatched reports whether any Match call has succeeded.  Callers
// use it to warn about patterns that selected nothing.
func (g *Glob) HasMatched() bool {
	return g.has_matched
}
