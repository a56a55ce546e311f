// Package plugin implements output plugins: find-and-replace rules applied,
// in registration order, to every rendered line before it is written.
//
// A pattern is literal text with exactly one %s placeholder, for example
// "{{%s}}". The placeholder matches as little text as possible and its match
// is handed to the plugin's Transform.
package plugin

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Placeholder marks the captured region of a pattern.
const Placeholder = "%s"

// ErrPattern is returned for patterns without exactly one placeholder.
var ErrPattern = errors.New("invalid plugin pattern")

// Transform rewrites the text captured by the placeholder. Its result
// replaces the whole match, pattern literals included.
type Transform func(match string) string

// Plugin is a compiled pattern with its transform. It is immutable.
type Plugin struct {
	pattern string
	re      *regexp.Regexp
	fn      Transform
}

// New compiles pattern. The match does not cross line breaks.
func New(pattern string, fn Transform) (*Plugin, error) {
	return compile(pattern, fn, false)
}

// NewMultiline compiles pattern so the placeholder may span line breaks.
func NewMultiline(pattern string, fn Transform) (*Plugin, error) {
	return compile(pattern, fn, true)
}

func compile(pattern string, fn Transform, multiline bool) (*Plugin, error) {
	if n := strings.Count(pattern, Placeholder); n != 1 {
		return nil, fmt.Errorf("%w: %q has %d placeholders, want 1", ErrPattern, pattern, n)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q has no transform", ErrPattern, pattern)
	}

	before, after, _ := strings.Cut(pattern, Placeholder)
	expr := regexp.QuoteMeta(before) + "(.+?)" + regexp.QuoteMeta(after)
	if multiline {
		expr = "(?s)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPattern, pattern, err)
	}
	return &Plugin{pattern: pattern, re: re, fn: fn}, nil
}

// Pattern returns the pattern the plugin was built from.
func (p *Plugin) Pattern() string {
	return p.pattern
}

// Mutate replaces every match in text with the transform of its capture.
func (p *Plugin) Mutate(text string) string {
	matches := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(text[last:m[0]])
		sb.WriteString(p.fn(text[m[2]:m[3]]))
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// Chain is an ordered list of plugins. The zero value is an empty chain.
type Chain struct {
	plugins []*Plugin
}

// Add compiles pattern and appends it to the chain.
func (c *Chain) Add(pattern string, fn Transform) error {
	p, err := New(pattern, fn)
	if err != nil {
		return err
	}
	c.Use(p)
	return nil
}

// Use appends already compiled plugins.
func (c *Chain) Use(plugins ...*Plugin) {
	c.plugins = append(c.plugins, plugins...)
}

// Len returns the number of registered plugins.
func (c *Chain) Len() int {
	return len(c.plugins)
}

// Mutate runs text through every plugin in registration order. Each plugin
// sees the output of the ones before it.
func (c *Chain) Mutate(text string) string {
	for _, p := range c.plugins {
		text = p.Mutate(text)
	}
	return text
}
