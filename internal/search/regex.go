package search

import (
	"regexp"
	"sync"

	"github.com/cristianoliveira/notes-dash/internal/note"
)

// RegexProvider matches if any configured field matches the regex pattern.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) *RegexProvider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if any configured field matches the pattern.
// An invalid pattern matches nothing.
func (p *RegexProvider) Match(n note.Note, query string) bool {
	if query == "" {
		return true
	}

	re, err := p.getRegex(query)
	if err != nil {
		return false
	}

	for _, field := range p.opts.Fields {
		value := fieldValue(n, field)
		if value == "" {
			continue
		}
		if re.MatchString(value) {
			return true
		}
	}

	return false
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return "regex"
}

// Compile reports whether pattern is a valid expression for this provider.
func (p *RegexProvider) Compile(pattern string) error {
	_, err := p.getRegex(pattern)
	return err
}

func (p *RegexProvider) getRegex(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}
