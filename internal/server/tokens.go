package server

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/notes-dash/internal/auth"
)

// ParseTokens parses "token:name,token2:name2". The name doubles as the
// note owner. An empty spec yields no tokens.
func ParseTokens(spec string) (map[string]auth.User, error) {
	tokens := make(map[string]auth.User)
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		token, name, ok := strings.Cut(entry, ":")
		token, name = strings.TrimSpace(token), strings.TrimSpace(name)
		if !ok || token == "" || name == "" {
			return nil, fmt.Errorf("server: invalid token entry %q: want token:name", entry)
		}
		if _, dup := tokens[token]; dup {
			return nil, fmt.Errorf("server: duplicate token for %q", name)
		}
		tokens[token] = auth.User{ID: name, Name: name}
	}
	return tokens, nil
}
