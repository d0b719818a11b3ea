package ident

import (
	"fmt"
	"strconv"
	"strings"
)

// Registry hands out unique, URL-safe identifiers derived from display names.
// A Registry belongs to a single generation run and is not safe for
// concurrent use.
type Registry struct {
	used map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{used: make(map[string]bool)}
}

// Generate strips every character that is not an ASCII letter or digit from
// name and, if that stem is taken, appends the smallest unused suffix
// starting at 0. The result is registered before it is returned.
func (r *Registry) Generate(name string) string {
	stem := Stem(name)
	id := stem
	for i := 0; r.used[id]; i++ {
		id = stem + strconv.Itoa(i)
	}
	r.used[id] = true
	return id
}

// Reserve registers an id that was produced elsewhere, e.g. read back from a
// saved season.
func (r *Registry) Reserve(id string) error {
	if r.used[id] {
		return fmt.Errorf("identifier %q already in use", id)
	}
	r.used[id] = true
	return nil
}

func (r *Registry) Contains(id string) bool {
	return r.used[id]
}

// Stem returns name with everything but ASCII letters and digits removed.
func Stem(name string) string {
	var b strings.Builder
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}
