package naming

import (
	"fmt"
	"sort"
	"strings"
)

// Usage records which source produced a derived name.
type Usage struct {
	Name   string
	Origin string
}

// Collision lists every origin that derived the same name within one group.
type Collision struct {
	Group   string
	Name    string
	Origins []string
}

func (c Collision) String() string {
	return fmt.Sprintf("%s %q derived by %s", c.Group, c.Name, strings.Join(c.Origins, ", "))
}

// Registry collects derived names per group and reports duplicates.
type Registry struct {
	usages map[string][]Usage
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{usages: make(map[string][]Usage)}
}

// Collect records that origin derived name inside group.
func (r *Registry) Collect(group, name, origin string) {
	r.usages[group] = append(r.usages[group], Usage{Name: name, Origin: origin})
}

// Collisions returns every name claimed by more than one origin.
// Groups and names are sorted for deterministic reporting; origins keep collection order.
func (r *Registry) Collisions() []Collision {
	var groups []string
	for g := range r.usages {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var result []Collision
	for _, g := range groups {
		byName := make(map[string][]string)
		var names []string
		for _, u := range r.usages[g] {
			if _, ok := byName[u.Name]; !ok {
				names = append(names, u.Name)
			}
			byName[u.Name] = append(byName[u.Name], u.Origin)
		}
		sort.Strings(names)
		for _, n := range names {
			if len(byName[n]) > 1 {
				result = append(result, Collision{Group: g, Name: n, Origins: byName[n]})
			}
		}
	}
	return result
}
