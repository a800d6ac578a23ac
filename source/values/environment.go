package values

import (
	"sort"
	"strings"
)

// A frame of the environment. Ext is the enclosing frame, nil at the root. Frames point
// outward only, so however many closures share a frame the frames still form a tree.
type Environment struct {
	Store map[string]Value
	Ext   *Environment
}

func NewEnvironment() *Environment {
	return &Environment{Store: make(map[string]Value)}
}

// Makes a new, empty child frame of outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.Ext = outer
	return env
}

// Looks the name up in this frame and then outward.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.Ext {
		if val, ok := env.Store[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// Binds the name in this frame only, overwriting any binding already there.
func (e *Environment) Define(name string, val Value) Value {
	e.Store[name] = val
	return val
}

// Rebinds the name in the nearest frame that binds it. Returns false if no frame does.
func (e *Environment) Set(name string, val Value) bool {
	for env := e; env != nil; env = env.Ext {
		if _, ok := env.Store[name]; ok {
			env.Store[name] = val
			return true
		}
	}
	return false
}

func (e *Environment) Exists(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// All the names visible from this frame, sorted.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	result := []string{}
	for env := e; env != nil; env = env.Ext {
		for k := range env.Store {
			if !seen[k] {
				seen[k] = true
				result = append(result, k)
			}
		}
	}
	sort.Strings(result)
	return result
}

func (e *Environment) String() string {
	keys := make([]string, 0, len(e.Store))
	for k := range e.Store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k + " = " + Describe(e.Store[k]))
	}
	if e.Ext != nil {
		sb.WriteString("\n    + {" + e.Ext.String() + "}")
	}
	return sb.String()
}
