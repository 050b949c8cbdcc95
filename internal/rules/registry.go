package rules

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateRuleID = errors.New("duplicate rule id")
	ErrRegistryClosed  = errors.New("registry is sealed")
)

// Registry is the static rule catalog. It starts open, accepts registrations,
// and is sealed before analysis begins; sealing makes it safe to share by
// reference across workers.
type Registry struct {
	sealed bool
	rules  []Rule
	index  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

func (r *Registry) Register(rule Rule) error {
	if r.sealed {
		return fmt.Errorf("register %s: %w", rule.ID, ErrRegistryClosed)
	}
	if _, ok := r.index[rule.ID]; ok {
		return fmt.Errorf("register %s: %w", rule.ID, ErrDuplicateRuleID)
	}
	r.rules = append(r.rules, rule)
	r.index[rule.ID] = len(r.rules) - 1
	return nil
}

// MustRegister is for builtin registration at startup, where a duplicate id
// is a programming error.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

func (r *Registry) Seal() { r.sealed = true }

func (r *Registry) Sealed() bool { return r.sealed }

func (r *Registry) Lookup(id string) (Rule, bool) {
	idx, ok := r.index[id]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// All returns every descriptor in ascending id order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RegisterBuiltin installs the builtin rule set.
func (r *Registry) RegisterBuiltin() {
	r.MustRegister(noEmptyBlock())
	r.MustRegister(longMethod())
	r.MustRegister(tooManyParams())
	r.MustRegister(magicNumber())
	r.MustRegister(deepNesting())
	r.MustRegister(todoComment())
	r.MustRegister(emptyFile())
	r.MustRegister(unusedPublicSymbol())
}
