package param

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by parameter set operations.
var (
	ErrEmptyName      = errors.New("param: name must not be empty")
	ErrDuplicateName  = errors.New("param: duplicate parameter name")
	ErrUnknownName    = errors.New("param: unknown parameter name")
	ErrInvertedBounds = errors.New("param: lower bound exceeds upper bound")
	ErrLengthMismatch = errors.New("param: value vector length mismatch")
)

// Param is a single named parameter record: a value, box bounds and a
// fixed-or-free flag. Unbounded sides are represented by ±Inf.
type Param struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
	Vary  bool
}

// Free returns an unbounded varying parameter.
func Free(name string, value float64) Param {
	return Param{Name: name, Value: value, Min: math.Inf(-1), Max: math.Inf(1), Vary: true}
}

// Bounded returns a varying parameter constrained to [min, max].
func Bounded(name string, value, min, max float64) Param {
	return Param{Name: name, Value: value, Min: min, Max: max, Vary: true}
}

// Fixed returns a parameter held constant by fitters and samplers.
func Fixed(name string, value float64) Param {
	return Param{Name: name, Value: value, Min: math.Inf(-1), Max: math.Inf(1), Vary: false}
}

// check reports whether the record itself is consistent.
func (p Param) check() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if math.IsNaN(p.Value) || math.IsNaN(p.Min) || math.IsNaN(p.Max) {
		return fmt.Errorf("param %q: NaN in value or bounds", p.Name)
	}
	if p.Min > p.Max {
		return fmt.Errorf("%w: %q has [%g, %g]", ErrInvertedBounds, p.Name, p.Min, p.Max)
	}
	if p.Value < p.Min || p.Value > p.Max {
		return fmt.Errorf("param %q: value %g outside bounds [%g, %g]", p.Name, p.Value, p.Min, p.Max)
	}
	return nil
}

// Set is an ordered collection of named parameters. Order is insertion
// order; fitters and samplers address the varying subset as a flat vector
// in that order.
type Set struct {
	params []Param
	index  map[string]int
}

// NewSet returns an empty parameter set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add appends a parameter record. The name must be unique within the set,
// bounds must not be inverted and the value must lie inside them.
func (s *Set) Add(p Param) error {
	if err := p.check(); err != nil {
		return err
	}
	if _, ok := s.index[p.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
	}
	s.index[p.Name] = len(s.params)
	s.params = append(s.params, p)
	return nil
}

// Get returns the record for name and whether it exists.
func (s *Set) Get(name string) (Param, bool) {
	i, ok := s.index[name]
	if !ok {
		return Param{}, false
	}
	return s.params[i], true
}

// Value returns the current value of the named parameter.
func (s *Set) Value(name string) (float64, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return s.params[i].Value, nil
}

// SetValue updates the named parameter's value, enforcing its bounds.
func (s *Set) SetValue(name string, value float64) error {
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	p := s.params[i]
	p.Value = value
	if err := p.check(); err != nil {
		return err
	}
	s.params[i] = p
	return nil
}

// Len returns the total number of parameters.
func (s *Set) Len() int {
	return len(s.params)
}

// Names returns all parameter names in insertion order.
func (s *Set) Names() []string {
	out := make([]string, len(s.params))
	for i, p := range s.params {
		out[i] = p.Name
	}
	return out
}

// Params returns a copy of all records in insertion order.
func (s *Set) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{
		params: make([]Param, len(s.params)),
		index:  make(map[string]int, len(s.index)),
	}
	copy(c.params, s.params)
	for k, v := range s.index {
		c.index[k] = v
	}
	return c
}

// Validate re-checks every record in the set.
func (s *Set) Validate() error {
	for _, p := range s.params {
		if err := p.check(); err != nil {
			return err
		}
	}
	return nil
}

// NFree returns the number of varying parameters.
func (s *Set) NFree() int {
	n := 0
	for _, p := range s.params {
		if p.Vary {
			n++
		}
	}
	return n
}

// FreeNames returns the names of the varying parameters in insertion order.
func (s *Set) FreeNames() []string {
	out := make([]string, 0, s.NFree())
	for _, p := range s.params {
		if p.Vary {
			out = append(out, p.Name)
		}
	}
	return out
}

// FreeValues returns the current values of the varying parameters in
// insertion order.
func (s *Set) FreeValues() []float64 {
	out := make([]float64, 0, s.NFree())
	for _, p := range s.params {
		if p.Vary {
			out = append(out, p.Value)
		}
	}
	return out
}

// FreeBounds returns the lower and upper bounds of the varying parameters
// in insertion order.
func (s *Set) FreeBounds() (lo, hi []float64) {
	n := s.NFree()
	lo = make([]float64, 0, n)
	hi = make([]float64, 0, n)
	for _, p := range s.params {
		if p.Vary {
			lo = append(lo, p.Min)
			hi = append(hi, p.Max)
		}
	}
	return lo, hi
}

// InBounds reports whether every element of the free vector v lies inside
// the corresponding parameter's bounds. The vector length must equal NFree.
func (s *Set) InBounds(v []float64) (bool, error) {
	if len(v) != s.NFree() {
		return false, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(v), s.NFree())
	}
	j := 0
	for _, p := range s.params {
		if !p.Vary {
			continue
		}
		if v[j] < p.Min || v[j] > p.Max || math.IsNaN(v[j]) {
			return false, nil
		}
		j++
	}
	return true, nil
}

// SetFreeValues writes a flat vector back into the varying parameters in
// insertion order. This is the channel through which fitters record their
// result. Values are bounds-checked; fixed parameters never move.
func (s *Set) SetFreeValues(v []float64) error {
	if len(v) != s.NFree() {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(v), s.NFree())
	}
	// Check the whole vector before mutating anything.
	ok, err := s.InBounds(v)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("param: free vector leaves bounds")
	}
	j := 0
	for i := range s.params {
		if s.params[i].Vary {
			s.params[i].Value = v[j]
			j++
		}
	}
	return nil
}
