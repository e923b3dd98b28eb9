// SPDX-License-Identifier: MIT

// Package spec binds a function under test to its parameter generators and
// validator predicates. A Spec is immutable once built; every configuration
// mistake (arity, parameter names, generator/parameter type compatibility)
// is rejected by New, so a registered spec cannot misfire mid-run.
package spec

import (
	"fmt"
	"math/rand/v2"
	"reflect"

	"github.com/ManuGH/propkit/internal/gen"
)

// Param names one function parameter and the generator bound to it.
// Parameters are matched to the function's inputs positionally.
type Param struct {
	Name string
	Gen  gen.Erased
}

// Validator is a predicate over one iteration. It receives the synthesized
// inputs and the function's results so assertions can relate output to input.
// Returning false records a counterexample; panicking records a fault.
type Validator struct {
	Name  string
	Check func(inputs, results []any) bool
}

// Fault captures a panic recovered from the function under test or from a
// validator.
type Fault struct {
	Stage string // "call", or the name of the validator that panicked
	Value any
}

// Message renders the recovered value for reporting.
func (f *Fault) Message() string {
	return fmt.Sprintf("%s: %v", f.Stage, f.Value)
}

// Spec is an immutable descriptor of one property: a named function under
// test, its ordered parameter generators, and its validators. A spec with
// zero validators only checks that the function does not panic.
type Spec struct {
	name       string
	fn         reflect.Value
	fnType     reflect.Type
	params     []Param
	validators []Validator
}

// New builds a Spec, rejecting every misconfiguration up front. Each
// generator is probed with one trial draw against a fixed seed so type
// mismatches surface here and not inside a worker.
func New(name string, fn any, params []Param, validators ...Validator) (*Spec, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: spec %q", ErrNotAFunc, name)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("%w: spec %q", ErrVariadic, name)
	}
	if ft.NumIn() != len(params) {
		return nil, fmt.Errorf("%w: spec %q has %d generators for %d parameters",
			ErrArityMismatch, name, len(params), ft.NumIn())
	}

	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: spec %q has an unnamed parameter", ErrBadParamName, name)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: spec %q repeats parameter %q", ErrBadParamName, name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	// probe draws; generators are independent per contract so one trial
	// draw does not perturb later runs
	probe := rand.New(rand.NewPCG(1, 1))
	for i, p := range params {
		v, err := p.Gen(probe)
		if err != nil {
			return nil, fmt.Errorf("spec %q: probe draw for param %q: %w", name, p.Name, err)
		}
		in := ft.In(i)
		rt := reflect.TypeOf(v)
		if rt == nil {
			if !nilAssignable(in) {
				return nil, fmt.Errorf("%w: spec %q param %q produced nil for %s",
					ErrParamType, name, p.Name, in)
			}
			continue
		}
		if !rt.AssignableTo(in) {
			return nil, fmt.Errorf("%w: spec %q param %q produced %s for %s",
				ErrParamType, name, p.Name, rt, in)
		}
	}

	s := &Spec{
		name:       name,
		fn:         fv,
		fnType:     ft,
		params:     make([]Param, len(params)),
		validators: make([]Validator, len(validators)),
	}
	copy(s.params, params)
	copy(s.validators, validators)
	return s, nil
}

func nilAssignable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

// Name returns the spec's registered name.
func (s *Spec) Name() string { return s.name }

// Arity returns the number of declared parameters.
func (s *Spec) Arity() int { return len(s.params) }

// Params returns a copy of the declared parameters in order.
func (s *Spec) Params() []Param {
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// ParamNames returns the declared parameter names in order.
func (s *Spec) ParamNames() []string {
	out := make([]string, len(s.params))
	for i, p := range s.params {
		out[i] = p.Name
	}
	return out
}

// ValidatorName returns a printable name for the validator at index i.
func (s *Spec) ValidatorName(i int) string {
	if i < 0 || i >= len(s.validators) {
		return ""
	}
	if n := s.validators[i].Name; n != "" {
		return n
	}
	return fmt.Sprintf("validator #%d", i)
}

// Draw synthesizes one input tuple: one independent draw per parameter, in
// declared order. A generator signalling exhaustion aborts the draw.
func (s *Spec) Draw(rng *rand.Rand) ([]any, error) {
	inputs := make([]any, len(s.params))
	for i, p := range s.params {
		v, err := p.Gen(rng)
		if err != nil {
			return nil, fmt.Errorf("spec %q: param %q: %w", s.name, p.Name, err)
		}
		inputs[i] = v
	}
	return inputs, nil
}

// Invoke applies the function under test to one input tuple. A panic in the
// function is recovered and returned as a Fault; it never unwinds into the
// caller.
func (s *Spec) Invoke(inputs []any) (results []any, fault *Fault) {
	args := make([]reflect.Value, len(inputs))
	for i, v := range inputs {
		if v == nil {
			args[i] = reflect.Zero(s.fnType.In(i))
			continue
		}
		args[i] = reflect.ValueOf(v)
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			fault = &Fault{Stage: "call", Value: r}
		}
	}()

	out := s.fn.Call(args)
	results = make([]any, len(out))
	for i, o := range out {
		results[i] = o.Interface()
	}
	return results, nil
}

// CheckValidators runs the validators in order against one iteration. It
// returns the index of the first validator that rejected the iteration
// (with a Fault if it panicked rather than returned false), or -1 if all
// validators accepted.
func (s *Spec) CheckValidators(inputs, results []any) (failedIdx int, fault *Fault) {
	for i := range s.validators {
		ok, f := s.runValidator(i, inputs, results)
		if f != nil {
			return i, f
		}
		if !ok {
			return i, nil
		}
	}
	return -1, nil
}

func (s *Spec) runValidator(i int, inputs, results []any) (ok bool, fault *Fault) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			fault = &Fault{Stage: s.ValidatorName(i), Value: r}
		}
	}()
	return s.validators[i].Check(inputs, results), nil
}
