// SPDX-License-Identifier: MIT

package spec

import "errors"

// Configuration errors. All of them surface at registration time, before any
// run starts; a spec that registered cleanly cannot fail configuration
// mid-run. Use errors.Is instead of string matching.
var (
	// ErrEmptyName indicates a spec registered without a name.
	ErrEmptyName = errors.New("spec: name is empty")

	// ErrNotAFunc indicates the function under test is not a func value.
	ErrNotAFunc = errors.New("spec: function under test is not a func")

	// ErrVariadic indicates a variadic function under test, which cannot be
	// bound positionally.
	ErrVariadic = errors.New("spec: variadic functions are not supported")

	// ErrArityMismatch indicates the generator count does not match the
	// function's parameter count.
	ErrArityMismatch = errors.New("spec: generator count does not match parameter count")

	// ErrBadParamName indicates an empty or duplicate parameter name.
	ErrBadParamName = errors.New("spec: bad parameter name")

	// ErrParamType indicates a generator whose probe draw is not assignable
	// to the corresponding function parameter.
	ErrParamType = errors.New("spec: generator value not assignable to parameter")

	// ErrDuplicateSpec indicates a second registration under the same name.
	ErrDuplicateSpec = errors.New("spec: duplicate spec name")

	// ErrUnknownSpec indicates a lookup for a name that was never registered.
	ErrUnknownSpec = errors.New("spec: unknown spec name")
)
