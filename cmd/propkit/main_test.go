// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/propkit/internal/runner"
)

func TestNonPassError(t *testing.T) {
	pass := runner.Result{Outcome: runner.OutcomePassed}
	fail := runner.Result{Outcome: runner.OutcomeFailed}
	errored := runner.Result{Outcome: runner.OutcomeErrored}

	assert.NoError(t, nonPassError(nil))
	assert.NoError(t, nonPassError([]runner.Result{pass, pass}))

	require.ErrorIs(t, nonPassError([]runner.Result{pass, fail}), errRunsFailed)
	require.ErrorIs(t, nonPassError([]runner.Result{errored}), errRunsFailed)
}
