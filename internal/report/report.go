// SPDX-License-Identifier: MIT

// Package report formats run results. Formatting is a pure function of the
// result; where the text ends up (console, structured log) is the caller's
// business.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/propkit/internal/runner"
)

const elapsedRounding = time.Millisecond

// Format renders one result. On failure the exact input tuple is rendered as
// Go literals so the case can be replayed by calling the function under test
// directly.
func Format(res runner.Result) string {
	var b strings.Builder

	switch res.Outcome {
	case runner.OutcomePassed:
		fmt.Fprintf(&b, "PASS  %s: %d iterations in %s", res.Spec, res.Iterations, res.Elapsed.Round(elapsedRounding))
	case runner.OutcomeFailed:
		fmt.Fprintf(&b, "FAIL  %s: counterexample after %d iterations in %s\n",
			res.Spec, res.Iterations, res.Elapsed.Round(elapsedRounding))
		writeFailure(&b, res.Failure)
		if extra := len(res.Failures) - 1; extra > 0 {
			fmt.Fprintf(&b, "\n      (%d more failures recorded)", extra)
		}
	case runner.OutcomeErrored:
		fmt.Fprintf(&b, "ERROR %s: input generation failed after %d iterations: %v",
			res.Spec, res.Iterations, res.Err)
	default:
		fmt.Fprintf(&b, "%s: unknown outcome", res.Spec)
	}

	return b.String()
}

func writeFailure(b *strings.Builder, f *runner.Failure) {
	if f == nil {
		return
	}

	parts := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		parts[i] = fmt.Sprintf("%s=%#v", in.Name, in.Value)
	}
	fmt.Fprintf(b, "      inputs: %s", strings.Join(parts, ", "))

	if f.Results != nil {
		rendered := make([]string, len(f.Results))
		for i, r := range f.Results {
			rendered[i] = fmt.Sprintf("%#v", r)
		}
		fmt.Fprintf(b, "\n      results: %s", strings.Join(rendered, ", "))
	}

	if f.Faulted {
		fmt.Fprintf(b, "\n      raised: %s", f.FaultMessage)
		return
	}
	fmt.Fprintf(b, "\n      violated: %s", f.ValidatorName)
}

// Render writes one formatted line block per result to w, in order.
func Render(w io.Writer, results ...runner.Result) error {
	for _, res := range results {
		if _, err := fmt.Fprintln(w, Format(res)); err != nil {
			return err
		}
	}
	return nil
}

// Log emits one structured entry per result.
func Log(logger zerolog.Logger, res runner.Result) {
	ev := logger.Info()
	if res.Outcome != runner.OutcomePassed {
		ev = logger.Error()
	}
	ev = ev.
		Str("event", "run.report").
		Str("run_id", res.RunID).
		Str("spec", res.Spec).
		Str("outcome", res.Outcome.String()).
		Uint64("iterations", res.Iterations).
		Dur("elapsed", res.Elapsed)

	if f := res.Failure; f != nil {
		inputs := zerolog.Dict()
		for _, in := range f.Inputs {
			inputs = inputs.Interface(in.Name, in.Value)
		}
		ev = ev.Dict("inputs", inputs).Bool("faulted", f.Faulted)
		if f.Faulted {
			ev = ev.Str("fault", f.FaultMessage)
		} else {
			ev = ev.Str("validator", f.ValidatorName)
		}
	}
	if res.Err != nil {
		ev = ev.Err(res.Err)
	}
	ev.Msg("run reported")
}
