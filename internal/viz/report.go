package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/sim"
)

// Coverage returns how many of f's keys carry a complete coefficient set,
// and the problems of the rest.
func Coverage(f force.Component) (complete, total int, problems []coeff.Problem) {
	keys := f.Keys()
	problems = coeff.Check(f.Coeffs(), keys, f.RequiredNames())
	return len(keys) - len(problems), len(keys), problems
}

func describeProblem(f force.Component, p coeff.Problem) string {
	parts := make([]string, 0, 2)
	if len(p.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(p.Missing, ", "))
	}
	if len(p.Invalid) > 0 {
		parts = append(parts, "non-finite "+strings.Join(p.Invalid, ", "))
	}
	return fmt.Sprintf("%s: %s", f.KeyLabel(p.Key), strings.Join(parts, "; "))
}

// RenderValidation reports each force's state and coefficient coverage.
// failures holds UpdateCoeffs errors by force index.
func RenderValidation(forces []force.Component, failures map[int]error) string {
	var b strings.Builder
	b.WriteString(titleStyle().Render("force field") + "\n")
	b.WriteString(Separator(40) + "\n")

	for i, f := range forces {
		complete, total, problems := Coverage(f)
		frac := 1.0
		if total > 0 {
			frac = float64(complete) / float64(total)
		}

		name := labelStyle().Render(fmt.Sprintf("%-20s", f.Name()))
		state := StateStyle(f.State()).Render(fmt.Sprintf("%-22s", f.State().String()))
		fmt.Fprintf(&b, "%s %s %s %d/%d\n", name, state, ProgressBar(frac, 12), complete, total)
		fmt.Fprintf(&b, "  %s\n", mutedStyle().Render("backend: "+f.Backend().Name()))
		if !f.Enabled() {
			fmt.Fprintf(&b, "  %s\n", mutedStyle().Render("disabled"))
		}
		for _, p := range problems {
			fmt.Fprintf(&b, "  %s\n", errorStyle().Render(describeProblem(f, p)))
		}
		if err, ok := failures[i]; ok && len(problems) == 0 {
			fmt.Fprintf(&b, "  %s\n", errorStyle().Render(err.Error()))
		}
	}

	if len(failures) == 0 {
		b.WriteString(StateStyle(force.Configured).Render("ok: every enabled force is fully configured") + "\n")
	} else {
		b.WriteString(errorStyle().Render(fmt.Sprintf("%d force(s) incomplete", len(failures))) + "\n")
	}
	return b.String()
}

// RenderRun summarizes a finished run.
func RenderRun(result *sim.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle().Render(fmt.Sprintf("run: %d steps", result.StepsTaken)) + "\n")

	names := make([]string, 0, len(result.ForceEnergies))
	for name := range result.ForceEnergies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		series := result.ForceEnergies[name]
		last := 0.0
		if len(series) > 0 {
			last = series[len(series)-1]
		}
		fmt.Fprintf(&b, "%s %14.6g %s\n", labelStyle().Render(fmt.Sprintf("%-20s", name)), last, SparklineChart(series, 20))
	}

	metrics := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		metrics = append(metrics, name)
	}
	sort.Strings(metrics)
	for _, name := range metrics {
		fmt.Fprintf(&b, "%s %14.6g\n", mutedStyle().Render(fmt.Sprintf("%-20s", name)), result.Metrics[name])
	}

	for _, err := range result.Errors {
		b.WriteString(errorStyle().Render(err.Error()) + "\n")
	}
	return panelStyle().Render(strings.TrimRight(b.String(), "\n"))
}
