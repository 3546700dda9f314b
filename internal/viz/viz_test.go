package viz

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/nlist"
	"github.com/phmalek/hoomd-blue/internal/potential"
	"github.com/phmalek/hoomd-blue/internal/sim"
	"github.com/phmalek/hoomd-blue/internal/system"
)

func gaussForce(t *testing.T) *force.PairForce {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys := system.New(logger)
	def := system.Definition{
		Box:           md.NewBox(10, 10, 10),
		ParticleTypes: []string{"A", "B"},
		Positions:     []md.Vec3{{X: 0}, {X: 1}},
		Types:         []string{"A", "B"},
	}
	if err := sys.Init(def, compute.ModeCPU); err != nil {
		t.Fatal(err)
	}
	gauss, err := force.NewPair(sys, nlist.New(0.4, logger), potential.Gauss{}, 3.0)
	if err != nil {
		t.Fatal(err)
	}
	return gauss
}

func TestCoverage(t *testing.T) {
	gauss := gaussForce(t)
	if err := gauss.SetPairCoeff("A", "A", coeff.Set{"epsilon": 1, "sigma": 1}); err != nil {
		t.Fatal(err)
	}
	if err := gauss.SetPairCoeff("A", "B", coeff.Set{"sigma": 1}); err != nil {
		t.Fatal(err)
	}

	complete, total, problems := Coverage(gauss)
	if complete != 1 || total != 3 || len(problems) != 2 {
		t.Errorf("expected 1/3 with 2 problems, got %d/%d with %d", complete, total, len(problems))
	}

	out := RenderValidation([]force.Component{gauss}, map[int]error{0: errors.New("incomplete")})
	for _, want := range []string{"pair.gauss", "(A,B): missing epsilon", "(B,B): missing epsilon, sigma", "1/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPlotPair(t *testing.T) {
	gauss := gaussForce(t)
	for _, p := range [][2]string{{"A", "A"}, {"A", "B"}, {"B", "B"}} {
		if err := gauss.SetPairCoeff(p[0], p[1], coeff.Set{"epsilon": 2, "sigma": 0.5}); err != nil {
			t.Fatal(err)
		}
	}

	series, err := PairSeries(gauss, md.PairKey(0, 1), 0.1, 30)
	if err != nil {
		t.Fatalf("series failed: %v", err)
	}
	for i := 1; i < len(series); i++ {
		if series[i] > series[i-1] {
			t.Fatalf("gaussian should decrease with r, got %v", series)
		}
	}

	out, err := PlotPair(gauss, md.PairKey(0, 1), 0.1, 30, 8)
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if !strings.Contains(out, "pair.gauss (A,B)") {
		t.Errorf("plot caption missing:\n%s", out)
	}

	if _, err := PairSeries(gauss, md.PairKey(0, 1), 5, 30); err == nil {
		t.Error("expected error for r_min beyond cutoff")
	}
}

func TestPlotPairMissingCoeff(t *testing.T) {
	gauss := gaussForce(t)
	if _, err := PlotPair(gauss, md.PairKey(0, 0), 0.1, 30, 8); !errors.Is(err, md.ErrMissingCoeff) {
		t.Errorf("expected missing coefficient, got %v", err)
	}
}

func TestRenderRun(t *testing.T) {
	out := RenderRun(&sim.Result{
		StepsTaken:    3,
		ForceEnergies: map[string][]float64{"pair.gauss": {1, 2, 3}},
		Metrics:       map[string]float64{"final_energy": 3},
	})
	for _, want := range []string{"run: 3 steps", "pair.gauss", "final_energy"} {
		if !strings.Contains(out, want) {
			t.Errorf("run summary missing %q:\n%s", want, out)
		}
	}
}

func TestInspectorKeys(t *testing.T) {
	gauss := gaussForce(t)
	m := NewInspector([]force.Component{gauss})

	press := func(key string) {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}

	press("e")
	if gauss.Enabled() {
		t.Error("e should disable the selected force")
	}
	press("e")
	if !gauss.Enabled() {
		t.Error("e should re-enable the selected force")
	}

	press("u")
	if !strings.Contains(m.status, "missing") {
		t.Errorf("expected missing coefficient status, got %q", m.status)
	}
	if !strings.Contains(m.View(), "unset") {
		t.Error("detail view should flag unset pairs")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	if got := SparklineChart([]float64{0, 1, 2, 3}, 4); !strings.ContainsRune(got, '█') {
		t.Errorf("sparkline should reach the top bar: %q", got)
	}
}
