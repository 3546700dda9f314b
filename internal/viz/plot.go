package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/md"
)

// PairSeries samples V(r) for key on n points in [rMin, RCut(key)].
func PairSeries(p *force.PairForce, key md.TypeKey, rMin float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d", n)
	}
	rc := p.RCut(key)
	if rMin <= 0 || rMin >= rc {
		return nil, fmt.Errorf("r_min %g must be in (0, %g)", rMin, rc)
	}

	data := make([]float64, n)
	dr := (rc - rMin) / float64(n-1)
	for i := range data {
		_, e, err := p.Evaluate(key, rMin+float64(i)*dr)
		if err != nil {
			return nil, err
		}
		data[i] = e
	}
	return data, nil
}

// PlotPair draws V(r) for key between rMin and its cutoff.
func PlotPair(p *force.PairForce, key md.TypeKey, rMin float64, width, height int) (string, error) {
	data, err := PairSeries(p, key, rMin, width)
	if err != nil {
		return "", err
	}
	caption := fmt.Sprintf("%s %s  V(r), r in [%.2f, %.2f] (%s)",
		p.Name(), p.KeyLabel(key), rMin, p.RCut(key), p.ShiftMode())
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
