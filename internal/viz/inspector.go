package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phmalek/hoomd-blue/internal/force"
)

// Inspector is a Bubble Tea model listing force components with their
// state and coefficients.
type Inspector struct {
	forces   []force.Component
	cursor   int
	detail   bool
	status   string
	width    int
	quitting bool
}

func NewInspector(forces []force.Component) *Inspector {
	return &Inspector{forces: forces, detail: true, width: 80}
}

func (m *Inspector) Init() tea.Cmd { return nil }

func (m *Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.forces)-1 {
				m.cursor++
			}
		case "enter":
			m.detail = !m.detail
		case "t":
			CurrentTheme = nextTheme(CurrentTheme)
			m.status = "theme: " + CurrentTheme.Name
		case "u":
			if f := m.selected(); f != nil {
				if err := f.UpdateCoeffs(); err != nil {
					m.status = err.Error()
				} else {
					m.status = f.Name() + ": coefficients bound"
				}
			}
		case "e":
			if f := m.selected(); f != nil {
				if f.Enabled() {
					f.Disable()
					m.status = f.Name() + ": disabled"
				} else {
					f.Enable()
					m.status = f.Name() + ": enabled"
				}
			}
		}
	}
	return m, nil
}

func (m *Inspector) selected() force.Component {
	if len(m.forces) == 0 {
		return nil
	}
	return m.forces[m.cursor]
}

func (m *Inspector) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle().Render("hoomd inspect") + "\n\n")

	if len(m.forces) == 0 {
		b.WriteString(mutedStyle().Render("no forces registered") + "\n")
	}
	for i, f := range m.forces {
		marker := "  "
		if i == m.cursor {
			marker = fg(CurrentTheme.Primary).Render("▸ ")
		}
		complete, total, _ := Coverage(f)
		enabled := ""
		if !f.Enabled() {
			enabled = mutedStyle().Render(" (disabled)")
		}
		fmt.Fprintf(&b, "%s%-20s %s %d/%d%s\n", marker, f.Name(),
			StateStyle(f.State()).Render(fmt.Sprintf("%-22s", f.State().String())), complete, total, enabled)
	}

	if f := m.selected(); f != nil && m.detail {
		b.WriteString("\n" + panelStyle().Width(max(m.width-4, 20)).Render(m.coeffView(f)) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + mutedStyle().Render(m.status) + "\n")
	}
	b.WriteString("\n" + mutedStyle().Italic(true).Render("↑/↓ select · enter detail · u update · e enable · t theme · q quit"))
	return b.String()
}

func (m *Inspector) coeffView(f force.Component) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  backend %s\n", titleStyle().Render(f.Name()), f.Backend().Name())
	fmt.Fprintf(&b, "required: %s\n", strings.Join(f.RequiredNames(), ", "))

	table := f.Coeffs()
	for _, key := range f.Keys() {
		set, ok := table.Get(key)
		label := fmt.Sprintf("%-14s", f.KeyLabel(key))
		if !ok {
			b.WriteString(errorStyle().Render(label+" unset") + "\n")
			continue
		}
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s=%g", name, set[name])
		}
		line := label + " " + strings.Join(parts, " ")
		if missing := set.Missing(f.RequiredNames()); len(missing) > 0 {
			b.WriteString(fg(CurrentTheme.Warning).Render(line+"  missing "+strings.Join(missing, ", ")) + "\n")
			continue
		}
		b.WriteString(labelStyle().Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
