package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sparsekit/umfbridge/native"
	"github.com/sparsekit/umfbridge/sparse"
	"github.com/sparsekit/umfbridge/umf"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	paneStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

type pane int

const (
	paneControl pane = iota
	paneInfo
)

type model[I native.Index] struct {
	ctx *umf.Context[I]
	m   *sparse.Matrix[I]
	sys native.Sys

	active  pane
	control table.Model
	info    table.Model
	status  string
	warn    bool
}

func runInteractive[I native.Index](ctx *umf.Context[I], m *sparse.Matrix[I], sys native.Sys) error {
	md := &model[I]{
		ctx:     ctx,
		m:       m,
		sys:     sys,
		control: entryTable(ctx.ControlEntries(), "Control"),
		info:    entryTable(ctx.InfoEntries(), "Info"),
		status:  fmt.Sprintf("%dx%d, %d entries, backend %s. f: factorize, s: solve, tab: switch, q: quit", m.NRow, m.NCol, m.NNZ(), ctx.Library().Name),
	}
	md.control.Focus()
	_, err := tea.NewProgram(md, tea.WithAltScreen()).Run()
	return err
}

func entryTable(entries []umf.Entry, vector string) table.Model {
	cols := []table.Column{
		{Title: vector, Width: 10},
		{Title: "name", Width: 32},
		{Title: "value", Width: 14},
	}
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("[%2d]", e.Index),
			e.Name,
			strconv.FormatFloat(e.Value, 'g', 6, 64),
		}
	}
	return table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(len(entries)+1),
	)
}

func (m *model[I]) Init() tea.Cmd { return nil }

func (m *model[I]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.active == paneControl {
				m.active = paneInfo
				m.control.Blur()
				m.info.Focus()
			} else {
				m.active = paneControl
				m.info.Blur()
				m.control.Focus()
			}
			return m, nil
		case "f":
			m.factorize()
			return m, nil
		case "s":
			m.solve()
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.active == paneControl {
		m.control, cmd = m.control.Update(msg)
	} else {
		m.info, cmd = m.info.Update(msg)
	}
	return m, cmd
}

func (m *model[I]) factorize() {
	if err := m.ctx.Numeric(m.m); err != nil {
		m.status, m.warn = err.Error(), true
	} else {
		lnz, unz, _, _, _, err := m.ctx.Lunz()
		if err != nil {
			m.status, m.warn = err.Error(), true
		} else {
			m.status = fmt.Sprintf("factorized: lnz=%d unz=%d rcond=%g", lnz, unz, m.ctx.RCond())
			m.warn = false
		}
	}
	m.refresh()
}

func (m *model[I]) solve() {
	if m.m.Complex() {
		b := make([]complex128, m.m.NRow)
		for i := range b {
			b[i] = 1
		}
		x, err := m.ctx.SolveComplex(m.sys, m.m, b)
		if err != nil {
			m.status, m.warn = err.Error(), true
		} else {
			m.status = fmt.Sprintf("solved %d unknowns, x[0]=%g, rcond=%g", len(x), x[0], m.ctx.RCond())
			m.warn = false
		}
		m.refresh()
		return
	}
	b := make([]float64, m.m.NRow)
	for i := range b {
		b[i] = 1
	}
	x, err := m.ctx.LinSolve(m.sys, m.m, b)
	if err != nil {
		m.status, m.warn = err.Error(), true
	} else {
		m.status = fmt.Sprintf("solved %d unknowns, x[0]=%g, rcond=%g", len(x), x[0], m.ctx.RCond())
		m.warn = false
	}
	m.refresh()
}

func (m *model[I]) refresh() {
	m.control = entryTable(m.ctx.ControlEntries(), "Control")
	m.info = entryTable(m.ctx.InfoEntries(), "Info")
	if m.active == paneControl {
		m.control.Focus()
	} else {
		m.info.Focus()
	}
}

func (m *model[I]) View() string {
	status := statusStyle
	if m.warn {
		status = warnStyle
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.control.View()),
		paneStyle.Render(m.info.View()),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("umfsolve"),
		panes,
		status.Render(m.status),
	)
}
