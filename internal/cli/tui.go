package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/openaims/sectorflow/pkg/engine"
	"github.com/openaims/sectorflow/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// NodeSelection holds the result of browsing a layout.
type NodeSelection struct {
	Node      layout.PositionedNode
	Selection engine.Selection
}

// NodeListModel is the bubbletea model for browsing layout nodes.
type NodeListModel struct {
	Result   *engine.LayoutResult
	Nodes    []layout.PositionedNode
	Cursor   int
	Selected *NodeSelection
	Height   int
	Offset   int
}

// NewNodeListModel creates a browse model over a layout result.
// Nodes are ordered by level, then ID, so siblings group together.
func NewNodeListModel(result *engine.LayoutResult) NodeListModel {
	nodes := append([]layout.PositionedNode(nil), result.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Level != nodes[j].Level {
			return nodes[i].Level < nodes[j].Level
		}
		return nodes[i].ID < nodes[j].ID
	})
	return NodeListModel{
		Result: result,
		Nodes:  nodes,
		Height: 15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Nodes) == 0 {
				return m, nil
			}
			node := m.Nodes[m.Cursor]
			sel, ok := m.Result.Selection(node.ID)
			if !ok {
				return m, nil
			}
			m.Selected = &NodeSelection{Node: node, Selection: sel}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Layout"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · %s", m.Result.Mode, canvasLabel(m.Result.Canvas))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Nodes) {
		end = len(m.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render("██")
		rows = append(rows, []string{
			cursor,
			n.Level.String(),
			n.Code,
			n.Name,
			fmt.Sprintf("%.4g", n.Value),
			swatch + " " + n.Color,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Level", "Code", "Name", "Value", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  total %.4g",
		m.Cursor+1, len(m.Nodes), m.Result.Summary.TotalValue)))

	return b.String()
}
