package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/openaims/sectorflow/pkg/engine"
	"github.com/openaims/sectorflow/pkg/errors"
)

// browseCommand creates the browse command for interactive layout exploration.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [layout.json]",
		Short: "Browse a computed layout interactively",
		Long: `Browse a computed layout interactively.

Opens a terminal UI over a layout.json file (produced by 'layout'). Nodes
are listed by level with their values and colors; selecting one prints its
code and level, the same pair a selection callback would receive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(args[0])
		},
	}
}

func (c *CLI) runBrowse(input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "layout file not found: %s", input)
		}
		return fmt.Errorf("read %s: %w", input, err)
	}

	result, err := engine.ParseResult(data)
	if err != nil {
		return fmt.Errorf("parse layout %s: %w", input, err)
	}
	if len(result.Nodes) == 0 {
		printInfo("Layout is empty, nothing to browse")
		return nil
	}

	model := NewNodeListModel(result)
	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	m, ok := finalModel.(NodeListModel)
	if !ok || m.Selected == nil {
		return nil
	}

	printNewline()
	printKeyValue("code", m.Selected.Selection.Code)
	printKeyValue("level", m.Selected.Selection.Level.String())
	printKeyValue("name", m.Selected.Node.Name)
	printKeyValue("value", fmt.Sprintf("%.4g", m.Selected.Node.Value))
	printKeyValue("color", m.Selected.Node.Color)
	return nil
}
