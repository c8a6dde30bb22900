package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/openaims/sectorflow/pkg/classify"
	"github.com/openaims/sectorflow/pkg/errors"
)

// classifyCommand creates the classify command for dataset inspection.
func (c *CLI) classifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Inspect the sector classification dataset",
	}

	cmd.AddCommand(c.classifyResolveCommand())
	cmd.AddCommand(c.classifyListCommand())

	return cmd
}

// classifyResolveCommand creates the "classify resolve" subcommand.
func (c *CLI) classifyResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve CODE...",
		Short: "Resolve codes to their category and sector ancestry",
		Long: `Resolve classification codes to their category and sector ancestry.

Codes must be 3 digits (sector) or 5 digits (subsector). Codes absent from
the dataset resolve to synthetic placeholder ancestors derived from the
code's leading digits, mirroring what the layout engine does.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup := classify.MustDefault()

			for i, code := range args {
				if err := errors.ValidateClassificationCode(code); err != nil {
					return err
				}
				if i > 0 {
					printNewline()
				}

				record, known := lookup.Leaf(code)
				ancestry := lookup.Resolve(code, record.Name)

				printKeyValue("code", code)
				if known {
					printKeyValue("name", record.Name)
				} else {
					printWarning("not in dataset, resolved by truncation")
				}
				printKeyValue("sector", fmt.Sprintf("%s %s", ancestry.SectorCode, ancestry.SectorName))
				printKeyValue("category", fmt.Sprintf("%s %s", ancestry.CategoryCode, ancestry.CategoryName))
			}
			return nil
		},
	}
}

// classifyListCommand creates the "classify list" subcommand.
func (c *CLI) classifyListCommand() *cobra.Command {
	var categoryFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all classification records",
		RunE: func(cmd *cobra.Command, args []string) error {
			records := classify.MustDefault().Records()
			sort.Slice(records, func(i, j int) bool { return records[i].Code < records[j].Code })

			count := 0
			for _, r := range records {
				if categoryFilter != "" && r.CategoryCode != categoryFilter {
					continue
				}
				fmt.Printf("%s  %-45s %s%s\n",
					r.Code, r.Name,
					StyleDim.Render(r.GroupCode+" "+r.GroupName),
					StyleDim.Render(" · "+r.CategoryName))
				count++
			}
			printNewline()
			printDetail("%d records", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFilter, "category", "", "only list records in this category code")
	return cmd
}
