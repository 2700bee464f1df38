package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/classify"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/compose"
	"github.com/Reasonofmoon/darlkom-banana/pkg/render/postfx"
)

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	var role, search string
	cmd := &cobra.Command{
		Use:   "classify [id...]",
		Short: "Show the pattern kind and effects each descriptor resolves to",
		Long: `Show the pattern kind and effects each descriptor resolves to.

The signal column tells which resolver decided: "structured" for descriptors
with a layout composition, "keyword" for those classified from their name
and report text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClassify(cmd.Context(), args, role, search)
		},
	}
	cmd.Flags().StringVar(&role, "role", dna.RoleAll, "only descriptors whose role bucket contains this")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only descriptors whose entry contains this text")
	return cmd
}

func (c *CLI) runClassify(ctx context.Context, ids []string, role, search string) error {
	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()
	lib, err := c.loadLibrary(ctx, runner)
	if err != nil {
		return err
	}

	var ds []dna.Descriptor
	if len(ids) > 0 {
		for _, id := range ids {
			d, err := lib.Find(id)
			if err != nil {
				return err
			}
			ds = append(ds, d)
		}
	} else {
		ds = selectDescriptors(lib, role, search)
	}
	if len(ds) == 0 {
		printWarning("No descriptors match")
		return nil
	}

	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, classifyRow(d))
	}
	fmt.Println(renderTable([]string{"ID", "Name", "Kind", "Signal", "Effects", "Stroke"}, rows, 2))
	return nil
}

// classifyRow summarizes how d renders.
func classifyRow(d dna.Descriptor) []string {
	signal := "keyword"
	if classify.ResolverFor(d) == classify.Structured {
		signal = "structured"
	}
	var effects []string
	for _, e := range postfx.Select(d.Material.Texture) {
		effects = append(effects, e.String())
	}
	fx := strings.Join(effects, ",")
	if fx == "" {
		fx = "-"
	}
	return []string{
		d.ID,
		truncate(d.Name, 28),
		classify.Classify(d).String(),
		signal,
		fx,
		fmt.Sprintf("%gx", compose.StrokeScale(d.Emotion)),
	}
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var role, search string
	var roles bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the descriptors in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()
			lib, err := c.loadLibrary(cmd.Context(), runner)
			if err != nil {
				return err
			}
			if roles {
				for _, r := range lib.Roles() {
					fmt.Println(r)
				}
				return nil
			}
			ds := selectDescriptors(lib, role, search)
			rows := make([][]string, 0, len(ds))
			for _, d := range ds {
				rows = append(rows, []string{d.ID, truncate(d.Name, 32), d.Role, paletteCell(d.Colors())})
			}
			fmt.Println(renderTable([]string{"ID", "Name", "Role", "Palette"}, rows, -1))
			printDetail("%d of %d descriptors", len(ds), lib.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", dna.RoleAll, "only descriptors whose role bucket contains this")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only descriptors whose entry contains this text")
	cmd.Flags().BoolVar(&roles, "roles", false, "list the distinct role buckets instead")
	return cmd
}

// renderTable draws rows in the CLI's table style. highlight is the column
// rendered in the accent color, or -1.
func renderTable(headers []string, rows [][]string, highlight int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == highlight:
				return cell.Foreground(colorCyan)
			}
			return cell
		}).
		String()
}

// paletteCell renders the three resolved colors as swatches.
func paletteCell(cs dna.Colors) string {
	var b strings.Builder
	for _, col := range []colorHex{hexOf(cs.Primary), hexOf(cs.Secondary), hexOf(cs.Accent)} {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(string(col))).Render("  "))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
