package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timelane/pkg/io"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var showDiagnostics bool

	cmd := &cobra.Command{
		Use:   "inspect <file.layout.json>",
		Short: "Summarise a layout document lane by lane",
		Long: `Print the rows and label gaps of a layout document in vertical order,
followed by its diagnostics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := io.ImportLayout(args[0])
			if err != nil {
				return err
			}
			c.Logger.Debug("loaded layout", "file", args[0], "placements", len(doc.Placements))
			printInspect(doc, showDiagnostics)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiagnostics, "diagnostics", true, "list diagnostics")
	return cmd
}

// lane is one row or label gap and the items placed in it.
type lane struct {
	pos   float64
	label bool
	ids   []string
}

func (l lane) name() string {
	if l.label {
		return "gap " + strconv.FormatFloat(l.pos, 'f', 1, 64)
	}
	return "row " + strconv.FormatFloat(l.pos, 'f', 0, 64)
}

// lanes groups placements by vertical position, top to bottom. A bar row and
// a label gap never share a position.
func lanes(doc io.LayoutDocument) []lane {
	byPos := make(map[float64]*lane)
	add := func(pos float64, label bool, id string) {
		l, ok := byPos[pos]
		if !ok {
			l = &lane{pos: pos, label: label}
			byPos[pos] = l
		}
		l.ids = append(l.ids, id)
	}
	for _, pl := range doc.Placements {
		add(float64(pl.BarRow), false, pl.ItemID)
		if pl.HasLabel() {
			add(*pl.LabelRow, true, pl.ItemID)
		}
	}

	out := make([]lane, 0, len(byPos))
	for _, l := range byPos {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].pos < out[j].pos })
	return out
}

func printInspect(doc io.LayoutDocument, showDiagnostics bool) {
	printTitle("Layout")
	printKeyValue("rows", strconv.Itoa(doc.TotalRows))
	printKeyValue("items", strconv.Itoa(len(doc.Placements)))
	printKeyValue("connectors", strconv.Itoa(len(doc.Connectors)))
	if len(doc.Excluded) > 0 {
		printKeyValue("excluded", strings.Join(doc.Excluded, ", "))
	}
	fmt.Println(statsLine(doc.Result().Stats(), len(doc.Excluded)))
	printNewline()

	for _, l := range lanes(doc) {
		printKeyValue(l.name(), strings.Join(l.ids, " "))
	}

	if !showDiagnostics || len(doc.Diagnostics) == 0 {
		return
	}
	printNewline()
	printTitle("Diagnostics")
	for _, d := range doc.Diagnostics {
		printWarning("%s", d)
	}
}
