package grammar

import (
	"strconv"

	"github.com/dekarrin/rosed"
)

// String renders the grammar as a table of its rules, one per row, the way
// internal/tunascript/grammar.go's LL1Table.String() and
// internal/ictiobus/parse/slr.go's slrTable.String() both format their
// tabular output via rosed.
func (g *Cfg) String() string {
	data := [][]string{{"#", "rule"}}
	for i, r := range g.rules {
		data = append(data, []string{strconv.Itoa(i), r.String()})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			TableBorders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
