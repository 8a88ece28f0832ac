package xlformula

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

var tableHeader = []string{"index", "type", "subtype", "token", "token tree"}

// WriteTable writes tokens as a plain-text table with one row per token:
// its 1-based index, type, subtype, value and the value indented by
// scope depth. Columns are padded by display width.
func WriteTable(w io.Writer, tokens *Tokens) error {
	rows := [][]string{tableHeader}
	depth := 0
	c := tokens.Cursor()
	for c.MoveNext() {
		tok, _ := c.Current()
		if tok.IsStop() && depth > 0 {
			depth--
		}
		tree := "|" + strings.Repeat("   |", depth) + tok.Value
		rows = append(rows, []string{
			strconv.Itoa(c.Index() + 1),
			tok.Type.String(),
			tok.Subtype.String(),
			tok.Value,
			tree,
		})
		if tok.IsStart() {
			depth++
		}
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	bw := bufio.NewWriter(w)
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				line.WriteString(cell)
				break
			}
			line.WriteString(runewidth.FillRight(cell, widths[i]))
			line.WriteString("  ")
		}
		if _, err := bw.WriteString(strings.TrimRight(line.String(), " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
