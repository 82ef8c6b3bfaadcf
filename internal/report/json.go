package report

import (
	"bufio"
	"encoding/json"
	"io"
)

// WriteJSON writes the table as an indented array of row objects whose keys
// follow the header order
func WriteJSON(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)

	if len(t.Rows) == 0 {
		bw.WriteString("[]\n")
		return bw.Flush()
	}

	keys := make([][]byte, len(t.Header))
	for i, col := range t.Header {
		k, err := json.Marshal(col)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	bw.WriteString("[\n")
	for r, row := range t.Rows {
		bw.WriteString("  {\n")
		for i, cell := range row {
			v, err := json.Marshal(cell)
			if err != nil {
				return err
			}
			bw.WriteString("    ")
			bw.Write(keys[i])
			bw.WriteString(": ")
			bw.Write(v)
			if i < len(row)-1 {
				bw.WriteByte(',')
			}
			bw.WriteByte('\n')
		}
		bw.WriteString("  }")
		if r < len(t.Rows)-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("]\n")

	return bw.Flush()
}
