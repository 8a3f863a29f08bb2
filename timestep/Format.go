package timestep

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

func formatVec(v mat.Vector) string {
	vals := make([]string, v.Len())
	for i := range vals {
		vals[i] = fmt.Sprintf("%.2f", v.AtVec(i))
	}
	return "[" + strings.Join(vals, " ") + "]"
}

// formatMat prints a weight matrix compactly on a single line, with
// rows separated by semicolons
func formatMat(m mat.Matrix) string {
	r, c := m.Dims()
	rows := make([]string, r)
	for i := 0; i < r; i++ {
		vals := make([]string, c)
		for j := 0; j < c; j++ {
			vals[j] = fmt.Sprintf("%.3f", m.At(i, j))
		}
		rows[i] = strings.Join(vals, " ")
	}
	return "[" + strings.Join(rows, "; ") + "]"
}

func sortedKeys(m map[string]*mat.Dense) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
