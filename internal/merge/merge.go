// Package merge joins the Gorilla asset export with the Diva object dump
// into the single merged table the rest of the pipeline consumes.
package merge

import (
	"fmt"
	"strings"

	"gordiva/internal/asset"
	"gordiva/internal/export"
)

// Summary counts how the two sides lined up.
type Summary struct {
	Matched   int
	LeftOnly  int
	RightOnly int
}

func (s Summary) Total() int { return s.Matched + s.LeftOnly + s.RightOnly }

// Outer performs a full outer join of two tables on the key column and
// appends a merge indicator column. Matched rows come out in left order,
// then unmatched left rows, then unmatched right rows, so the result is
// stable for a given pair of inputs.
func Outer(left, right *export.Table, key string) (*export.Table, Summary, error) {
	var summary Summary

	leftKey, err := columnIndex(left, key)
	if err != nil {
		return nil, summary, fmt.Errorf("left table: %w", err)
	}
	rightKey, err := columnIndex(right, key)
	if err != nil {
		return nil, summary, fmt.Errorf("right table: %w", err)
	}

	header := make([]string, 0, len(left.Header)+len(right.Header))
	header = append(header, left.Header...)
	for i, col := range right.Header {
		if i == rightKey {
			continue
		}
		header = append(header, col)
	}
	header = append(header, export.ColMerge)
	out := &export.Table{Header: header}

	rightRows := make(map[string][]int, len(right.Rows))
	for i, row := range right.Rows {
		k := rowKey(row, rightKey)
		rightRows[k] = append(rightRows[k], i)
	}

	leftWidth := len(left.Header)
	rightWidth := len(right.Header) - 1
	consumed := make(map[int]bool, len(right.Rows))

	for _, row := range left.Rows {
		k := rowKey(row, leftKey)
		matches := rightRows[k]
		if k == "" || len(matches) == 0 {
			out.Rows = append(out.Rows, joinRow(row, nil, leftWidth, rightKey, rightWidth, asset.MergeLeftOnly))
			summary.LeftOnly++
			continue
		}
		for _, ri := range matches {
			consumed[ri] = true
			out.Rows = append(out.Rows, joinRow(row, right.Rows[ri], leftWidth, rightKey, rightWidth, asset.MergeBoth))
			summary.Matched++
		}
	}

	for i, row := range right.Rows {
		if consumed[i] {
			continue
		}
		padded := make([]string, leftWidth)
		if leftKey < leftWidth {
			padded[leftKey] = rowKey(row, rightKey)
		}
		out.Rows = append(out.Rows, joinRow(padded, row, leftWidth, rightKey, rightWidth, asset.MergeRightOnly))
		summary.RightOnly++
	}

	return out, summary, nil
}

func columnIndex(t *export.Table, name string) (int, error) {
	for i, col := range t.Header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing key column %s", name)
}

func rowKey(row []string, key int) string {
	if key >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[key])
}

func joinRow(left, right []string, leftWidth, rightKey, rightWidth int, indicator string) []string {
	out := make([]string, 0, leftWidth+rightWidth+1)
	for i := 0; i < leftWidth; i++ {
		if i < len(left) {
			out = append(out, left[i])
		} else {
			out = append(out, "")
		}
	}
	if right == nil {
		for i := 0; i < rightWidth; i++ {
			out = append(out, "")
		}
	} else {
		for i := range right {
			if i == rightKey {
				continue
			}
			out = append(out, right[i])
		}
		for i := len(right); i < rightWidth+1; i++ {
			if i != rightKey {
				out = append(out, "")
			}
		}
	}
	out = append(out, indicator)
	return out
}
