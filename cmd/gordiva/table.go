package main

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const timeRounding = 10 * time.Millisecond

type summaryRow struct {
	label string
	value string
}

func countRow(label string, n int) summaryRow {
	return summaryRow{label: label, value: strconv.Itoa(n)}
}

// renderSummary prints a two-column table in the rounded house style. The
// value column is right-aligned when every value is a bare count.
func renderSummary(labelHeader, valueHeader string, rows []summaryRow) string {
	if len(rows) == 0 {
		return ""
	}

	numeric := true
	for _, row := range rows {
		if _, err := strconv.Atoi(row.value); err != nil {
			numeric = false
			break
		}
	}
	valueAlign := text.AlignLeft
	if numeric {
		valueAlign = text.AlignRight
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{labelHeader, valueHeader})
	for _, row := range rows {
		tw.AppendRow(table.Row{row.label, row.value})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: valueAlign, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
