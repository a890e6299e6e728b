package ui

import (
	"github.com/olekukonko/tablewriter"
)

// NewTable 创建一个新的表格
func NewTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(stdout)
	table.SetHeader(headers)
	table.SetBorder(true)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetHeaderLine(true)

	return table
}

// PrintKeyValueTable 打印两列的参数表格
func PrintKeyValueTable(rows [][]string) {
	if len(rows) == 0 {
		Info("没有可显示的参数")
		return
	}

	table := NewTable([]string{"参数", "值"})
	table.AppendBulk(rows)
	table.Render()
}
