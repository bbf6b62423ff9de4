package steps

import (
	"fmt"

	messages "github.com/cucumber/messages/go/v21"
)

// tableRecords maps every data row of table to its header names
func tableRecords(table *messages.PickleTable) ([]map[string]string, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, fmt.Errorf("table is empty")
	}

	header := table.Rows[0].Cells
	records := make([]map[string]string, 0, len(table.Rows)-1)
	for i, row := range table.Rows[1:] {
		if len(row.Cells) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", i+1, len(header), len(row.Cells))
		}
		record := make(map[string]string, len(header))
		for j, cell := range row.Cells {
			record[header[j].Value] = cell.Value
		}
		records = append(records, record)
	}
	return records, nil
}
