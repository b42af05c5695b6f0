package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const leaveSheet = "Leaves"

var leaveColumns = []struct {
	title string
	width float64
}{
	{"Reference", 18},
	{"Employee", 26},
	{"Email", 30},
	{"Department", 22},
	{"Leave Type", 16},
	{"Start", 12},
	{"End", 12},
	{"Working Days", 14},
	{"Status", 24},
	{"Submitted At", 20},
}

type leaveRow struct {
	Reference   string
	Employee    string
	Email       string
	Department  string
	LeaveType   string
	Start       string
	End         string
	WorkingDays int
	Status      string
	SubmittedAt string
}

func (r leaveRow) values() []any {
	return []any{r.Reference, r.Employee, r.Email, r.Department, r.LeaveType, r.Start, r.End, r.WorkingDays, r.Status, r.SubmittedAt}
}

// buildLeaveWorkbook writes a title row, a header row and one row per leave.
func buildLeaveWorkbook(title string, rows []leaveRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(leaveSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, col := range leaveColumns {
		name := colName(i)
		if err := f.SetColWidth(leaveSheet, name, name, col.width); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
	if err != nil {
		return nil, err
	}

	last := colName(len(leaveColumns) - 1)
	_ = f.SetCellValue(leaveSheet, "A1", title)
	_ = f.MergeCell(leaveSheet, "A1", last+"1")
	_ = f.SetCellStyle(leaveSheet, "A1", "A1", titleStyle)

	for i, col := range leaveColumns {
		_ = f.SetCellValue(leaveSheet, cell(colName(i), 2), col.title)
	}
	_ = f.SetCellStyle(leaveSheet, "A2", last+"2", headerStyle)

	for i, r := range rows {
		vals := r.values()
		if err := f.SetSheetRow(leaveSheet, cell("A", i+3), &vals); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(leaveSheet, &excelize.Panes{Freeze: true, YSplit: 2, TopLeftCell: "A3", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
