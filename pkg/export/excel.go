package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"huangye/pkg/model"
)

var excelHeader = []string{"提交时间", "姓名", "邮箱", "城市", "类型", "详情", "联系方式"}

// SubmissionsWorkbook builds an xlsx workbook with one row per submission,
// newest first as given. The caller owns closing the file.
func SubmissionsWorkbook(subs []*model.Submission) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, title := range excelHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, sub := range subs {
		row := []interface{}{
			sub.CreatedAt.Format("2006-01-02 15:04:05"),
			sub.Name,
			sub.Email,
			sub.City,
			sub.Type,
			sub.Details,
			sub.Contact,
		}
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	return f, nil
}
