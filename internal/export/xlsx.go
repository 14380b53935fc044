// Package export формирует выгрузку заказов владельца в Excel.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/magabrotheeeer/studio-orders/internal/models"
)

// SheetName имя листа с заказами.
const SheetName = "Заказы"

var header = []any{"Название", "Дата передачи", "Срок хранения (мес)", "Дата забора"}

// OrdersXLSX возвращает книгу с одним листом: строка заголовка и по строке на
// заказ в переданном порядке.
func OrdersXLSX(orders []*models.Order) ([]byte, error) {
	const op = "export.OrdersXLSX"

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		row := []any{o.Title, o.DateTransfer.String(), o.Months, o.DatePickup.String()}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 30); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := f.SetColWidth(SheetName, "B", "D", 20); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}
