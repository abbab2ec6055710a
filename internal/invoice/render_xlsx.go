package invoice

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Invoice"

var xlsxHeaders = []string{"#", "Description", "HSN/SAC", "Qty", "Unit", "Rate", "Currency", "IGST %", "Taxable (INR)", "IGST (INR)", "Total (INR)"}

// RenderXLSX builds a single-sheet workbook for inv. The caller owns the file
// and must Close it.
func RenderXLSX(seller Seller, inv Invoice) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
		},
	})
	amountFmt := "#,##0.00"
	amountStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})

	doc := newDocument(seller, inv)
	set := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(xlsxSheet, cell, v)
	}
	style := func(col, row, s int) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellStyle(xlsxSheet, cell, cell, s)
	}

	set(1, 1, doc.Title)
	style(1, 1, titleStyle)
	set(1, 2, seller.Name)
	set(1, 3, "GSTIN: "+seller.GSTIN)
	set(6, 2, "Invoice No")
	set(7, 2, inv.Number)
	set(6, 3, "Invoice Date")
	set(7, 3, inv.InvoiceDate)
	set(6, 4, "Due Date")
	set(7, 4, inv.DueDate)
	set(6, 5, "Exchange Rate")
	set(7, 5, fmt.Sprintf("1 USD = %s INR", inv.FxRate.String()))
	set(1, 5, "Bill To: "+inv.CustomerName)
	set(1, 6, "Place of Supply: "+inv.PlaceOfSupply)

	const headerRow = 8
	for i, h := range xlsxHeaders {
		set(i+1, headerRow, h)
		style(i+1, headerRow, headerStyle)
	}
	row := headerRow + 1
	for _, it := range inv.Items {
		set(1, row, it.Position)
		set(2, row, it.Description)
		set(3, row, it.HSNSAC)
		set(4, row, it.Quantity.InexactFloat64())
		set(5, row, it.Unit)
		set(6, row, cellAmount(it.Rate))
		set(7, row, string(it.Currency))
		set(8, row, it.TaxPercent.InexactFloat64())
		set(9, row, cellAmount(it.TaxableINR))
		set(10, row, cellAmount(it.TaxINR))
		set(11, row, cellAmount(it.TaxableINR.Add(it.TaxINR)))
		for _, col := range []int{6, 9, 10, 11} {
			style(col, row, amountStyle)
		}
		row++
	}

	row++
	t := inv.Totals
	summary := []struct {
		label    string
		inr, usd any
	}{
		{"Taxable value", cellAmount(t.TaxableINR), cellAmount(t.TaxableUSD)},
		{"IGST", cellAmount(t.TaxINR), cellAmount(t.TaxUSD)},
		{"Subtotal", cellAmount(t.SubtotalINR), cellAmount(t.SubtotalUSD)},
		{"Discount", cellAmount(t.DiscountINR.Neg()), ""},
		{"Adjustment", cellAmount(t.AdjustmentINR), ""},
		{"Grand Total", cellAmount(t.GrandTotalINR), cellAmount(t.GrandTotalUSD)},
	}
	set(10, row, "INR")
	set(11, row, "USD")
	style(10, row, headerStyle)
	style(11, row, headerStyle)
	row++
	for _, s := range summary {
		set(9, row, s.label)
		set(10, row, s.inr)
		set(11, row, s.usd)
		style(10, row, amountStyle)
		style(11, row, amountStyle)
		row++
	}
	set(1, row+1, "Amount in words: "+doc.AmountWords)

	_ = f.SetColWidth(xlsxSheet, "B", "B", 36)
	_ = f.SetColWidth(xlsxSheet, "C", "C", 12)
	_ = f.SetColWidth(xlsxSheet, "F", "K", 16)
	return f, nil
}
