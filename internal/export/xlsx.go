// Package export renders the corpus for people who live in spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ppiankov/landwatch/internal/corpus"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheet = "Notices"

type column struct {
	header string
	width  float64
	value  func(e corpus.Entry) any
}

var columns = []column{
	{"Source", 22, func(e corpus.Entry) any { return e.Key }},
	{"Complete Address", 70, func(e corpus.Entry) any { return e.Notice.PropertyDetails.Address.Format() }},
	{"District", 24, func(e corpus.Entry) any { return string(e.Notice.PropertyDetails.Address.District) }},
	{"City", 16, func(e corpus.Entry) any { return string(e.Notice.PropertyDetails.Address.City) }},
	{"Pin Code", 10, func(e corpus.Entry) any { return e.Notice.PropertyDetails.Address.PinCode }},
	{"Usage", 14, func(e corpus.Entry) any { return string(e.Notice.PropertyDetails.PropertyUsageType) }},
	{"Property Type", 16, func(e corpus.Entry) any { return e.Notice.PropertyDetails.TypeOfProperty }},
	{"Area", 18, func(e corpus.Entry) any { return e.Notice.PropertyDetails.Area }},
	{"Date of Notice", 14, func(e corpus.Entry) any { return e.Notice.GeneralNoticeInfo.DateOfNotice }},
	{"Days to Respond", 10, func(e corpus.Entry) any { return e.Notice.GeneralNoticeInfo.NumDaysToRespond }},
	{"Seller", 28, func(e corpus.Entry) any { return e.Notice.SellerDetails.PersonName }},
	{"Seller Company", 28, func(e corpus.Entry) any { return e.Notice.SellerDetails.CompanyName }},
	{"Advocate", 24, func(e corpus.Entry) any { return e.Notice.AdvocateDetails.AdvocateName }},
	{"Firm", 24, func(e corpus.Entry) any { return e.Notice.AdvocateDetails.FirmName }},
	{"Phone", 16, func(e corpus.Entry) any { return e.Notice.AdvocateDetails.Phone }},
	{"Email", 24, func(e corpus.Entry) any { return e.Notice.AdvocateDetails.Email }},
	{"Summary", 80, func(e corpus.Entry) any { return e.Notice.GeneralNoticeInfo.Summary }},
}

// XLSX returns a workbook with one row per record in corpus order.
func XLSX(entries []corpus.Entry, logger *zap.Logger) ([]byte, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, c.header); err != nil {
			return nil, err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, c.width)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheet, "A1", last, bold)
	}
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for r, e := range entries {
		for i, c := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, c.value(e)); err != nil {
				return nil, fmt.Errorf("write %s: %w", e.Key, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		zap.Int("rows", len(entries)),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()))
	return buf.Bytes(), nil
}
