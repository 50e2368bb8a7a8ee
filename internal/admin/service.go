package admin

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"claims-portal-api/internal/contact"
	"claims-portal-api/internal/document"
	"claims-portal-api/internal/submission"

	"github.com/iancoleman/orderedmap"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func (as *AdminService) DashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalClaims, as.DB.Table("claims")},
		{&stats.ActiveClaims, as.DB.Table("claims").Where("is_active = ? AND is_used = ?", true, false)},
		{&stats.UsedClaims, as.DB.Table("claims").Where("is_used = ?", true)},
		{&stats.DraftCount, as.DB.Model(&submission.ClaimSubmission{}).Where("status = ?", submission.StatusDraft)},
		{&stats.SubmittedCount, as.DB.Model(&submission.ClaimSubmission{}).Where("status = ?", submission.StatusSubmitted)},
		{&stats.DocumentCount, as.DB.Model(&document.ClaimDocument{}).Where("is_deleted = ?", false)},
		{&stats.UnreadMessages, as.DB.Model(&contact.ContactMessage{}).Where("is_read = ?", false)},
		{&stats.SubmittedLast24h, as.DB.Model(&submission.ClaimSubmission{}).
			Where("status = ? AND submitted_at >= ?", submission.StatusSubmitted, time.Now().Add(-24*time.Hour))},
		{&stats.SubmittedLast7d, as.DB.Model(&submission.ClaimSubmission{}).
			Where("status = ? AND submitted_at >= ?", submission.StatusSubmitted, time.Now().AddDate(0, 0, -7))},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := as.DB.Model(&document.ClaimDocument{}).
		Where("is_deleted = ?", false).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&stats.DocumentBytes).Error; err != nil {
		return nil, err
	}

	// tallied in Go so the array column stays portable across drivers
	var cats []pq.StringArray
	if err := as.DB.Model(&submission.ClaimSubmission{}).
		Where("status = ?", submission.StatusSubmitted).
		Pluck("selected_categories", &cats).Error; err != nil {
		return nil, err
	}
	stats.CategoryCounts = map[string]int64{}
	for _, row := range cats {
		for _, c := range row {
			stats.CategoryCounts[c]++
		}
	}

	return &stats, nil
}

// ExportSubmissions renders the submissions matching the filter as CSV or
// XLSX. Form fields are flattened into dotted columns, keeping the order
// they appear in the stored JSON so the sheet reads like the form.
func (as *AdminService) ExportSubmissions(input ExportInput) (contentType, filename string, out []byte, err error) {
	q := as.DB.Model(&submission.ClaimSubmission{}).Order("updated_at DESC")

	switch input.Status {
	case "", "all":
	case submission.StatusDraft, submission.StatusSubmitted:
		q = q.Where("status = ?", input.Status)
	default:
		return "", "", nil, fmt.Errorf("unknown status filter: %s", input.Status)
	}
	if input.From != nil {
		q = q.Where("updated_at >= ?", *input.From)
	}
	if input.To != nil {
		q = q.Where("updated_at < ?", input.To.Add(24*time.Hour))
	}

	var subs []submission.ClaimSubmission
	if err := q.Find(&subs).Error; err != nil {
		return "", "", nil, err
	}

	rows := make([]exportRow, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, exportRow{
			Code:        s.Code,
			Status:      s.Status,
			Categories:  s.SelectedCategories,
			SubmittedAt: s.SubmittedAt,
			UpdatedAt:   s.UpdatedAt,
			FormData:    s.FormData,
		})
	}

	ts := time.Now().Format("20060102_150405")

	if input.Format == "xlsx" {
		out, err := buildXLSX(rows)
		if err != nil {
			return "", "", nil, err
		}
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			fmt.Sprintf("submissions_%s.xlsx", ts), out, nil
	}

	out, err = buildCSV(rows)
	if err != nil {
		return "", "", nil, err
	}
	return "text/csv; charset=utf-8", fmt.Sprintf("submissions_%s.csv", ts), out, nil
}

// flattenForm walks the stored form JSON and emits dotted leaf columns in
// document order ("contact.firstName", "payment.method", ...).
func flattenForm(raw []byte) (cols []string, values map[string]string) {
	values = map[string]string{}
	if len(raw) == 0 {
		return nil, values
	}

	om := orderedmap.New()
	if err := om.UnmarshalJSON(raw); err != nil {
		return nil, values
	}

	var walk func(prefix string, m *orderedmap.OrderedMap)
	walk = func(prefix string, m *orderedmap.OrderedMap) {
		for _, key := range m.Keys() {
			v, _ := m.Get(key)
			col := key
			if prefix != "" {
				col = prefix + "." + key
			}
			switch t := v.(type) {
			case orderedmap.OrderedMap:
				walk(col, &t)
			case *orderedmap.OrderedMap:
				walk(col, t)
			case []interface{}:
				parts := make([]string, 0, len(t))
				for _, item := range t {
					parts = append(parts, fmt.Sprintf("%v", item))
				}
				cols = append(cols, col)
				values[col] = strings.Join(parts, ",")
			case nil:
				cols = append(cols, col)
				values[col] = ""
			default:
				cols = append(cols, col)
				values[col] = fmt.Sprintf("%v", t)
			}
		}
	}
	walk("", om)

	return cols, values
}

func exportColumns(rows []exportRow) []string {
	globalCols := []string{}
	seen := map[string]struct{}{}
	for _, r := range rows {
		cols, _ := flattenForm(r.FormData)
		for _, c := range cols {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				globalCols = append(globalCols, c)
			}
		}
	}
	return globalCols
}

func fixedColumns(r exportRow) []string {
	submitted := ""
	if r.SubmittedAt != nil {
		submitted = r.SubmittedAt.Format(time.RFC3339)
	}
	return []string{
		r.Code,
		r.Status,
		strings.Join(r.Categories, ","),
		submitted,
		r.UpdatedAt.Format(time.RFC3339),
	}
}

var exportHeader = []string{"code", "status", "categories", "submitted_at", "updated_at"}

func buildCSV(rows []exportRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	globalCols := exportColumns(rows)

	header := append(append([]string{}, exportHeader...), globalCols...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range rows {
		_, vals := flattenForm(r.FormData)

		rec := fixedColumns(r)
		for _, c := range globalCols {
			rec = append(rec, vals[c])
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func buildXLSX(rows []exportRow) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	})

	sheet := "Submissions"
	f.NewSheet(sheet)

	globalCols := exportColumns(rows)

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, 0, len(exportHeader)+len(globalCols))
	for _, h := range exportHeader {
		header = append(header, excelize.Cell{Value: h, StyleID: headerStyle})
	}
	for _, c := range globalCols {
		header = append(header, excelize.Cell{Value: c, StyleID: headerStyle})
	}
	_ = sw.SetRow("A1", header)

	rowNum := 2
	for _, r := range rows {
		_, vals := flattenForm(r.FormData)

		record := make([]interface{}, 0, len(exportHeader)+len(globalCols))
		for _, v := range fixedColumns(r) {
			record = append(record, v)
		}
		for _, c := range globalCols {
			record = append(record, vals[c])
		}

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		_ = sw.SetRow(cell, record)
		rowNum++
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}

	if def := f.GetSheetName(0); def != sheet {
		f.DeleteSheet(def)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
