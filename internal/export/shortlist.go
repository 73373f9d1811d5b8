// Package export writes ranked shortlists to spreadsheet workbooks.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/talent-match/internal/matching"
)

const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Ranked Candidates"
)

var now = time.Now

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// Shortlist writes the ranked matches of a job to an .xlsx workbook and returns
// the path written. The extension is appended when missing.
func Shortlist(path, jobID, title string, matches []matching.Match) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(CandidatesSheet); err != nil {
		return "", err
	}

	if err := writeSummary(f, jobID, title, matches); err != nil {
		return "", fmt.Errorf("writing summary sheet: %w", err)
	}
	if err := writeCandidates(f, matches); err != nil {
		return "", fmt.Errorf("writing ranked candidates sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}

func writeSummary(f *excelize.File, jobID, title string, matches []matching.Match) error {
	if err := f.SetColWidth(SummarySheet, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 50); err != nil {
		return err
	}

	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{
		{"Job ID:", jobID},
		{"Job Title:", title},
		{"Generated:", now().Format("2006-01-02 15:04:05")},
		{"Candidates Returned:", len(matches)},
	}
	if len(matches) > 0 {
		rows = append(rows,
			[]any{"Highest Probability:", matches[0].Probability},
			[]any{"Lowest Probability:", matches[len(matches)-1].Probability},
		)
	}

	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell, cell, label); err != nil {
			return err
		}
	}
	return nil
}

func writeCandidates(f *excelize.File, matches []matching.Match) error {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}
	body, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return err
	}
	percent, err := f.NewStyle(&excelize.Style{Border: thinBorder, NumFmt: 10})
	if err != nil {
		return err
	}

	if err := f.SetColWidth(CandidatesSheet, "A", "A", 8); err != nil {
		return err
	}
	if err := f.SetColWidth(CandidatesSheet, "B", "D", 18); err != nil {
		return err
	}

	headers := []any{"Rank", "Applicant ID", "Applicant Row", "Probability"}
	if err := f.SetSheetRow(CandidatesSheet, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(CandidatesSheet, "A1", "D1", header); err != nil {
		return err
	}

	for i, m := range matches {
		row := i + 2
		values := []any{m.Rank, m.ApplicantID, m.Position, m.Probability}
		if err := f.SetSheetRow(CandidatesSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(CandidatesSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), body); err != nil {
			return err
		}
		if err := f.SetCellStyle(CandidatesSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), percent); err != nil {
			return err
		}
	}

	if len(matches) > 0 {
		if err := f.AutoFilter(CandidatesSheet, fmt.Sprintf("A1:D%d", len(matches)+1), []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}

	return f.SetPanes(CandidatesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
