package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/talent-match/internal/matching"
)

func TestShortlistWritesBothSheets(t *testing.T) {
	original := now
	now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	defer func() { now = original }()

	matches := []matching.Match{
		{Rank: 1, ApplicantID: "31002", Position: 2, Probability: 0.91},
		{Rank: 2, ApplicantID: "31000", Position: 0, Probability: 0.4},
	}

	path, err := Shortlist(filepath.Join(t.TempDir(), "shortlist"), "4530", "Desenvolvedor Java", matches)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, CandidatesSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Job ID:", "4530"}, summary[0])
	assert.Equal(t, []string{"Job Title:", "Desenvolvedor Java"}, summary[1])
	assert.Equal(t, []string{"Generated:", "2024-03-01 09:30:00"}, summary[2])
	assert.Equal(t, []string{"Candidates Returned:", "2"}, summary[3])

	rows, err := f.GetRows(CandidatesSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rank", "Applicant ID", "Applicant Row", "Probability"}, rows[0])
	assert.Equal(t, []string{"1", "31002", "2", "0.91"}, rows[1])
	assert.Equal(t, []string{"2", "31000", "0", "0.4"}, rows[2])
}

func TestShortlistWithoutMatches(t *testing.T) {
	path, err := Shortlist(filepath.Join(t.TempDir(), "empty.XLSX"), "1", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "empty.XLSX", filepath.Base(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(CandidatesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
