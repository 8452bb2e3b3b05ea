package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadSkipsTitleRows(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Relatório de Membros"},
		{},
		{"Membro", "Sexo", "Comarca Lotação"},
		{"MARIA SILVA", "Feminino", "UBERABA"},
		{"JOANA SOUZA", "Feminino", "CONTAGEM"},
	})

	headers, rows, err := NewReader(path).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Membro", "Sexo", "Comarca Lotação"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "MARIA SILVA", rows[0][0])
	assert.Equal(t, "CONTAGEM", rows[1][2])
}

func TestReadNumericCells(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Membro", "Quantidade de filhos"},
		{"MARIA SILVA", 2},
	})

	_, rows, err := NewReader(path).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0][1])
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := NewReader(filepath.Join(t.TempDir(), "nope.xlsx")).Read(context.Background())
	assert.Error(t, err)
}

func TestReadNoHeader(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"só um título"},
	})

	_, _, err := NewReader(path).Read(context.Background())
	assert.Error(t, err)
}
