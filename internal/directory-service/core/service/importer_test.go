package service

import (
	"context"
	"testing"

	"membro-hub/internal/directory-service/adapters/driven/memory"
	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/mylogger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves an in-memory sheet.
type fakeSource struct {
	headers []string
	rows    [][]string
}

func (fs *fakeSource) Read(ctx context.Context) ([]string, [][]string, error) {
	return fs.headers, fs.rows, nil
}

func runImport(t *testing.T, src *fakeSource) (int, *memory.MembroRepo) {
	t.Helper()
	repo := memory.NewMembroRepo()
	n, err := NewImporter(repo, mylogger.NewDiscard()).Run(context.Background(), src)
	require.NoError(t, err)
	return n, repo
}

func byName(t *testing.T, repo *memory.MembroRepo, nome string) models.Membro {
	t.Helper()
	all, err := repo.All(context.Background())
	require.NoError(t, err)
	for _, m := range all {
		if m.Nome == nome {
			return m
		}
	}
	t.Fatalf("membro %q not imported", nome)
	return models.Membro{}
}

func TestImportResolvesHeaderSpellings(t *testing.T) {
	// accent- and case-variant spellings of the canonical headers
	src := &fakeSource{
		headers: []string{"MEMBRO", "sexo", "Comarca de Lotação", "cargo efetivo", "Academico", "Estado de Origem"},
		rows: [][]string{
			{"MARIA SILVA", "Feminino", "UBERABA", "Promotora", "Direito Penal", "MG"},
		},
	}
	n, repo := runImport(t, src)
	require.Equal(t, 1, n)

	m := byName(t, repo, "MARIA SILVA")
	assert.Equal(t, "Feminino", *m.Sexo)
	assert.Equal(t, "UBERABA", *m.ComarcaLotacao)
	assert.Equal(t, "Promotora", *m.CargoEfetivo)
	assert.Equal(t, "Direito Penal", *m.Academico)
	assert.Equal(t, "MG", *m.EstadoOrigem)
}

func TestImportSkipsNamelessRows(t *testing.T) {
	src := &fakeSource{
		headers: []string{"Membro", "Sexo"},
		rows: [][]string{
			{"MARIA SILVA", "Feminino"},
			{"", "Masculino"},
			{"   ", ""},
			{"JOANA SOUZA", "Feminino"},
		},
	}
	n, repo := runImport(t, src)
	assert.Equal(t, 2, n)

	count, err := repo.Count(context.Background(), dto.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestImportLenientNumbers(t *testing.T) {
	src := &fakeSource{
		headers: []string{"Membro", "Quantidade de filhos", "Estado de origem"},
		rows: [][]string{
			{"MARIA SILVA", "2.0", "Minas Gerais"},
			{"JOANA SOUZA", "3", "SP"},
			{"PEDRO LIMA", "dois", "RJ"},
			{"ANA COSTA", "", ""},
		},
	}
	n, repo := runImport(t, src)
	require.Equal(t, 4, n)

	assert.Equal(t, 2, *byName(t, repo, "MARIA SILVA").QuantidadeFilhos)
	assert.Equal(t, 3, *byName(t, repo, "JOANA SOUZA").QuantidadeFilhos)
	// an unparsable count nulls the field but keeps the row
	assert.Nil(t, byName(t, repo, "PEDRO LIMA").QuantidadeFilhos)
	assert.Nil(t, byName(t, repo, "ANA COSTA").QuantidadeFilhos)

	// over-long origin states are clipped to two characters
	assert.Equal(t, "Mi", *byName(t, repo, "MARIA SILVA").EstadoOrigem)
	assert.Equal(t, "SP", *byName(t, repo, "JOANA SOUZA").EstadoOrigem)
	assert.Nil(t, byName(t, repo, "ANA COSTA").EstadoOrigem)
}

func TestImportMissingColumnsYieldNulls(t *testing.T) {
	src := &fakeSource{
		headers: []string{"Membro"},
		rows:    [][]string{{"MARIA SILVA"}},
	}
	n, repo := runImport(t, src)
	require.Equal(t, 1, n)

	m := byName(t, repo, "MARIA SILVA")
	assert.Nil(t, m.Sexo)
	assert.Nil(t, m.ComarcaLotacao)
	assert.Nil(t, m.QuantidadeFilhos)
}

func TestImportWiresFriendsByName(t *testing.T) {
	src := &fakeSource{
		headers: []string{"Membro", "Amigos no MP"},
		rows: [][]string{
			{"MARIA SILVA", "Joana Souza; Pedro Lima"},
			{"JOANA SOUZA", ""},
			{"PEDRO LIMA", "maria silva"},
		},
	}
	n, repo := runImport(t, src)
	require.Equal(t, 3, n)

	ctx := context.Background()
	maria := byName(t, repo, "MARIA SILVA")
	joana := byName(t, repo, "JOANA SOUZA")
	pedro := byName(t, repo, "PEDRO LIMA")

	friends, err := repo.FriendsOf(ctx, maria.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{joana.ID, pedro.ID}, friends)

	// the relation is visible from the other side too
	friends, err = repo.FriendsOf(ctx, joana.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{maria.ID}, friends)

	// the pair maria/pedro was declared twice, once per direction
	friends, err = repo.FriendsOf(ctx, pedro.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{maria.ID}, friends)
}

func TestImportIgnoresUnknownFriendsAndSelf(t *testing.T) {
	src := &fakeSource{
		headers: []string{"Membro", "Amigos no MP"},
		rows: [][]string{
			{"MARIA SILVA", "Maria Silva, Fulano Inexistente"},
		},
	}
	n, repo := runImport(t, src)
	require.Equal(t, 1, n)

	maria := byName(t, repo, "MARIA SILVA")
	friends, err := repo.FriendsOf(context.Background(), maria.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)
}
