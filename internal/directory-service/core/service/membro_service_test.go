package service

import (
	"context"
	"testing"

	"membro-hub/internal/directory-service/adapters/driven/memory"
	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/myerrors"
	"membro-hub/internal/mylogger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembroFixture(t *testing.T) (*MembroService, *memory.MembroRepo) {
	t.Helper()
	repo := memory.NewMembroRepo()
	ms := NewMembroService(context.Background(), repo, mylogger.NewDiscard())
	return ms, repo
}

func seededFixture(t *testing.T) (*MembroService, *memory.MembroRepo) {
	t.Helper()
	ms, repo := newMembroFixture(t)
	require.NoError(t, SeedDemo(context.Background(), repo, mylogger.NewDiscard()))
	return ms, repo
}

func TestListFilter(t *testing.T) {
	ctx := context.Background()
	ms, _ := seededFixture(t)

	tests := []struct {
		name  string
		q     string
		nomes []string
	}{
		{name: "empty query returns everyone", q: "", nomes: []string{
			"VANESSA CAMPOLINA REBELLO HORTA", "WESLEY LEITE VAZ", "WILSON PENIN COUTO",
		}},
		{name: "name substring", q: "vanessa", nomes: []string{"VANESSA CAMPOLINA REBELLO HORTA"}},
		{name: "comarca substring", q: "contagem", nomes: []string{"VANESSA CAMPOLINA REBELLO HORTA"}},
		{name: "cargo substring", q: "promotor", nomes: []string{
			"VANESSA CAMPOLINA REBELLO HORTA", "WESLEY LEITE VAZ", "WILSON PENIN COUTO",
		}},
		{name: "no match", q: "zzz", nomes: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ms.List(ctx, dto.Filter{Q: tt.q}, 1, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.nomes)), page.Total)

			got := make([]string, 0, len(page.Data))
			for _, row := range page.Data {
				got = append(got, row.Data[models.LabelNome].(string))
			}
			assert.ElementsMatch(t, tt.nomes, got)
		})
	}
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	ms, _ := seededFixture(t)

	page, err := ms.List(ctx, dto.Filter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Data, 2)

	page, err = ms.List(ctx, dto.Filter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Data, 1)

	// past the end: empty data, same total
	page, err = ms.List(ctx, dto.Filter{}, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Empty(t, page.Data)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	ms, _ := newMembroFixture(t)

	id, err := ms.Create(ctx, map[string]any{models.LabelNome: "MARIA SILVA"})
	require.NoError(t, err)

	row, err := ms.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, row.ID)
	assert.Equal(t, "MARIA SILVA", row.Data[models.LabelNome])
	// no acquaintances yet, but the key is always present
	assert.Equal(t, []string{}, row.Data[models.LabelAmigos])

	_, err = ms.Get(ctx, "missing-id")
	assert.ErrorIs(t, err, myerrors.ErrMembroNotFound)
}

func TestCreateRequiresName(t *testing.T) {
	ctx := context.Background()
	ms, _ := newMembroFixture(t)

	_, err := ms.Create(ctx, map[string]any{models.LabelSexo: "Feminino"})
	assert.ErrorIs(t, err, myerrors.ErrMissingFields)
}

func TestUpdateCoalesces(t *testing.T) {
	ctx := context.Background()
	ms, _ := newMembroFixture(t)

	id, err := ms.Create(ctx, map[string]any{
		models.LabelNome:           "MARIA SILVA",
		models.LabelComarcaLotacao: "UBERABA",
	})
	require.NoError(t, err)

	// a partial payload only touches the fields it carries
	require.NoError(t, ms.Update(ctx, id, map[string]any{models.LabelSexo: "Feminino"}))

	row, err := ms.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "MARIA SILVA", row.Data[models.LabelNome])
	assert.Equal(t, "Feminino", *row.Data[models.LabelSexo].(*string))
	assert.Equal(t, "UBERABA", *row.Data[models.LabelComarcaLotacao].(*string))

	// numeric cells arrive as JSON floats
	require.NoError(t, ms.Update(ctx, id, map[string]any{models.LabelQuantidadeFilhos: 2.0}))
	row, err = ms.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, *row.Data[models.LabelQuantidadeFilhos].(*int))

	err = ms.Update(ctx, "missing-id", map[string]any{models.LabelSexo: "Feminino"})
	assert.ErrorIs(t, err, myerrors.ErrMembroNotFound)
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	ms, _ := seededFixture(t)

	result, err := ms.Aggregate(ctx, models.LabelComarcaLotacao, dto.Filter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, models.LabelComarcaLotacao, result.Field)
	require.Len(t, result.Data, 2)
	assert.Equal(t, dto.Bucket{Value: "BELO HORIZONTE", Count: 2}, result.Data[0])
	assert.Equal(t, dto.Bucket{Value: "CONTAGEM", Count: 1}, result.Data[1])

	// the filter narrows the buckets
	result, err = ms.Aggregate(ctx, models.LabelComarcaLotacao, dto.Filter{Q: "vanessa"}, 0)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, dto.Bucket{Value: "CONTAGEM", Count: 1}, result.Data[0])

	// limit caps the bucket list
	result, err = ms.Aggregate(ctx, models.LabelComarcaLotacao, dto.Filter{}, 1)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "BELO HORIZONTE", result.Data[0].Value)
}

func TestAggregateUnknownField(t *testing.T) {
	ctx := context.Background()
	ms, _ := seededFixture(t)

	// outside the allow-list: empty result, not an error
	result, err := ms.Aggregate(ctx, "Telefone celular", dto.Filter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Telefone celular", result.Field)
	assert.Empty(t, result.Data)
	assert.NotNil(t, result.Data)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	ms, _ := seededFixture(t)

	stats, err := ms.Stats(ctx, dto.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.FemaleCount)
	assert.InDelta(t, 33.3, stats.FemalePct, 0.001)

	// the female share follows the active filter
	stats, err = ms.Stats(ctx, dto.Filter{Q: "contagem"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.FemaleCount)
	assert.InDelta(t, 100.0, stats.FemalePct, 0.001)
}

func TestStatsEmptyRoster(t *testing.T) {
	ctx := context.Background()
	ms, _ := newMembroFixture(t)

	stats, err := ms.Stats(ctx, dto.Filter{})
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.FemaleCount)
	assert.Zero(t, stats.FemalePct)
}

func TestAcquaintanceSymmetry(t *testing.T) {
	ctx := context.Background()
	ms, repo := newMembroFixture(t)

	aID, err := ms.Create(ctx, map[string]any{models.LabelNome: "MARIA SILVA"})
	require.NoError(t, err)
	bID, err := ms.Create(ctx, map[string]any{models.LabelNome: "JOANA SOUZA"})
	require.NoError(t, err)

	require.NoError(t, repo.AddFriend(ctx, aID, bID))
	// adding the reverse orientation is a no-op
	require.NoError(t, repo.AddFriend(ctx, bID, aID))

	rowA, err := ms.Get(ctx, aID)
	require.NoError(t, err)
	rowB, err := ms.Get(ctx, bID)
	require.NoError(t, err)

	assert.Equal(t, []string{bID}, rowA.Data[models.LabelAmigos])
	assert.Equal(t, []string{aID}, rowB.Data[models.LabelAmigos])
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	ctx := context.Background()
	_, repo := seededFixture(t)

	require.NoError(t, SeedDemo(ctx, repo, mylogger.NewDiscard()))

	count, err := repo.Count(ctx, dto.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
