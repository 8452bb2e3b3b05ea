package service

import (
	"context"
	"fmt"
	"math"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/myerrors"
	"membro-hub/internal/directory-service/core/ports/driven"
	"membro-hub/internal/mylogger"
)

const (
	DefaultPerPage        = 20
	DefaultAggregateLimit = 50
)

// aggregableColumns is the allow-list of group-by fields, keyed by canonical
// label. Aggregating by anything else yields an empty result, not an error.
var aggregableColumns = map[string]string{
	models.LabelComarcaLotacao: "comarca_lotacao",
	models.LabelCargoEfetivo:   "cargo_efetivo",
}

type MembroService struct {
	ctx        context.Context
	membroRepo driven.IMembroRepo
	mylog      mylogger.Logger
}

func NewMembroService(ctx context.Context, membroRepo driven.IMembroRepo, mylog mylogger.Logger) *MembroService {
	return &MembroService{
		ctx:        ctx,
		membroRepo: membroRepo,
		mylog:      mylog,
	}
}

func (ms *MembroService) row(ctx context.Context, m models.Membro) (dto.MembroRow, error) {
	friends, err := ms.membroRepo.FriendsOf(ctx, m.ID)
	if err != nil {
		return dto.MembroRow{}, fmt.Errorf("cannot load friends: %w", err)
	}
	return dto.MembroRow{ID: m.ID, Data: m.Data(friends)}, nil
}

func (ms *MembroService) List(ctx context.Context, f dto.Filter, page, perPage int) (dto.MembroPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	membros, total, err := ms.membroRepo.List(ctx, f, page, perPage)
	if err != nil {
		ms.mylog.Error("failed to list membros", err)
		return dto.MembroPage{}, fmt.Errorf("cannot list membros: %w", err)
	}

	rows := make([]dto.MembroRow, 0, len(membros))
	for _, m := range membros {
		row, err := ms.row(ctx, m)
		if err != nil {
			return dto.MembroPage{}, err
		}
		rows = append(rows, row)
	}
	return dto.MembroPage{Data: rows, Total: total}, nil
}

func (ms *MembroService) Get(ctx context.Context, id string) (dto.MembroRow, error) {
	m, err := ms.membroRepo.GetByID(ctx, id)
	if err != nil {
		return dto.MembroRow{}, err
	}
	return ms.row(ctx, m)
}

func (ms *MembroService) Create(ctx context.Context, data map[string]any) (string, error) {
	mylog := ms.mylog.Action("CreateMembro")

	m := models.MembroFromData(data)
	if m.Nome == "" {
		return "", myerrors.ErrMissingFields
	}

	id, err := ms.membroRepo.Create(ctx, m)
	if err != nil {
		mylog.Error("failed to create membro", err)
		return "", fmt.Errorf("cannot create membro: %w", err)
	}
	mylog.Info("membro created", "membro_id", id)
	return id, nil
}

// Update applies a partial payload: only labels carrying a non-blank value
// overwrite the stored field.
func (ms *MembroService) Update(ctx context.Context, id string, data map[string]any) error {
	mylog := ms.mylog.Action("UpdateMembro")

	m, err := ms.membroRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	m.ApplyData(data)
	if err := ms.membroRepo.Update(ctx, m); err != nil {
		mylog.Error("failed to update membro", err)
		return fmt.Errorf("cannot update membro: %w", err)
	}
	mylog.Info("membro updated", "membro_id", id)
	return nil
}

func (ms *MembroService) Aggregate(ctx context.Context, field string, f dto.Filter, limit int) (dto.AggregateResult, error) {
	result := dto.AggregateResult{Field: field, Data: []dto.Bucket{}}

	column, ok := aggregableColumns[field]
	if !ok {
		// fail soft on fields outside the allow-list
		return result, nil
	}
	if limit < 1 {
		limit = DefaultAggregateLimit
	}

	buckets, err := ms.membroRepo.CountBy(ctx, column, f, limit)
	if err != nil {
		ms.mylog.Error("failed to aggregate membros", err, "field", field)
		return dto.AggregateResult{}, fmt.Errorf("cannot aggregate membros: %w", err)
	}
	result.Data = buckets
	return result, nil
}

func (ms *MembroService) Stats(ctx context.Context, f dto.Filter) (dto.Stats, error) {
	total, err := ms.membroRepo.Count(ctx, f)
	if err != nil {
		return dto.Stats{}, fmt.Errorf("cannot count membros: %w", err)
	}
	if total == 0 {
		return dto.Stats{}, nil
	}

	female, err := ms.membroRepo.CountValue(ctx, "sexo", models.SexoFeminino, f)
	if err != nil {
		return dto.Stats{}, fmt.Errorf("cannot count membros: %w", err)
	}

	pct := math.Round(float64(female)*1000/float64(total)) / 10
	return dto.Stats{Total: total, FemaleCount: female, FemalePct: pct}, nil
}
