package driver

import (
	"context"

	"membro-hub/internal/directory-service/core/domain/dto"
)

type IMembroService interface {
	List(ctx context.Context, f dto.Filter, page, perPage int) (dto.MembroPage, error)
	Get(ctx context.Context, id string) (dto.MembroRow, error)
	Create(ctx context.Context, data map[string]any) (string, error)
	Update(ctx context.Context, id string, data map[string]any) error
	Aggregate(ctx context.Context, field string, f dto.Filter, limit int) (dto.AggregateResult, error)
	Stats(ctx context.Context, f dto.Filter) (dto.Stats, error)
}
