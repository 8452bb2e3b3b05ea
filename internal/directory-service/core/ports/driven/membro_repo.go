package driven

import (
	"context"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/domain/models"
)

type IMembroRepo interface {
	Create(ctx context.Context, m models.Membro) (string, error)
	// CreateBatch commits every row or none; readers never see a partial import.
	CreateBatch(ctx context.Context, ms []models.Membro) ([]string, error)
	GetByID(ctx context.Context, id string) (models.Membro, error)
	Update(ctx context.Context, m models.Membro) error

	List(ctx context.Context, f dto.Filter, page, perPage int) ([]models.Membro, int64, error)
	All(ctx context.Context) ([]models.Membro, error)
	Count(ctx context.Context, f dto.Filter) (int64, error)
	CountValue(ctx context.Context, column, value string, f dto.Filter) (int64, error)
	// CountBy groups the filtered records by a column already validated
	// against the aggregable allow-list, skipping blank values,
	// ordered by count descending, truncated to limit.
	CountBy(ctx context.Context, column string, f dto.Filter, limit int) ([]dto.Bucket, error)

	// AddFriend stores the undirected edge a—b. Inserting it once makes it
	// visible from both sides.
	AddFriend(ctx context.Context, aID, bID string) error
	FriendsOf(ctx context.Context, id string) ([]string, error)
}
