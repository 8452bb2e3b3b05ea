package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/myerrors"

	"github.com/google/uuid"
)

// edge is an unordered member pair stored with the smaller id first, so the
// acquaintance relation holds exactly one entry per pair.
type edge struct {
	a, b string
}

func newEdge(x, y string) edge {
	if x > y {
		x, y = y, x
	}
	return edge{a: x, b: y}
}

type MembroRepo struct {
	mu      sync.RWMutex
	membros []models.Membro
	index   map[string]int
	edges   map[edge]struct{}
}

func NewMembroRepo() *MembroRepo {
	return &MembroRepo{
		index: make(map[string]int),
		edges: make(map[edge]struct{}),
	}
}

func (mr *MembroRepo) create(m models.Membro) string {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now()
	mr.index[m.ID] = len(mr.membros)
	mr.membros = append(mr.membros, m)
	return m.ID
}

func (mr *MembroRepo) Create(ctx context.Context, m models.Membro) (string, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	return mr.create(m), nil
}

func (mr *MembroRepo) CreateBatch(ctx context.Context, ms []models.Membro) ([]string, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, mr.create(m))
	}
	return ids, nil
}

func (mr *MembroRepo) GetByID(ctx context.Context, id string) (models.Membro, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	i, ok := mr.index[id]
	if !ok {
		return models.Membro{}, myerrors.ErrMembroNotFound
	}
	return mr.membros[i], nil
}

func (mr *MembroRepo) Update(ctx context.Context, m models.Membro) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	i, ok := mr.index[m.ID]
	if !ok {
		return myerrors.ErrMembroNotFound
	}
	m.CreatedAt = mr.membros[i].CreatedAt
	mr.membros[i] = m
	return nil
}

// filtered returns the matching records newest-first.
func (mr *MembroRepo) filtered(f dto.Filter) []models.Membro {
	var out []models.Membro
	for i := len(mr.membros) - 1; i >= 0; i-- {
		if f.Matches(mr.membros[i]) {
			out = append(out, mr.membros[i])
		}
	}
	return out
}

func (mr *MembroRepo) List(ctx context.Context, f dto.Filter, page, perPage int) ([]models.Membro, int64, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	matching := mr.filtered(f)
	total := int64(len(matching))

	start := (page - 1) * perPage
	if start >= len(matching) {
		return nil, total, nil
	}
	end := start + perPage
	if end > len(matching) {
		end = len(matching)
	}
	return append([]models.Membro(nil), matching[start:end]...), total, nil
}

func (mr *MembroRepo) All(ctx context.Context) ([]models.Membro, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return append([]models.Membro(nil), mr.membros...), nil
}

func (mr *MembroRepo) Count(ctx context.Context, f dto.Filter) (int64, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return int64(len(mr.filtered(f))), nil
}

func (mr *MembroRepo) CountValue(ctx context.Context, column, value string, f dto.Filter) (int64, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	var count int64
	for _, m := range mr.filtered(f) {
		if v := m.FieldValue(column); v != nil && *v == value {
			count++
		}
	}
	return count, nil
}

func (mr *MembroRepo) CountBy(ctx context.Context, column string, f dto.Filter, limit int) ([]dto.Bucket, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	counts := make(map[string]int64)
	for _, m := range mr.filtered(f) {
		v := m.FieldValue(column)
		if v == nil || strings.TrimSpace(*v) == "" {
			continue
		}
		counts[*v]++
	}

	buckets := make([]dto.Bucket, 0, len(counts))
	for v, c := range counts {
		buckets = append(buckets, dto.Bucket{Value: v, Count: c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Value < buckets[j].Value
	})

	if len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets, nil
}

func (mr *MembroRepo) AddFriend(ctx context.Context, aID, bID string) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	if _, ok := mr.index[aID]; !ok {
		return myerrors.ErrMembroNotFound
	}
	if _, ok := mr.index[bID]; !ok {
		return myerrors.ErrMembroNotFound
	}
	mr.edges[newEdge(aID, bID)] = struct{}{}
	return nil
}

func (mr *MembroRepo) FriendsOf(ctx context.Context, id string) ([]string, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	friends := []string{}
	for e := range mr.edges {
		switch id {
		case e.a:
			friends = append(friends, e.b)
		case e.b:
			friends = append(friends, e.a)
		}
	}
	sort.Strings(friends)
	return friends, nil
}
