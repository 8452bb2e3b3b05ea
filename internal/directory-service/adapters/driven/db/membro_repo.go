package db

import (
	"context"
	"errors"
	"fmt"

	"membro-hub/internal/directory-service/core/domain/dto"
	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

type MembroRepo struct {
	db *DB
}

func NewMembroRepo(db *DB) *MembroRepo {
	return &MembroRepo{
		db: db,
	}
}

// groupColumns guards the identifiers interpolated into group-by queries.
// The service validates against its allow-list first; this is the last line.
var groupColumns = map[string]bool{
	"comarca_lotacao": true,
	"cargo_efetivo":   true,
	"sexo":            true,
}

// filterClause matches the free-text query against name, comarca and
// effective role; $1 is always the (possibly empty) query string.
const filterClause = `($1 = ''
	OR nome ILIKE '%' || $1 || '%'
	OR comarca_lotacao ILIKE '%' || $1 || '%'
	OR cargo_efetivo ILIKE '%' || $1 || '%')`

const membroColumns = `
	m.id,
	m.created_at,
	m.nome,
	m.sexo,
	m.concurso,
	m.cargo_efetivo,
	m.titularidade,
	m.email_pessoal,
	m.cargo_especial,
	m.telefone_unidade,
	m.telefone_celular,
	m.unidade_lotacao,
	m.comarca_lotacao,
	m.time_extraprofissionais,
	m.quantidade_filhos,
	m.nomes_filhos,
	m.estado_origem,
	m.academico,
	m.pretensao_carreira,
	m.carreira_anterior,
	m.lideranca,
	m.grupos_identitarios
`

func scanMembro(row pgx.Row) (models.Membro, error) {
	var m models.Membro
	err := row.Scan(
		&m.ID,
		&m.CreatedAt,
		&m.Nome,
		&m.Sexo,
		&m.Concurso,
		&m.CargoEfetivo,
		&m.Titularidade,
		&m.EmailPessoal,
		&m.CargoEspecial,
		&m.TelefoneUnidade,
		&m.TelefoneCelular,
		&m.UnidadeLotacao,
		&m.ComarcaLotacao,
		&m.TimeExtraprofissionais,
		&m.QuantidadeFilhos,
		&m.NomesFilhos,
		&m.EstadoOrigem,
		&m.Academico,
		&m.PretensaoCarreira,
		&m.CarreiraAnterior,
		&m.Lideranca,
		&m.GruposIdentitarios,
	)
	return m, err
}

const insertMembro = `
	INSERT INTO membros (
		nome, sexo, concurso, cargo_efetivo, titularidade, email_pessoal,
		cargo_especial, telefone_unidade, telefone_celular, unidade_lotacao,
		comarca_lotacao, time_extraprofissionais, quantidade_filhos,
		nomes_filhos, estado_origem, academico, pretensao_carreira,
		carreira_anterior, lideranca, grupos_identitarios
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
	) RETURNING id`

func membroArgs(m models.Membro) []any {
	return []any{
		m.Nome,
		m.Sexo,
		m.Concurso,
		m.CargoEfetivo,
		m.Titularidade,
		m.EmailPessoal,
		m.CargoEspecial,
		m.TelefoneUnidade,
		m.TelefoneCelular,
		m.UnidadeLotacao,
		m.ComarcaLotacao,
		m.TimeExtraprofissionais,
		m.QuantidadeFilhos,
		m.NomesFilhos,
		m.EstadoOrigem,
		m.Academico,
		m.PretensaoCarreira,
		m.CarreiraAnterior,
		m.Lideranca,
		m.GruposIdentitarios,
	}
}

func (mr *MembroRepo) Create(ctx context.Context, m models.Membro) (string, error) {
	id := ""
	row := mr.db.pool.QueryRow(ctx, insertMembro, membroArgs(m)...)
	if err := row.Scan(&id); err != nil {
		return "", fmt.Errorf("failed to insert membro: %w", err)
	}
	return id, nil
}

// CreateBatch inserts every row in a single transaction, so a reader sees
// either the whole import or none of it.
func (mr *MembroRepo) CreateBatch(ctx context.Context, ms []models.Membro) ([]string, error) {
	tx, err := mr.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Safe rollback if not committed

	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		id := ""
		if err := tx.QueryRow(ctx, insertMembro, membroArgs(m)...).Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to insert membro: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return ids, nil
}

func (mr *MembroRepo) GetByID(ctx context.Context, id string) (models.Membro, error) {
	q := `SELECT ` + membroColumns + ` FROM membros m WHERE m.id = $1`

	m, err := scanMembro(mr.db.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Membro{}, myerrors.ErrMembroNotFound
		}
		return models.Membro{}, err
	}
	return m, nil
}

func (mr *MembroRepo) Update(ctx context.Context, m models.Membro) error {
	q := `
		UPDATE membros SET
			nome = $2,
			sexo = $3,
			concurso = $4,
			cargo_efetivo = $5,
			titularidade = $6,
			email_pessoal = $7,
			cargo_especial = $8,
			telefone_unidade = $9,
			telefone_celular = $10,
			unidade_lotacao = $11,
			comarca_lotacao = $12,
			time_extraprofissionais = $13,
			quantidade_filhos = $14,
			nomes_filhos = $15,
			estado_origem = $16,
			academico = $17,
			pretensao_carreira = $18,
			carreira_anterior = $19,
			lideranca = $20,
			grupos_identitarios = $21
		WHERE id = $1
	`

	args := append([]any{m.ID}, membroArgs(m)...)
	tag, err := mr.db.pool.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("failed to update membro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrMembroNotFound
	}
	return nil
}

func (mr *MembroRepo) List(ctx context.Context, f dto.Filter, page, perPage int) ([]models.Membro, int64, error) {
	var total int64
	countQ := `SELECT COUNT(*) FROM membros m WHERE ` + filterClause
	if err := mr.db.pool.QueryRow(ctx, countQ, f.Q).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count membros: %w", err)
	}

	q := `SELECT ` + membroColumns + `
		FROM membros m
		WHERE ` + filterClause + `
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := mr.db.pool.Query(ctx, q, f.Q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list membros: %w", err)
	}
	defer rows.Close()

	var membros []models.Membro
	for rows.Next() {
		m, err := scanMembro(rows)
		if err != nil {
			return nil, 0, err
		}
		membros = append(membros, m)
	}
	return membros, total, rows.Err()
}

func (mr *MembroRepo) All(ctx context.Context) ([]models.Membro, error) {
	q := `SELECT ` + membroColumns + ` FROM membros m ORDER BY m.created_at, m.id`

	rows, err := mr.db.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load membros: %w", err)
	}
	defer rows.Close()

	var membros []models.Membro
	for rows.Next() {
		m, err := scanMembro(rows)
		if err != nil {
			return nil, err
		}
		membros = append(membros, m)
	}
	return membros, rows.Err()
}

func (mr *MembroRepo) Count(ctx context.Context, f dto.Filter) (int64, error) {
	q := `SELECT COUNT(*) FROM membros m WHERE ` + filterClause

	var count int64
	if err := mr.db.pool.QueryRow(ctx, q, f.Q).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count membros: %w", err)
	}
	return count, nil
}

func (mr *MembroRepo) CountValue(ctx context.Context, column, value string, f dto.Filter) (int64, error) {
	if !groupColumns[column] {
		return 0, fmt.Errorf("column not allowed: %s", column)
	}
	q := `SELECT COUNT(*) FROM membros m WHERE ` + filterClause +
		fmt.Sprintf(` AND m.%s = $2`, column)

	var count int64
	if err := mr.db.pool.QueryRow(ctx, q, f.Q, value).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count membros: %w", err)
	}
	return count, nil
}

func (mr *MembroRepo) CountBy(ctx context.Context, column string, f dto.Filter, limit int) ([]dto.Bucket, error) {
	if !groupColumns[column] {
		return nil, fmt.Errorf("column not allowed: %s", column)
	}
	q := fmt.Sprintf(`
		SELECT m.%[1]s AS v, COUNT(*) AS c
		FROM membros m
		WHERE %[2]s
			AND m.%[1]s IS NOT NULL AND btrim(m.%[1]s) <> ''
		GROUP BY v
		ORDER BY c DESC, v
		LIMIT $2`, column, filterClause)

	rows, err := mr.db.pool.Query(ctx, q, f.Q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate membros: %w", err)
	}
	defer rows.Close()

	buckets := []dto.Bucket{}
	for rows.Next() {
		var b dto.Bucket
		if err := rows.Scan(&b.Value, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// AddFriend stores the edge with the smaller uuid first; re-inserting the
// same pair from either side is a no-op.
func (mr *MembroRepo) AddFriend(ctx context.Context, aID, bID string) error {
	q := `
		INSERT INTO membro_amigos (membro_id, amigo_id)
		VALUES (LEAST($1::uuid, $2::uuid), GREATEST($1::uuid, $2::uuid))
		ON CONFLICT DO NOTHING
	`
	if _, err := mr.db.pool.Exec(ctx, q, aID, bID); err != nil {
		return fmt.Errorf("failed to add friendship: %w", err)
	}
	return nil
}

func (mr *MembroRepo) FriendsOf(ctx context.Context, id string) ([]string, error) {
	q := `
		SELECT amigo_id FROM membro_amigos WHERE membro_id = $1
		UNION
		SELECT membro_id FROM membro_amigos WHERE amigo_id = $1
		ORDER BY 1
	`

	rows, err := mr.db.pool.Query(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	defer rows.Close()

	friends := []string{}
	for rows.Next() {
		var fid string
		if err := rows.Scan(&fid); err != nil {
			return nil, err
		}
		friends = append(friends, fid)
	}
	return friends, rows.Err()
}
