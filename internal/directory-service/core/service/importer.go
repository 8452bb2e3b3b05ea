package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"membro-hub/internal/directory-service/core/domain/models"
	"membro-hub/internal/directory-service/core/ports/driven"
	"membro-hub/internal/mylogger"
)

// headerAliases maps import fields to the header spellings seen in the
// spreadsheet exports. Matching is accent- and case-insensitive, so
// "Academico" and "Acadêmico" resolve to the same column.
var headerAliases = map[string][]string{
	"nome":                    {"Membro", "Nome"},
	"sexo":                    {"Sexo"},
	"concurso":                {"Concurso"},
	"cargo_efetivo":           {"Cargo efetivo"},
	"titularidade":            {"Titularidade"},
	"email_pessoal":           {"eMail pessoal", "Email pessoal", "Email", "E-mail"},
	"cargo_especial":          {"Cargo Especial"},
	"telefone_unidade":        {"Telefone Unidade", "Telefone da Unidade", "Telefone (Unidade)"},
	"telefone_celular":        {"Telefone celular", "Celular"},
	"unidade_lotacao":         {"Unidade Lotação", "Unidade de Lotação"},
	"comarca_lotacao":         {"Comarca Lotação", "Comarca de Lotação", "Comarca"},
	"time_extraprofissionais": {"Time de futebol e outros grupos extraprofissionais", "Grupos extraprofissionais", "Time de futebol"},
	"quantidade_filhos":       {"Quantidade de filhos", "Qtde de filhos", "Qtd filhos"},
	"nomes_filhos":            {"Nome dos filhos", "Nomes dos filhos"},
	"estado_origem":           {"Estado de origem", "UF de origem", "Estado origem"},
	"academico":               {"Acadêmico"},
	"pretensao_carreira":      {"Pretensão de movimentação na carreira", "Pretensão de carreira"},
	"carreira_anterior":       {"Carreira anterior"},
	"lideranca":               {"Liderança"},
	"grupos_identitarios":     {"Grupos identitários"},
	"amigos":                  {"Amigos no MP", "Amigos no MP (IDs)", "Amigos no MP (Nomes)", "Amigos MP"},
}

var friendSeparators = regexp.MustCompile(`[\n,;]+`)

type Importer struct {
	membroRepo driven.IMembroRepo
	mylog      mylogger.Logger
}

func NewImporter(membroRepo driven.IMembroRepo, mylog mylogger.Logger) *Importer {
	return &Importer{
		membroRepo: membroRepo,
		mylog:      mylog,
	}
}

// buildHeaderMap resolves each import field to a column index. Exact
// normalized matches win over partial ones; unresolved fields stay at -1 and
// yield null values, never an error.
func buildHeaderMap(headers []string) map[string]int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = models.Normalize(h)
	}

	idx := make(map[string]int, len(headerAliases))
	for field, aliases := range headerAliases {
		idx[field] = -1
		for _, alias := range aliases {
			n := models.Normalize(alias)
			for col, h := range normalized {
				if h == n {
					idx[field] = col
					break
				}
			}
			if idx[field] >= 0 {
				break
			}
		}
		if idx[field] >= 0 {
			continue
		}
		// fall back to partial matches either way around
		for _, alias := range aliases {
			n := models.Normalize(alias)
			for col, h := range normalized {
				if h != "" && n != "" && (strings.Contains(h, n) || strings.Contains(n, h)) {
					idx[field] = col
					break
				}
			}
			if idx[field] >= 0 {
				break
			}
		}
	}
	return idx
}

// Run reads the whole source, builds the member batch, commits it in one
// write and wires acquaintance edges in a second pass. Returns the number of
// imported rows.
func (im *Importer) Run(ctx context.Context, src driven.ITabularSource) (int, error) {
	mylog := im.mylog.Action("ImportMembros")

	headers, rows, err := src.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot read source: %w", err)
	}
	idx := buildHeaderMap(headers)

	cell := func(row []string, field string) string {
		col := idx[field]
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var batch []models.Membro
	var friendCells []string
	for _, row := range rows {
		nome := cell(row, "nome")
		if nome == "" {
			continue
		}

		m := models.Membro{
			Nome:                   nome,
			Sexo:                   models.Optional(cell(row, "sexo")),
			Concurso:               models.Optional(cell(row, "concurso")),
			CargoEfetivo:           models.Optional(cell(row, "cargo_efetivo")),
			Titularidade:           models.Optional(cell(row, "titularidade")),
			EmailPessoal:           models.Optional(cell(row, "email_pessoal")),
			CargoEspecial:          models.Optional(cell(row, "cargo_especial")),
			TelefoneUnidade:        models.Optional(cell(row, "telefone_unidade")),
			TelefoneCelular:        models.Optional(cell(row, "telefone_celular")),
			UnidadeLotacao:         models.Optional(cell(row, "unidade_lotacao")),
			ComarcaLotacao:         models.Optional(cell(row, "comarca_lotacao")),
			TimeExtraprofissionais: models.Optional(cell(row, "time_extraprofissionais")),
			NomesFilhos:            models.Optional(cell(row, "nomes_filhos")),
			EstadoOrigem:           models.TruncateUF(cell(row, "estado_origem")),
			Academico:              models.Optional(cell(row, "academico")),
			PretensaoCarreira:      models.Optional(cell(row, "pretensao_carreira")),
			CarreiraAnterior:       models.Optional(cell(row, "carreira_anterior")),
			Lideranca:              models.Optional(cell(row, "lideranca")),
			GruposIdentitarios:     models.Optional(cell(row, "grupos_identitarios")),
		}
		if v := cell(row, "quantidade_filhos"); v != "" {
			n, ok := models.ParseCount(v)
			if ok {
				m.QuantidadeFilhos = n
			} else {
				// unparsable count nulls the field, the row survives
				mylog.Warn("unparsable children count, field nulled", "nome", nome, "value", v)
			}
		}

		batch = append(batch, m)
		friendCells = append(friendCells, cell(row, "amigos"))
	}

	if len(batch) == 0 {
		mylog.Warn("nothing to import")
		return 0, nil
	}

	ids, err := im.membroRepo.CreateBatch(ctx, batch)
	if err != nil {
		mylog.Error("failed to commit import batch", err)
		return 0, fmt.Errorf("cannot commit batch: %w", err)
	}

	if err := im.wireFriends(ctx, ids, friendCells); err != nil {
		mylog.Error("failed to wire friendships", err)
		return 0, fmt.Errorf("cannot wire friendships: %w", err)
	}

	mylog.Info("import finished", "rows", len(ids))
	return len(ids), nil
}

// wireFriends resolves the optional friends column in a second pass, once
// every row has an id. Tokens are matched as exact ids first, then as
// accent-normalized names over the whole roster.
func (im *Importer) wireFriends(ctx context.Context, ids []string, friendCells []string) error {
	all, err := im.membroRepo.All(ctx)
	if err != nil {
		return err
	}
	knownIDs := make(map[string]bool, len(all))
	nameToID := make(map[string]string, len(all))
	for _, m := range all {
		knownIDs[m.ID] = true
		if key := models.Normalize(m.Nome); key != "" {
			nameToID[key] = m.ID
		}
	}

	for i, raw := range friendCells {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		ownerID := ids[i]

		for _, token := range friendSeparators.Split(raw, -1) {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			friendID := ""
			if knownIDs[token] {
				friendID = token
			} else if id, ok := nameToID[models.Normalize(token)]; ok {
				friendID = id
			}
			if friendID == "" || friendID == ownerID {
				continue
			}
			if err := im.membroRepo.AddFriend(ctx, ownerID, friendID); err != nil {
				return err
			}
		}
	}
	return nil
}
