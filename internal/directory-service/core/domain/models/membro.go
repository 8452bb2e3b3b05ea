package models

import (
	"time"
)

// Canonical field labels. These exact strings, accents included, are the
// contract with the spreadsheet exports and the frontend.
const (
	LabelNome                   = "Membro"
	LabelSexo                   = "Sexo"
	LabelConcurso               = "Concurso"
	LabelCargoEfetivo           = "Cargo efetivo"
	LabelTitularidade           = "Titularidade"
	LabelEmailPessoal           = "eMail pessoal"
	LabelCargoEspecial          = "Cargo Especial"
	LabelTelefoneUnidade        = "Telefone Unidade"
	LabelTelefoneCelular        = "Telefone celular"
	LabelUnidadeLotacao         = "Unidade Lotação"
	LabelComarcaLotacao         = "Comarca Lotação"
	LabelTimeExtraprofissionais = "Time de futebol e outros grupos extraprofissionais"
	LabelQuantidadeFilhos       = "Quantidade de filhos"
	LabelNomesFilhos            = "Nome dos filhos"
	LabelEstadoOrigem           = "Estado de origem"
	LabelAcademico              = "Acadêmico"
	LabelPretensaoCarreira      = "Pretensão de movimentação na carreira"
	LabelCarreiraAnterior       = "Carreira anterior"
	LabelLideranca              = "Liderança"
	LabelGruposIdentitarios     = "Grupos identitários"
	LabelAmigos                 = "Amigos no MP (IDs)"
)

// Sex value used by the roster statistics.
const SexoFeminino = "Feminino"

type Membro struct {
	ID                     string    `json:"id"`
	CreatedAt              time.Time `json:"created_at"`
	Nome                   string    `json:"nome"`
	Sexo                   *string   `json:"sexo"`
	Concurso               *string   `json:"concurso"`
	CargoEfetivo           *string   `json:"cargo_efetivo"`
	Titularidade           *string   `json:"titularidade"`
	EmailPessoal           *string   `json:"email_pessoal"`
	CargoEspecial          *string   `json:"cargo_especial"`
	TelefoneUnidade        *string   `json:"telefone_unidade"`
	TelefoneCelular        *string   `json:"telefone_celular"`
	UnidadeLotacao         *string   `json:"unidade_lotacao"`
	ComarcaLotacao         *string   `json:"comarca_lotacao"`
	TimeExtraprofissionais *string   `json:"time_extraprofissionais"`
	QuantidadeFilhos       *int      `json:"quantidade_filhos"`
	NomesFilhos            *string   `json:"nomes_filhos"`
	EstadoOrigem           *string   `json:"estado_origem"`
	Academico              *string   `json:"academico"`
	PretensaoCarreira      *string   `json:"pretensao_carreira"`
	CarreiraAnterior       *string   `json:"carreira_anterior"`
	Lideranca              *string   `json:"lideranca"`
	GruposIdentitarios     *string   `json:"grupos_identitarios"`
}

// Data builds the row projection keyed by the canonical labels.
func (m Membro) Data(friendIDs []string) map[string]any {
	if friendIDs == nil {
		friendIDs = []string{}
	}
	return map[string]any{
		LabelNome:                   m.Nome,
		LabelSexo:                   m.Sexo,
		LabelConcurso:               m.Concurso,
		LabelCargoEfetivo:           m.CargoEfetivo,
		LabelTitularidade:           m.Titularidade,
		LabelEmailPessoal:           m.EmailPessoal,
		LabelCargoEspecial:          m.CargoEspecial,
		LabelTelefoneUnidade:        m.TelefoneUnidade,
		LabelTelefoneCelular:        m.TelefoneCelular,
		LabelUnidadeLotacao:         m.UnidadeLotacao,
		LabelComarcaLotacao:         m.ComarcaLotacao,
		LabelTimeExtraprofissionais: m.TimeExtraprofissionais,
		LabelQuantidadeFilhos:       m.QuantidadeFilhos,
		LabelNomesFilhos:            m.NomesFilhos,
		LabelEstadoOrigem:           m.EstadoOrigem,
		LabelAcademico:              m.Academico,
		LabelPretensaoCarreira:      m.PretensaoCarreira,
		LabelCarreiraAnterior:       m.CarreiraAnterior,
		LabelLideranca:              m.Lideranca,
		LabelGruposIdentitarios:     m.GruposIdentitarios,
		LabelAmigos:                 friendIDs,
	}
}

// ApplyData overwrites fields from a label-keyed payload with coalesce
// semantics: an absent or blank value keeps whatever is already stored.
func (m *Membro) ApplyData(data map[string]any) {
	if v := firstString(data, LabelNome, "Nome"); v != "" {
		m.Nome = v
	}
	coalesce(&m.Sexo, data, LabelSexo)
	coalesce(&m.Concurso, data, LabelConcurso)
	coalesce(&m.CargoEfetivo, data, LabelCargoEfetivo)
	coalesce(&m.Titularidade, data, LabelTitularidade)
	coalesce(&m.EmailPessoal, data, LabelEmailPessoal)
	coalesce(&m.CargoEspecial, data, LabelCargoEspecial)
	coalesce(&m.TelefoneUnidade, data, LabelTelefoneUnidade)
	coalesce(&m.TelefoneCelular, data, LabelTelefoneCelular)
	coalesce(&m.UnidadeLotacao, data, LabelUnidadeLotacao)
	coalesce(&m.ComarcaLotacao, data, LabelComarcaLotacao)
	coalesce(&m.TimeExtraprofissionais, data, LabelTimeExtraprofissionais)
	if v := firstString(data, LabelQuantidadeFilhos); v != "" {
		if n, ok := ParseCount(v); ok {
			m.QuantidadeFilhos = n
		}
	}
	coalesce(&m.NomesFilhos, data, LabelNomesFilhos)
	if v := firstString(data, LabelEstadoOrigem); v != "" {
		m.EstadoOrigem = TruncateUF(v)
	}
	coalesce(&m.Academico, data, LabelAcademico)
	coalesce(&m.PretensaoCarreira, data, LabelPretensaoCarreira)
	coalesce(&m.CarreiraAnterior, data, LabelCarreiraAnterior)
	coalesce(&m.Lideranca, data, LabelLideranca)
	coalesce(&m.GruposIdentitarios, data, LabelGruposIdentitarios)
}

// MembroFromData builds a new Membro from a label-keyed payload.
func MembroFromData(data map[string]any) Membro {
	var m Membro
	m.ApplyData(data)
	return m
}

// FieldValue resolves an aggregable column to its value on this record.
// Unknown columns resolve to nil.
func (m Membro) FieldValue(column string) *string {
	switch column {
	case "comarca_lotacao":
		return m.ComarcaLotacao
	case "cargo_efetivo":
		return m.CargoEfetivo
	case "sexo":
		return m.Sexo
	}
	return nil
}

func coalesce(dst **string, data map[string]any, label string) {
	if v := firstString(data, label); v != "" {
		*dst = &v
	}
}

func firstString(data map[string]any, labels ...string) string {
	for _, l := range labels {
		if v, ok := data[l]; ok {
			if s := AsString(v); s != "" {
				return s
			}
		}
	}
	return ""
}
