package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestDataProjection(t *testing.T) {
	m := Membro{
		ID:             "id-1",
		Nome:           "MARIA SILVA",
		Sexo:           strp("Feminino"),
		ComarcaLotacao: strp("UBERABA"),
	}

	data := m.Data([]string{"id-2"})

	assert.Equal(t, "MARIA SILVA", data[LabelNome])
	assert.Equal(t, "Feminino", *data[LabelSexo].(*string))
	assert.Equal(t, []string{"id-2"}, data[LabelAmigos])
	// nil friend list still projects as an empty slice
	assert.Equal(t, []string{}, Membro{}.Data(nil)[LabelAmigos])

	// every canonical label is present, absent fields as nils
	for _, label := range []string{LabelConcurso, LabelTitularidade, LabelEstadoOrigem, LabelQuantidadeFilhos} {
		v, ok := data[label]
		require.True(t, ok, "label %q missing", label)
		assert.Nil(t, v)
	}
}

func TestApplyDataCoalesces(t *testing.T) {
	m := Membro{
		Nome:           "MARIA SILVA",
		Sexo:           strp("Feminino"),
		ComarcaLotacao: strp("UBERABA"),
	}

	m.ApplyData(map[string]any{
		LabelComarcaLotacao:   "CONTAGEM",
		LabelSexo:             "",
		LabelQuantidadeFilhos: 2.0,
		LabelEstadoOrigem:     "Minas Gerais",
	})

	assert.Equal(t, "MARIA SILVA", m.Nome)
	// blank values keep the stored field
	assert.Equal(t, "Feminino", *m.Sexo)
	assert.Equal(t, "CONTAGEM", *m.ComarcaLotacao)
	assert.Equal(t, 2, *m.QuantidadeFilhos)
	assert.Equal(t, "Mi", *m.EstadoOrigem)
}

func TestMembroFromDataAcceptsBothNameKeys(t *testing.T) {
	assert.Equal(t, "MARIA SILVA", MembroFromData(map[string]any{"Membro": "MARIA SILVA"}).Nome)
	assert.Equal(t, "MARIA SILVA", MembroFromData(map[string]any{"Nome": "MARIA SILVA"}).Nome)
}

func TestFieldValue(t *testing.T) {
	m := Membro{
		ComarcaLotacao: strp("UBERABA"),
		CargoEfetivo:   strp("Promotora"),
		Sexo:           strp("Feminino"),
	}

	assert.Equal(t, "UBERABA", *m.FieldValue("comarca_lotacao"))
	assert.Equal(t, "Promotora", *m.FieldValue("cargo_efetivo"))
	assert.Equal(t, "Feminino", *m.FieldValue("sexo"))
	assert.Nil(t, m.FieldValue("nome"))
	assert.Nil(t, m.FieldValue("anything-else"))
}
