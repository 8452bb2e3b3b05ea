package dto

import (
	"testing"

	"membro-hub/internal/directory-service/core/domain/models"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func TestParseFilter(t *testing.T) {
	f := ParseFilter("  vanessa  ", `{"Comarca Lotação":["CONTAGEM","UBERABA"]}`)
	assert.Equal(t, "vanessa", f.Q)
	assert.Equal(t, []string{"CONTAGEM", "UBERABA"}, f.Fields["Comarca Lotação"])

	// malformed structured filters are dropped, not rejected
	f = ParseFilter("vanessa", `{"broken`)
	assert.Equal(t, "vanessa", f.Q)
	assert.Nil(t, f.Fields)

	f = ParseFilter("", "")
	assert.Empty(t, f.Q)
	assert.Nil(t, f.Fields)
}

func TestFilterMatches(t *testing.T) {
	m := models.Membro{
		Nome:           "VANESSA CAMPOLINA REBELLO HORTA",
		ComarcaLotacao: strp("CONTAGEM"),
		CargoEfetivo:   strp("Promotora"),
	}

	tests := []struct {
		q    string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"vanessa", true},
		{"CAMPOLINA", true},
		{"contagem", true},
		{"promot", true},
		{"belo horizonte", false},
		{"zzz", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filter{Q: tt.q}.Matches(m), "q=%q", tt.q)
	}

	// nil optional fields never panic
	assert.False(t, Filter{Q: "contagem"}.Matches(models.Membro{Nome: "X"}))
}
