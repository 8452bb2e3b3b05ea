package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Comarca Lotação", "comarcalotacao"},
		{"comarca lotacao", "comarcalotacao"},
		{"  Acadêmico  ", "academico"},
		{"eMail pessoal", "emailpessoal"},
		{"Liderança", "lideranca"},
		{"Grupos identitários", "gruposidentitarios"},
		{"MARIA SILVA", "mariasilva"},
		{"Concurso 2001", "concurso2001"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestTruncateUF(t *testing.T) {
	assert.Nil(t, TruncateUF(""))
	assert.Nil(t, TruncateUF("   "))
	assert.Equal(t, "MG", *TruncateUF("MG"))
	assert.Equal(t, "MG", *TruncateUF(" MG "))
	assert.Equal(t, "Mi", *TruncateUF("Minas Gerais"))
	// truncation counts runes, not bytes
	assert.Equal(t, "çã", *TruncateUF("çãx"))
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want *int
		ok   bool
	}{
		{"2", intp(2), true},
		{"2.0", intp(2), true},
		{"2,0", intp(2), true},
		{"3.7", intp(3), true},
		{"0", intp(0), true},
		{"", nil, true},
		{"dois", nil, false},
		{"-1", nil, false},
	}
	for _, tt := range tests {
		got, ok := ParseCount(tt.in)
		require.Equal(t, tt.ok, ok, "ParseCount(%q)", tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "ParseCount(%q)", tt.in)
		} else {
			require.NotNil(t, got, "ParseCount(%q)", tt.in)
			assert.Equal(t, *tt.want, *got, "ParseCount(%q)", tt.in)
		}
	}
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "texto", AsString("  texto  "))
	// JSON numbers arrive as float64; integral values lose the ".0"
	assert.Equal(t, "2", AsString(float64(2)))
	assert.Equal(t, "2.5", AsString(2.5))
	assert.Equal(t, "7", AsString(7))
}

func intp(n int) *int { return &n }
