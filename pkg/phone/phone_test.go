package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer("RU")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "local with 8", input: "8 916 123-45-67", want: "+79161234567"},
		{name: "already e164", input: "+79161234567", want: "+79161234567"},
		{name: "with parens", input: "+7 (916) 123 45 67", want: "+79161234567"},
		{name: "foreign e164", input: "+4915223433333", want: "+4915223433333"},
		{name: "garbage", input: "not a phone", wantErr: true},
		{name: "too short", input: "123", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_DedupKeyStable(t *testing.T) {
	n := NewNormalizer("RU")

	// Разные написания одного номера дают один ключ дедупликации
	a, err := n.Normalize("89161234567")
	require.NoError(t, err)
	b, err := n.Normalize("+7 916 123-45-67")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
