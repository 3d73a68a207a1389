package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidae/rook/shell"
)

func TestDigestEnv(t *testing.T) {
	t.Parallel()

	t.Run("scalars stringify", func(t *testing.T) {
		t.Parallel()

		flat := shell.DigestEnv(shell.EnvMap{
			"NAME":  "Lain",
			"PORT":  8080,
			"DEBUG": true,
			"RAW":   []byte("bytes"),
		})

		assert.Equal(t, map[string]string{
			"NAME":  "Lain",
			"PORT":  "8080",
			"DEBUG": "true",
			"RAW":   "bytes",
		}, flat)
	})

	t.Run("slices join with quoting", func(t *testing.T) {
		t.Parallel()

		flat := shell.DigestEnv(shell.EnvMap{
			"FLAGS": []string{"-a", "two words", "plain"},
		})

		assert.Equal(t, "-a 'two words' plain", flat["FLAGS"])
	})

	t.Run("mixed element types", func(t *testing.T) {
		t.Parallel()

		flat := shell.DigestEnv(shell.EnvMap{
			"ARGS": []any{1, "x y"},
		})

		assert.Equal(t, "1 'x y'", flat["ARGS"])
	})
}

func TestDigestParams(t *testing.T) {
	t.Parallel()

	flat := shell.DigestParams(shell.EnvMap{
		"files": []string{"a.txt", "b.txt"},
		"count": 2,
	})

	assert.Equal(t, "a.txt b.txt", flat["files"])
	assert.Equal(t, "2", flat["count"])
}

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "''"},
		{"plain word", "hello", "hello"},
		{"spaces", "two words", "'two words'"},
		{"single quote", "it's", `'it'"'"'s'`},
		{"dollar", "$HOME", "'$HOME'"},
		{"glob", "*.go", "'*.go'"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, shell.Quote(tt.in))
		})
	}
}
