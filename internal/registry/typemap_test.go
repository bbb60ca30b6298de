package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/glbindgen/internal/domain"
)

func TestParseTypeMap(t *testing.T) {
	src := `# comment
unsigned int,uint32

 float , float32
void*,unsafe.Pointer
`
	m, err := ParseTypeMap(strings.NewReader(src), "test.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, m.Len())

	target, ok := m.Lookup("unsigned  int")
	assert.True(t, ok)
	assert.Equal(t, "uint32", target)

	target, ok = m.Lookup("float")
	assert.True(t, ok)
	assert.Equal(t, "float32", target)

	target, ok = m.Lookup("void *")
	assert.True(t, ok)
	assert.Equal(t, "unsafe.Pointer", target)

	assert.True(t, m.IsTarget("uint32"))
	assert.True(t, m.IsTarget("int16"), "go primitives are always targets")
	assert.False(t, m.IsTarget("unsigned int"))
}

func TestParseTypeMap_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"one field", "unsigned int,uint32\nfloat\n", 2},
		{"three fields", "a,b,c\n", 1},
		{"empty target", "\n\nint,\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTypeMap(strings.NewReader(tt.src), "bad.csv")
			require.Error(t, err)

			var formatErr *domain.ConfigFormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.line, formatErr.Line)
			assert.Equal(t, "bad.csv", formatErr.Source)
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestLoadTypeMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.csv")
	require.NoError(t, os.WriteFile(path, []byte("double,float64\n"), 0o600))

	m, err := LoadTypeMap(path)
	require.NoError(t, err)
	target, _ := m.Lookup("double")
	assert.Equal(t, "float64", target)

	_, err = LoadTypeMap(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestDefaultTypeMap(t *testing.T) {
	m := DefaultTypeMap()

	for native, want := range map[string]string{
		"unsigned int":      "uint32",
		"khronos_float_t":   "float32",
		"struct __GLsync *": "unsafe.Pointer",
		"void (*)":          "uintptr",
	} {
		got, ok := m.Lookup(native)
		assert.True(t, ok, native)
		assert.Equal(t, want, got, native)
	}
}
