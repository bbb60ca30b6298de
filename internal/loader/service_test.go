package loader

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/glbindgen/internal/domain"
)

const fixturePath = "../../testing/testdata/registry/minimal_gl.xml"

func TestLoad(t *testing.T) {
	t.Run("loads fixture registry", func(t *testing.T) {
		// Arrange
		service := NewService()

		// Act
		result, err := service.Load(fixturePath)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Len(t, result.Aliases, 11)
		assert.Equal(t, []string{"TextureTarget", "ClearBufferMask", "PathFontStyleNV"}, result.GroupOrder)
		assert.Len(t, result.Enums, 4)
		assert.Len(t, result.Commands, 8)
	})

	t.Run("handles non-existent file", func(t *testing.T) {
		// Arrange
		service := NewService()

		// Act
		_, err := service.Load("/non/existent/gl.xml")

		// Assert
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}

func TestLoadReader_Types(t *testing.T) {
	doc := `<registry><types>
		<type name="stddef">#include &lt;stddef.h&gt;</type>
		<type requires="khrplatform">typedef unsigned int <name>GLenum</name>;</type>
		<type>typedef struct __GLsync *<name>GLsync</name>;</type>
		<type>typedef void (<apientry/> *<name>GLDEBUGPROC</name>)(GLenum source);</type>
		<type api="gles2">typedef   khronos_int8_t   <name>GLbyte</name>;</type>
		<type>#include "no_name.h"</type>
	</types></registry>`

	// Act
	result, err := NewService().LoadReader(strings.NewReader(doc))

	// Assert
	require.NoError(t, err)
	require.Len(t, result.Aliases, 4)

	expected := []domain.TypeAlias{
		{Name: "GLenum", NativeCType: "unsigned int", Requires: "khrplatform"},
		{Name: "GLsync", NativeCType: "struct __GLsync *"},
		{Name: "GLDEBUGPROC", NativeCType: "void (*)"},
		{Name: "GLbyte", NativeCType: "khronos_int8_t", API: "gles2"},
	}
	assert.Equal(t, expected, result.Aliases)
}

func TestLoadReader_Groups(t *testing.T) {
	t.Run("last declaration wins and keeps first position", func(t *testing.T) {
		doc := `<registry><groups>
			<group name="A"><enum name="GL_ONE"/></group>
			<group name=""><enum name="GL_SKIPPED"/></group>
			<group name="B"><enum name="GL_TWO"/></group>
			<group name="A"><enum name="GL_THREE"/><enum name="GL_FOUR"/></group>
		</groups></registry>`

		result, err := NewService().LoadReader(strings.NewReader(doc))

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, result.GroupOrder)
		assert.Equal(t, []string{"GL_THREE", "GL_FOUR"}, result.Groups["A"].Members)

		ordered := result.OrderedGroups()
		require.Len(t, ordered, 2)
		assert.Equal(t, "A", ordered[0].Name)
		assert.Equal(t, "B", ordered[1].Name)
	})
}

func TestLoadReader_Enums(t *testing.T) {
	doc := `<registry>
		<enums namespace="GL" group="ClearBufferMask" type="bitmask">
			<enum value="0x00004000" name="GL_COLOR_BUFFER_BIT"/>
		</enums>
		<enums namespace="GL">
			<enum value="0xFFFFFFFFFFFFFFFF" name="GL_TIMEOUT_IGNORED" type="ull"/>
			<enum value="0x8D65" name="GL_TEXTURE_EXTERNAL_OES" api="gles2"/>
			<enum value="0x1" name="GL_ALIASED" alias="GL_ORIGINAL"/>
		</enums>
		<enums namespace="GL" group="SpecialNumbers">
			<enum value="0" name="GL_ZERO"/>
		</enums>
	</registry>`

	result, err := NewService().LoadReader(strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, result.Enums, 3)

	mask := result.Enums[0]
	assert.True(t, mask.Bitmask)
	assert.False(t, mask.IsFlat(DefaultSpecialGroup))
	assert.Equal(t, "GL_COLOR_BUFFER_BIT", mask.Values[0].Name)

	flat := result.Enums[1]
	assert.True(t, flat.IsFlat(DefaultSpecialGroup))
	assert.Equal(t, domain.EnumValue{Name: "GL_TIMEOUT_IGNORED", Value: "0xFFFFFFFFFFFFFFFF", Type: "ull"}, flat.Values[0])
	assert.Equal(t, "gles2", flat.Values[1].API)
	assert.Equal(t, "GL_ORIGINAL", flat.Values[2].Alias)

	assert.True(t, result.Enums[2].IsFlat(DefaultSpecialGroup))
}

func TestLoadReader_Commands(t *testing.T) {
	t.Run("records return and parameter details", func(t *testing.T) {
		// Arrange
		service := NewService()

		// Act
		result, err := service.Load(fixturePath)

		// Assert
		require.NoError(t, err)

		byName := make(map[string]domain.Command)
		for _, cmd := range result.Commands {
			byName[cmd.Name] = cmd
		}

		bind := byName["glBindTexture"]
		assert.Equal(t, "GL", bind.Namespace)
		assert.Empty(t, bind.ReturnType)
		assert.Zero(t, bind.ReturnPointer)
		require.Len(t, bind.Params, 2)
		assert.Equal(t, domain.Parameter{Type: "GLenum", Group: "TextureTarget", Name: "target"}, bind.Params[0])
		assert.Equal(t, domain.Parameter{Type: "GLuint", Name: "texture"}, bind.Params[1])

		getTarget := byName["glGetTextureTargetEXT"]
		assert.Equal(t, "GLenum", getTarget.ReturnType)
		assert.Equal(t, "TextureTarget", getTarget.ReturnGroup)

		mapBuffer := byName["glMapBuffer"]
		assert.Equal(t, 1, mapBuffer.ReturnPointer)

		pointerv := byName["glGetPointerv"]
		require.Len(t, pointerv.Params, 2)
		assert.Equal(t, domain.Parameter{Name: "params", Pointer: 2, Len: "1"}, pointerv.Params[1])
	})

	t.Run("multiple command blocks keep their namespaces", func(t *testing.T) {
		doc := `<registry>
			<commands namespace="GL"><command><proto>void <name>glFlush</name></proto></command></commands>
			<commands namespace="WGL"><command><proto>void <name>glFlush</name></proto></command></commands>
		</registry>`

		result, err := NewService().LoadReader(strings.NewReader(doc))

		require.NoError(t, err)
		require.Len(t, result.Commands, 2)
		assert.Equal(t, "GL", result.Commands[0].Namespace)
		assert.Equal(t, "WGL", result.Commands[1].Namespace)
	})
}

func TestLoadReader_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		node string
	}{
		{
			name: "empty document",
			doc:  "",
			node: "registry",
		},
		{
			name: "wrong root element",
			doc:  `<library><types/></library>`,
			node: "registry",
		},
		{
			name: "command without proto",
			doc:  `<registry><commands namespace="GL"><command><param><name>x</name></param></command></commands></registry>`,
			node: "command",
		},
		{
			name: "proto without name",
			doc:  `<registry><commands namespace="GL"><command><proto>void</proto></command></commands></registry>`,
			node: "proto",
		},
		{
			name: "param without name",
			doc:  `<registry><commands namespace="GL"><command><proto>void <name>glFlush</name></proto><param><ptype>GLenum</ptype></param></command></commands></registry>`,
			node: "param",
		},
		{
			name: "duplicate command in namespace",
			doc: `<registry><commands namespace="GL">
				<command><proto>void <name>glFlush</name></proto></command>
				<command><proto>void <name>glFlush</name></proto></command>
			</commands></registry>`,
			node: "command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService().LoadReader(strings.NewReader(tt.doc))

			require.Error(t, err)
			var structural *domain.StructuralError
			require.True(t, errors.As(err, &structural), "expected StructuralError, got %v", err)
			assert.Equal(t, tt.node, structural.Node)
		})
	}
}

type recordingDebugger struct {
	lines []string
}

func (r *recordingDebugger) Printf(format string, v ...interface{}) {
	r.lines = append(r.lines, format)
}

func TestWithDebugger(t *testing.T) {
	t.Run("reports load summary", func(t *testing.T) {
		debugger := &recordingDebugger{}
		service := NewService(WithDebugger(debugger))

		_, err := service.Load(fixturePath)

		require.NoError(t, err)
		assert.NotEmpty(t, debugger.lines)
	})

	t.Run("nil debugger keeps the default", func(t *testing.T) {
		service := NewService(WithDebugger(nil))
		assert.NotNil(t, service.debug)
	})
}
