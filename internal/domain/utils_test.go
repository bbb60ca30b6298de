package domain

import (
	"testing"
)

func TestIsGolangPrimitiveType(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		want     bool
	}{
		{"uint32", "uint32", true},
		{"float64", "float64", true},
		{"bool", "bool", true},
		{"opaque pointer", "unsafe.Pointer", true},
		{"uintptr", "uintptr", true},

		{"native C type", "unsigned int", false},
		{"registry alias", "GLuint", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGolangPrimitiveType(tt.typeName); got != tt.want {
				t.Errorf("IsGolangPrimitiveType(%q) = %v, want %v", tt.typeName, got, tt.want)
			}
		})
	}
}

func TestIsGoKeyword(t *testing.T) {
	for _, name := range []string{"type", "func", "range", "map", "string"} {
		want := name != "string"
		if got := IsGoKeyword(name); got != want {
			t.Errorf("IsGoKeyword(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNormalizeLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0x0DE1", "0x0DE1"},
		{"0xFFFFFFFFu", "0xFFFFFFFF"},
		{"0xFFFFFFFFFFFFFFFFull", "0xFFFFFFFFFFFFFFFF"},
		{"1", "1"},
		{"-1", "-1"},
		{" 4 ", "4"},
	}

	for _, tt := range tests {
		if got := NormalizeLiteral(tt.in); got != tt.want {
			t.Errorf("NormalizeLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConstantType(t *testing.T) {
	tests := []struct {
		hint    string
		literal string
		want    string
	}{
		{"", "0x0DE1", UINT32},
		{"u", "0xFFFFFFFFu", UINT32},
		{"ull", "0xFFFFFFFFFFFFFFFFull", UINT64},
		{"", "-1", INT32},
	}

	for _, tt := range tests {
		if got := ConstantType(tt.hint, tt.literal); got != tt.want {
			t.Errorf("ConstantType(%q, %q) = %q, want %q", tt.hint, tt.literal, got, tt.want)
		}
	}
}

func TestTypeRef_Qualified(t *testing.T) {
	tests := []struct {
		name string
		ref  TypeRef
		want string
	}{
		{"void", TypeRef{Kind: KindVoid}, ""},
		{"native", TypeRef{Kind: KindNative, Name: "uint32", Original: "GLuint"}, "uint32"},
		{"base group", TypeRef{Kind: KindGroup, Name: "TextureTarget"}, "TextureTarget"},
		{"vendor group", TypeRef{Kind: KindGroup, Name: "PathFillMode", Suffix: "NV"}, "NV.PathFillMode"},
		{"unresolved", TypeRef{Kind: KindUnresolved, Original: "GLsync"}, "UNRESOLVED_GLsync"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.Qualified(); got != tt.want {
				t.Errorf("Qualified() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFunction_Binding(t *testing.T) {
	base := Function{Name: "BindTexture", Native: "glBindTexture"}
	if got := base.Binding("GL"); got != "GL.BindTexture" {
		t.Errorf("Binding() = %q", got)
	}

	vendor := Function{Name: "BindTexture", Native: "glBindTextureEXT", Suffix: "EXT"}
	if got := vendor.Binding("GL"); got != "GL.EXT.BindTexture" {
		t.Errorf("Binding() = %q", got)
	}
}
