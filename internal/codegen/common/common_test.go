package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	idt := NewIndent("\t")
	assert.Equal(t, "", idt.String())
	assert.Equal(t, "\t\t", idt.In().In().String())
	assert.Equal(t, "", idt.Out().String(), "level never goes below zero")

	assert.Equal(t, "    ", NewIndent("  ").Add(2).String())
}

func TestMemberName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"uri", "uri"},
		{"default", "default_"},
		{"delete", "delete_"},
		{"register", "register_"},
		{"textDocument", "textDocument"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MemberName(tt.in), tt.in)
	}
}

func TestSanitizeLeadingDigit(t *testing.T) {
	assert.Equal(t, "Num1", SanitizeLeadingDigit("1"))
	assert.Equal(t, "Text", SanitizeLeadingDigit("Text"))
	assert.Equal(t, "", SanitizeLeadingDigit(""))
}

func TestCppString(t *testing.T) {
	assert.Equal(t, `"plain"`, CppString("plain"))
	assert.Equal(t, `"a\"b\\c"`, CppString(`a"b\c`))
	assert.Equal(t, `"line\nnext\ttab"`, CppString("line\nnext\ttab"))
	assert.Equal(t, `"bell\007"`, CppString("bell\a"))
}

func TestVersion(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v1.2.3-dirty"
	v, err := GetVersion()
	assert.NoError(t, err)
	assert.Equal(t, "1.2.3-dirty", v)

	Version = ""
	v, err = GetVersion()
	assert.NoError(t, err)
	assert.NotContains(t, v, "dirty", "no VCS revision without ldflags")

	Version = "nodots"
	_, err = GetVersion()
	assert.Error(t, err)

	assert.Equal(t, "// Code generated by lspgen 1.0.0. DO NOT EDIT.\n", FileHeader("//", "1.0.0"))
}

func TestModuleVersion(t *testing.T) {
	assert.Equal(t, "0.0.1-dev", moduleVersion("(devel)"))
	assert.Equal(t, "0.0.1-dev", moduleVersion("unknown"))
	assert.Equal(t, "0.0.1-dev", moduleVersion(""))
	assert.Equal(t, "1.4.0", moduleVersion("v1.4.0"))
}
