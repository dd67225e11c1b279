//go:build !windows

package envq

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplateOS(t *testing.T) {
	t.Run("no references comes back unchanged", func(t *testing.T) {
		got, err := ExpandTemplate("plain text, no references")
		require.NoError(t, err)
		assert.Equal(t, "plain text, no references", got)
	})

	t.Run("set variable is substituted", func(t *testing.T) {
		t.Setenv("SHADOWCOPY_TEST_SITE", "/var/www")
		got, err := ExpandTemplate("root=%SHADOWCOPY_TEST_SITE%/html")
		require.NoError(t, err)
		assert.Equal(t, "root=/var/www/html", got)
	})

	t.Run("undefined reference stays verbatim", func(t *testing.T) {
		got, err := ExpandTemplate("keep %SHADOWCOPY_TEST_UNDEFINED% as is")
		require.NoError(t, err)
		assert.Equal(t, "keep %SHADOWCOPY_TEST_UNDEFINED% as is", got)
	})

	t.Run("lone percent sign is literal", func(t *testing.T) {
		got, err := ExpandTemplate("98% done")
		require.NoError(t, err)
		assert.Equal(t, "98% done", got)
	})
}

func TestExpandReferences(t *testing.T) {
	t.Setenv("SHADOWCOPY_TEST_A", "alpha")
	t.Setenv("SHADOWCOPY_TEST_B", "beta")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no percent", "abc", "abc"},
		{"single reference", "%SHADOWCOPY_TEST_A%", "alpha"},
		{"back to back references", "%SHADOWCOPY_TEST_A%%SHADOWCOPY_TEST_B%", "alphabeta"},
		{"undefined kept with both signs", "x%NOPE_NOT_SET%y", "x%NOPE_NOT_SET%y"},
		{"empty name kept", "100%%", "100%%"},
		{"trailing open percent", "50%", "50%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandReferences(tt.in))
		})
	}
}

func TestLookupVariableOS(t *testing.T) {
	t.Run("set variable is found", func(t *testing.T) {
		t.Setenv("SHADOWCOPY_TEST_VALUE", "present")
		got, found, err := LookupVariable("SHADOWCOPY_TEST_VALUE")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "present", got)
	})

	t.Run("unset variable is absent, not an error", func(t *testing.T) {
		_, found, err := LookupVariable("SHADOWCOPY_TEST_NEVER_SET")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("empty variable is reported absent", func(t *testing.T) {
		t.Setenv("SHADOWCOPY_TEST_EMPTY", "")
		_, found, err := LookupVariable("SHADOWCOPY_TEST_EMPTY")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCurrentDirectoryOS(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := CurrentDirectory()
	require.NoError(t, err)
	assert.Equal(t, wd, got)
}

func TestSearchPathDirectoryOS(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, SetSearchPathDirectory(""))
	})

	t.Run("unset is the empty value, not an error", func(t *testing.T) {
		require.NoError(t, SetSearchPathDirectory(""))
		got, err := SearchPathDirectory()
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("set value reads back", func(t *testing.T) {
		require.NoError(t, SetSearchPathDirectory("/opt/deps"))
		got, err := SearchPathDirectory()
		require.NoError(t, err)
		assert.Equal(t, "/opt/deps", got)
	})
}
