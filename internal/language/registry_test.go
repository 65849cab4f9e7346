package language

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenforge/codeintel/internal/types"
)

func TestDetect_KnownExtensionResolves(t *testing.T) {
	r := NewRegistry()
	lang, err := r.Detect("main.go")
	require.NoError(t, err)
	require.Equal(t, types.LangGo, lang)
}

func TestDetect_UnknownExtensionFails(t *testing.T) {
	r := NewRegistry()
	_, err := r.Detect("notes.xyz123")
	require.Error(t, err)
}

func TestDetect_DisabledLanguageIsUnsupported(t *testing.T) {
	r := NewRegistryWithDisabled([]string{"Go"})
	_, err := r.Detect("main.go")
	require.Error(t, err)

	// A language not in the disabled set keeps working normally.
	other := NewRegistry()
	lang, err := other.Detect("main.go")
	require.NoError(t, err)
	require.Equal(t, types.LangGo, lang)
}
