package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBootstrap(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want BootstrapMode
	}{
		{name: "empty mount renders", doc: `<html><body><div id="root"></div></body></html>`, want: BootstrapRender},
		{name: "element child hydrates", doc: `<html><body><div id="root"><main></main></div></body></html>`, want: BootstrapHydrate},
		{name: "text child hydrates", doc: `<html><body><div id="root">text</div></body></html>`, want: BootstrapHydrate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectBootstrap(tt.doc, "root")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectBootstrap_MissingMount(t *testing.T) {
	_, err := DetectBootstrap(`<html><body><div id="app"></div></body></html>`, "root")
	require.ErrorIs(t, err, ErrMountNotFound)
}

func TestBootstrapMode_String(t *testing.T) {
	assert.Equal(t, "hydrate", BootstrapHydrate.String())
	assert.Equal(t, "render", BootstrapRender.String())
}
