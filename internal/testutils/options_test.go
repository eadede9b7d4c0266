package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOptionString(t *testing.T) {
	source := heredoc.Doc(`
		# option:operationName: Listing
		# option:variables:vars.json

		query Listing { authors { id } }
	`)

	assert.Equal(t, "Listing", FindOptionString(t, "operationName", source))
	assert.Equal(t, "vars.json", FindOptionString(t, "variables", source))
	assert.Equal(t, "", FindOptionString(t, "missing", source))
}

func TestCheckGoldenFile(t *testing.T) {
	golden := filepath.Join(t.TempDir(), "expected", "out.json")

	CheckGoldenFile(t, []byte(`{"data":null}`), golden)

	b, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Equal(t, `{"data":null}`, string(b))

	CheckGoldenFile(t, []byte(`{"data":null}`), golden)
}
