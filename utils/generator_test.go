package utils

import (
	"strings"
	"testing"

	"github.com/anjiri1684/alx_travel/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueTxRef(t *testing.T) {
	db := testutil.NewDB(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		ref, err := GenerateUniqueTxRef(db)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "tx-"))
		assert.False(t, seen[ref])
		seen[ref] = true
	}
}
