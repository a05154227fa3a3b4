package manifestDiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManifestDiffService_Diff(t *testing.T) {
	before := `{
  "name": "ui-kit",
  "dependencies": {
    "lodash": "4.0.0",
    "react": "17.0.0"
  },
  "private": true
}
`
	after := `{
  "name": "ui-kit",
  "dependencies": {
    "react": "18.0.0"
  },
  "private": true
}
`

	t.Run("変更行だけが返ること", func(t *testing.T) {
		lines := NewManifestDiffService().Diff(before, after, 0)

		assert.Equal(t, []Line{
			{Op: Delete, Text: `    "lodash": "4.0.0",`},
			{Op: Delete, Text: `    "react": "17.0.0"`},
			{Op: Insert, Text: `    "react": "18.0.0"`},
		}, lines)
	})

	t.Run("前後の行が含まれること", func(t *testing.T) {
		lines := NewManifestDiffService().Diff(before, after, 1)

		var actual []string
		for _, l := range lines {
			actual = append(actual, l.String())
		}
		assert.Equal(t, []string{
			`    "dependencies": {`,
			`-     "lodash": "4.0.0",`,
			`-     "react": "17.0.0"`,
			`+     "react": "18.0.0"`,
			`    },`,
		}, actual)
	})

	t.Run("同じ内容の場合は空になること", func(t *testing.T) {
		assert.Empty(t, NewManifestDiffService().Diff(before, before, 3))
	})
}
