package digest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHtmlToNodes(t *testing.T) {
	nodes, err := htmlToNodes(`<h3>Title</h3><p>Text with <a href="https://example.com">a link</a></p>`)
	require.Nil(t, err)
	require.Len(t, nodes, 2)

	heading, ok := nodes[0].(*telegraphNode)
	require.True(t, ok)
	assert.Equal(t, "h3", heading.Tag)
	require.Len(t, heading.Children, 1)
	assert.Equal(t, "Title", heading.Children[0])

	para, ok := nodes[1].(*telegraphNode)
	require.True(t, ok)
	assert.Equal(t, "p", para.Tag)

	// Only href/src attributes survive the conversion.
	payload, err := json.Marshal(nodes)
	require.Nil(t, err)
	assert.Contains(t, string(payload), `"href":"https://example.com"`)
}

func TestHtmlToNodes_WhitespaceDropped(t *testing.T) {
	nodes, err := htmlToNodes("<p>one</p>\n\n<p>two</p>")
	require.Nil(t, err)
	assert.Len(t, nodes, 2)
}
