package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() map[string]Definition {
	return map[string]Definition{
		"web_fetch":  {Name: "web_fetch", Description: "Fetch the contents of a URL over HTTP"},
		"sys_info":   {Name: "sys_info", Description: "Report basic host information"},
		"db_query":   {Name: "db_query", Description: "Run a read-only database query"},
		"db_migrate": {Name: "db_migrate", Description: "Apply pending database migrations"},
	}
}

func TestSearch_ExactNameOutranksWordOverlap(t *testing.T) {
	results := Search(testCatalog(), "use sys_info to check the host")

	require.NotEmpty(t, results)
	assert.Equal(t, "sys_info", results[0].Name)
}

func TestSearch_WordOverlapAcrossNameAndDescription(t *testing.T) {
	results := Search(testCatalog(), "database migrations")

	require.Len(t, results, 2)
	assert.Equal(t, "db_migrate", results[0].Name, "two word hits beat one")
	assert.Equal(t, "db_query", results[1].Name)
}

func TestSearch_NoMatches(t *testing.T) {
	assert.Empty(t, Search(testCatalog(), "quantum entanglement"))
}

func TestSearch_EmptyInputs(t *testing.T) {
	assert.Empty(t, Search(testCatalog(), "   "))
	assert.Empty(t, Search(map[string]Definition{}, "anything"))
	assert.Empty(t, Search(nil, "anything"))
}

func TestSearch_StableTieBreak(t *testing.T) {
	catalog := map[string]Definition{
		"b_tool": {Name: "b_tool", Description: "database helper"},
		"a_tool": {Name: "a_tool", Description: "database helper"},
	}

	for i := 0; i < 10; i++ {
		results := Search(catalog, "database")
		require.Len(t, results, 2)
		assert.Equal(t, "a_tool", results[0].Name)
	}
}
