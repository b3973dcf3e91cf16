package mcp_test

import (
	"testing"

	mcpadapter "github.com/codewarden/codewarden/internal/adapters/inbound/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	s := mcpadapter.NewServer(".", "test")
	require.NotNil(t, s)
}

func TestServerHasTools(t *testing.T) {
	s := mcpadapter.NewServer(".", "test")
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"codewarden_analyze_project",
		"codewarden_analyze_file",
		"codewarden_classify_path",
		"codewarden_rule_catalog",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
