package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/circulens/circulens/internal/cli"
)

func TestMainComponents(t *testing.T) {
	t.Run("root command constructs", func(t *testing.T) {
		root := cli.NewRootCmd(version)
		assert.NotNil(t, root)
		assert.Equal(t, "circulens", root.Use)
	})

	t.Run("subcommands registered", func(t *testing.T) {
		root := cli.NewRootCmd(version)
		var names []string
		for _, sub := range root.Commands() {
			names = append(names, sub.Name())
		}
		assert.Contains(t, names, "calc")
		assert.Contains(t, names, "impute")
		assert.Contains(t, names, "compare")
		assert.Contains(t, names, "factors")
		assert.Contains(t, names, "serve")
	})
}
