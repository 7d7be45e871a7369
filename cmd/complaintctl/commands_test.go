package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	seed, err := parseSeed(strings.NewReader(`
departments:
  - name: Finance
    email: finance@corp.test
    description: Billing disputes
  - name: Network Ops
    email: noc@corp.test
`))
	require.NoError(t, err)
	require.Len(t, seed.Departments, 2)
	assert.Equal(t, "Finance", seed.Departments[0].Name)
	assert.Equal(t, "Billing disputes", seed.Departments[0].Description)
	assert.Equal(t, "noc@corp.test", seed.Departments[1].Email)
}

func TestParseSeedRejectsInvalidEntries(t *testing.T) {
	_, err := parseSeed(strings.NewReader(`
departments:
  - name: Finance
    email: not-an-email
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "department #1")

	_, err = parseSeed(strings.NewReader("departments: [oops"))
	require.Error(t, err)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{
		"migrate", "sla-sweep", "assign-priorities", "seed-departments", "classify", "create-user",
	}, names)
}

func TestCommandsRequireDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	root := newRootCommand()
	root.SetArgs([]string{"sla-sweep"})
	err := root.Execute()
	assert.ErrorIs(t, err, errMissingDSN)
}
