package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "storekeeper", cmd.Use)
	assert.Contains(t, cmd.Long, "catalog")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"catalog", "promo", "report", "session"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestCatalogSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	subcommands := []string{"add", "edit", "rm", "ls", "search", "import"}

	for _, name := range subcommands {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{"catalog", name})
			require.NoError(t, err)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "storekeeper.yaml", configFlag.DefValue)
}

func TestCatalogAddFlags(t *testing.T) {
	cmd := NewRootCommand()
	addCmd, _, err := cmd.Find([]string{"catalog", "add"})
	require.NoError(t, err)

	discountFlag := addCmd.Flags().Lookup("discount")
	require.NotNil(t, discountFlag)
	assert.Equal(t, "0", discountFlag.DefValue)

	stockFlag := addCmd.Flags().Lookup("stock")
	require.NotNil(t, stockFlag)

	require.NotNil(t, addCmd.Flags().Lookup("admin-user"))
	require.NotNil(t, addCmd.Flags().Lookup("admin-pass"))
}

func TestReportAuditFlags(t *testing.T) {
	cmd := NewRootCommand()
	auditCmd, _, err := cmd.Find([]string{"report", "audit"})
	require.NoError(t, err)

	limitFlag := auditCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad args")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "rejected", assert.AnError)))
}
