package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploy_Flags(t *testing.T) {
	cmd := Deploy()

	assert.Equal(t, "deploy", cmd.Use)
	for _, name := range []string{
		"config", "provider", "ip", "email", "name", "region", "image",
		"size", "playbook", "key-dir", "skip-verify", "metrics-file",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag --%s", name)
	}
	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand)
}

func TestDeploy_RejectsArguments(t *testing.T) {
	cmd := Deploy()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestInit_OutputFlagDefault(t *testing.T) {
	cmd := Init()

	flag := cmd.Flags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "dropvpn.yaml", flag.DefValue)
}

func TestDoctor_Flags(t *testing.T) {
	cmd := Doctor()

	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("provider"))
}

func TestKey_Flags(t *testing.T) {
	cmd := Key()

	for _, name := range []string{"config", "provider", "key-dir", "register"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag --%s", name)
	}
	assert.Equal(t, "false", cmd.Flags().Lookup("register").DefValue)
}

func TestCompletion(t *testing.T) {
	root := &cobra.Command{Use: "dropvpn"}
	root.AddCommand(Completion())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "dropvpn")

	root.SetArgs([]string{"completion", "tcsh"})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
