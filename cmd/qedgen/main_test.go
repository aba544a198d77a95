package main

import (
	"bytes"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newGenFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("gen", pflag.ContinueOnError)
	addGenFlags(flags)
	flags.Int("workers", 0, "")
	return flags
}

func TestLoadGenOpts(t *testing.T) {
	flags := newGenFlags()
	require.NoError(t, flags.Parse(nil))
	opts, err := loadGenOpts(flags)
	require.NoError(t, err)
	require.Equal(t, qedgen.DefaultGenOpts, opts)

	config := path.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, os.WriteFile(config, []byte("loops: 2\nfermions: 2\nbosons: 0\nedge_connectivity: 2\nworkers: 3\n"), 0600))

	flags = newGenFlags()
	require.NoError(t, flags.Parse([]string{"--config", config, "-b", "1", "--tadpoles"}))
	opts, err = loadGenOpts(flags)
	require.NoError(t, err)
	require.Equal(t, 2, opts.Loops)
	require.Equal(t, 2, opts.FermionLegs)
	require.Equal(t, 1, opts.BosonLegs)
	require.Equal(t, 2, opts.EdgeConnectivity)
	require.Equal(t, 3, opts.Workers)
	require.False(t, opts.NoTadpoles)
	require.True(t, opts.Connected)

	flags = newGenFlags()
	require.NoError(t, flags.Parse([]string{"-L", "-1"}))
	_, err = loadGenOpts(flags)
	require.True(t, errors.Is(err, qedgen.ErrBadParam))

	flags = newGenFlags()
	require.NoError(t, flags.Parse([]string{"--config", path.Join(t.TempDir(), "missing.yaml")}))
	_, err = loadGenOpts(flags)
	require.True(t, errors.Is(err, qedgen.ErrBadConfig))
}

func TestCanonCmd(t *testing.T) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"canon", "--info=false", "x1->1, 1->0, 0->x0, 1~0", "x0->0, 0->1, 1->x1, 0~1"})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, lines[0], lines[1])
}

func TestCheckCmd(t *testing.T) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"check", "x0->0, 0->x1, 0~x2"})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "L=0,f=2,b=1")
	require.Contains(t, out.String(), ": ok")

	rootCmd.SetArgs([]string{"check", "x0->0, x1->0, 0~x2"})
	require.Error(t, rootCmd.Execute())
}
