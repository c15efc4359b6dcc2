package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newCLI()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPermuteCommand(t *testing.T) {
	out, err := execute(t, "permute", "--shape", "2,3", "--perm", "1,0", "1,2,3,4,5,6")
	require.NoError(t, err)
	assert.Equal(t, "shape: [3 2]\n1,4,2,5,3,6\n", out)
}

func TestSliceCommand(t *testing.T) {
	out, err := execute(t, "slice", "--dtype", "i32", "--shape", "2,3", "--starts", "1,0", "--ends", "2,2", "10,20,30,40,50,60")
	require.NoError(t, err)
	assert.Equal(t, "shape: [1 2]\n40,50\n", out)
}

func TestBroadcastCommand(t *testing.T) {
	out, err := execute(t, "expand", "--dtype", "f16", "--shape", "3", "--to", "2,3", "1,2.5,3")
	require.NoError(t, err)
	assert.Equal(t, "shape: [2 3]\n1,2.5,3,1,2.5,3\n", out)
}

func TestExplicitElement(t *testing.T) {
	out, err := execute(t, "slice", "--elem", "vec2", "--checked", "--shape", "2,4", "--starts", "0,2", "--ends", "2,4", "1,2,3,4,5,6,7,8")
	require.NoError(t, err)
	assert.Equal(t, "shape: [2 2]\n3,4,7,8\n", out)

	_, err = execute(t, "slice", "--elem", "vec4", "--shape", "2,4", "--starts", "0,2", "--ends", "2,4", "1,2,3,4,5,6,7,8")
	assert.Error(t, err)
}

func TestKernelCommand(t *testing.T) {
	out, err := execute(t, "kernel", "--variant", "transpose", "--dtype", "f16", "--elem", "vec4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "enable f16;"), out)
	assert.Contains(t, out, "vec4<f16>")
	assert.Contains(t, out, "@workgroup_size(8, 8, 1)")
}

func TestCommandErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"unknown dtype":   {"permute", "--dtype", "f64", "--shape", "2", "1,2"},
		"unknown variant": {"kernel", "--variant", "gather"},
		"bad value":       {"permute", "--shape", "2", "1,x"},
		"wrong length":    {"permute", "--shape", "2,2", "1,2,3"},
		"bad shape":       {"permute", "--shape", "2,a", "1,2"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestVerifyFlag(t *testing.T) {
	for name, args := range map[string][]string{
		"permute":   {"permute", "--verify", "--shape", "2,2,2", "--perm", "2,0,1", "1,2,3,4,5,6,7,8"},
		"slice":     {"slice", "--verify", "--dtype", "u32", "--shape", "4", "--starts", "1", "--ends", "3", "9,8,7,6"},
		"broadcast": {"broadcast", "--verify", "--shape", "2,1", "--to", "2,4", "1,2"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			assert.NoError(t, err)
		})
	}
}
