package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"cayley/internal/algebra"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_Text(t *testing.T) {
	out, err := execute(t, "generate", "Z", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Z_3")
	assert.Contains(t, out, "Cyclic group of order 3")
	assert.Contains(t, out, "∘")
}

func TestGenerate_JSON(t *testing.T) {
	out, err := execute(t, "generate", "d", "3", "-o", "json")
	require.NoError(t, err)

	var got groupView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "D_3", got.Name)
	assert.Equal(t, "e", got.Identity)
	assert.Len(t, got.CayleyTable, 6)
}

func TestGenerate_YAML(t *testing.T) {
	out, err := execute(t, "generate", "S", "3", "--output", "yaml")
	require.NoError(t, err)

	var got groupView
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "S_3", got.Name)
	assert.Equal(t, []string{"()"}, got.CycleGroups[algebra.IdentitySignature])
}

func TestGenerate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"symmetric too large", []string{"generate", "S", "5"}, algebra.ErrCapacityExceeded},
		{"cyclic beyond the order cap", []string{"generate", "Z", "65"}, algebra.ErrCapacityExceeded},
		{"unknown family", []string{"generate", "Q", "3"}, nil},
		{"non-numeric order", []string{"generate", "Z", "three"}, nil},
		{"zero order", []string{"generate", "Z", "0"}, nil},
		{"unknown format", []string{"generate", "Z", "3", "-o", "xml"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	t.Run("accumulates", func(t *testing.T) {
		out, err := execute(t, "compose", "D", "4", "r1", "s", "-o", "json")
		require.NoError(t, err)
		var got traceView
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "sr3", got.Final)
		assert.Equal(t, algebra.StateAccumulating, got.State)
		assert.Len(t, got.Steps, 2)
	})

	t.Run("halts on an invalid element", func(t *testing.T) {
		out, err := execute(t, "compose", "Z", "4", "1", "9", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "(invalid)")
		assert.Contains(t, out, "result: ? (halted)")
	})

	t.Run("no elements", func(t *testing.T) {
		out, err := execute(t, "compose", "Z", "4")
		require.NoError(t, err)
		assert.Contains(t, out, "result: ? (empty)")
	})
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "classify", "4", "-o", "json")
	require.NoError(t, err)

	var got classesView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	total := 0
	for _, c := range got.Classes {
		total += len(c.Members)
		assert.NotEmpty(t, c.Color)
	}
	assert.Equal(t, 24, total)

	_, err = execute(t, "classify", "5")
	assert.Error(t, err)
}

func TestVertices(t *testing.T) {
	out, err := execute(t, "vertices", "4", "r1")
	require.NoError(t, err)
	assert.Contains(t, out, "r¹ in D_4")
	assert.Contains(t, out, "0 -> 1")

	_, err = execute(t, "vertices", "4", "r4")
	assert.ErrorIs(t, err, algebra.ErrInvalidOperand)

	_, err = execute(t, "vertices", "65", "e")
	assert.ErrorIs(t, err, algebra.ErrCapacityExceeded)

	_, err = execute(t, "vertices", "1000000000", "e")
	assert.ErrorIs(t, err, algebra.ErrCapacityExceeded)
}
