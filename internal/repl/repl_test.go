package repl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/dupcheck/internal/deduplication"
	"github.com/steveyegge/dupcheck/internal/inventory"
)

func newTestREPL(t *testing.T, answers ...bool) (*REPL, *bytes.Buffer) {
	t.Helper()

	classifier, err := deduplication.NewClassifier(deduplication.DefaultPolicy())
	require.NoError(t, err)

	var out bytes.Buffer
	r, err := New(&Config{
		Classifier: classifier,
		Inventory:  inventory.New(inventory.Item{ID: "p-1", Name: "Potato"}),
		Out:        &out,
	})
	require.NoError(t, err)

	r.confirm = func(question string) (bool, error) {
		require.NotEmpty(t, answers, "unexpected confirmation: %s", question)
		answer := answers[0]
		answers = answers[1:]
		return answer, nil
	}
	return r, &out
}

func TestNew_RequiresClassifier(t *testing.T) {
	r, err := New(&Config{})
	require.Error(t, err)
	assert.Nil(t, r)
}

func TestNew_Defaults(t *testing.T) {
	classifier, err := deduplication.NewClassifier(deduplication.DefaultPolicy())
	require.NoError(t, err)

	r, err := New(&Config{Classifier: classifier})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Inventory().Len())
}

func TestAddProduct_NoDuplicate(t *testing.T) {
	r, out := newTestREPL(t)

	require.NoError(t, r.processInput("Carrots"))
	assert.Equal(t, 2, r.Inventory().Len())
	assert.Contains(t, out.String(), `Added "Carrots"`)
}

func TestAddProduct_DuplicateDeclined(t *testing.T) {
	r, out := newTestREPL(t, false)

	require.NoError(t, r.processInput("Potatoe"))
	assert.Equal(t, 1, r.Inventory().Len())
	assert.Contains(t, out.String(), "Potato (p-1)")
	assert.Contains(t, out.String(), "Typo Detection")
	assert.Contains(t, out.String(), `Skipped "Potatoe"`)
}

func TestAddProduct_DuplicateAccepted(t *testing.T) {
	r, out := newTestREPL(t, true)

	require.NoError(t, r.processInput("Potatoes"))
	assert.Equal(t, 2, r.Inventory().Len())
	assert.Contains(t, out.String(), "Exact Match (Stemmed)")
	assert.Contains(t, out.String(), `Added "Potatoes"`)
}

func TestAddProduct_LaterAddsSeeEarlierOnes(t *testing.T) {
	r, out := newTestREPL(t, false)

	require.NoError(t, r.processInput("Red Onions"))
	require.NoError(t, r.processInput("red onion"))
	assert.Equal(t, 2, r.Inventory().Len())
	assert.Contains(t, out.String(), `Skipped "red onion"`)
}

func TestCommands(t *testing.T) {
	r, out := newTestREPL(t)

	require.NoError(t, r.processInput("help"))
	assert.Contains(t, out.String(), "Available Commands")

	out.Reset()
	require.NoError(t, r.processInput("list"))
	assert.Contains(t, out.String(), "1. Potato (p-1)")

	out.Reset()
	require.NoError(t, r.processInput("check Potatoe"))
	assert.Contains(t, out.String(), "Typo Detection")
	assert.Equal(t, 1, r.Inventory().Len(), "check does not add")

	out.Reset()
	require.NoError(t, r.processInput("CHECK Bananas"))
	assert.Contains(t, out.String(), `No duplicate for "Bananas"`)

	err := r.processInput("check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")

	assert.Equal(t, io.EOF, r.processInput("exit"))
	assert.Equal(t, io.EOF, r.processInput("quit"))
}

func TestProcessInput_ProductsStartingWithCommandWords(t *testing.T) {
	tests := []string{
		"List Price Labels",
		"Help Desk Bell",
		"Quit Smoking Gum",
		"Exit Sign",
		"? Mystery Box",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			r, out := newTestREPL(t)

			require.NoError(t, r.processInput(name))
			assert.Equal(t, 2, r.Inventory().Len())
			assert.Equal(t, name, r.Inventory().All()[1].Name)
			assert.Contains(t, out.String(), "Added")
		})
	}
}

func TestProcessInput_CheckWithArgumentsDoesNotAdd(t *testing.T) {
	r, out := newTestREPL(t)

	require.NoError(t, r.processInput("Check Shirt"))
	assert.Equal(t, 1, r.Inventory().Len())
	assert.Contains(t, out.String(), `No duplicate for "Shirt"`)
}

func TestRun_Cancelled(t *testing.T) {
	classifier, err := deduplication.NewClassifier(deduplication.DefaultPolicy())
	require.NoError(t, err)

	var out bytes.Buffer
	r, err := New(&Config{
		Classifier: classifier,
		Out:        &out,
		In:         io.NopCloser(strings.NewReader("")),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.Inventory().Len())
}

func TestCmdList_Empty(t *testing.T) {
	classifier, err := deduplication.NewClassifier(deduplication.DefaultPolicy())
	require.NoError(t, err)

	var out bytes.Buffer
	r, err := New(&Config{Classifier: classifier, Out: &out})
	require.NoError(t, err)

	require.NoError(t, r.processInput("list"))
	assert.Contains(t, out.String(), "Inventory is empty")
}

func TestIsYes(t *testing.T) {
	for _, s := range []string{"y", "Y", "yes", " YES "} {
		assert.True(t, isYes(s), s)
	}
	for _, s := range []string{"", "n", "no", "yep"} {
		assert.False(t, isYes(s), s)
	}
}
