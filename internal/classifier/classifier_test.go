package classifier

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const bundledModel = "../../models/complaint_classifier.json"

func TestBundledModelPredictions(t *testing.T) {
	adapter := New(bundledModel, zap.NewNop())
	require.True(t, adapter.Available())
	assert.Equal(t, []string{"Billing", "Delivery", "Other", "Service", "Technical"}, adapter.Labels())

	cases := map[string]string{
		"My internet connection is very slow":   "Technical",
		"I was charged twice on my bill":        "Billing",
		"The courier delivered my package late": "Delivery",
		"Staff were rude":                       "Service",
		"hello there":                           "Other",
	}
	for text, want := range cases {
		got, err := adapter.Classify(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, want, got, text)
	}
}

func TestMissingArtifactFailsEveryCall(t *testing.T) {
	adapter := New(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	assert.False(t, adapter.Available())
	assert.Nil(t, adapter.Labels())

	for i := 0; i < 2; i++ {
		_, err := adapter.Classify(context.Background(), "anything")
		assert.ErrorIs(t, err, ErrModelUnavailable)
	}
}

func TestLoadRejectsMismatchedShapes(t *testing.T) {
	valid := artifact{
		Labels:       []string{"A", "B"},
		Vocabulary:   map[string]int{"foo": 0, "bar": 1},
		IDF:          []float64{1, 1},
		Coefficients: [][]float64{{1, 0}, {0, 1}},
		Intercepts:   []float64{0, 0},
		Lowercase:    true,
	}

	cases := map[string]func(a *artifact){
		"no labels":          func(a *artifact) { a.Labels = nil },
		"vocabulary size":    func(a *artifact) { a.Vocabulary = map[string]int{"foo": 0} },
		"coefficient rows":   func(a *artifact) { a.Coefficients = a.Coefficients[:1] },
		"coefficient column": func(a *artifact) { a.Coefficients = [][]float64{{1}, {0, 1}} },
		"intercepts":         func(a *artifact) { a.Intercepts = []float64{0} },
		"index out of range": func(a *artifact) { a.Vocabulary = map[string]int{"foo": 0, "bar": 5} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a := valid
			a.Coefficients = [][]float64{{1, 0}, {0, 1}}
			mutate(&a)
			path := writeArtifact(t, a)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	model, err := Load(writeArtifact(t, valid))
	require.NoError(t, err)
	assert.Equal(t, "B", model.Predict("BAR bar foo"))
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestFuncAdapter(t *testing.T) {
	var c Classifier = Func(func(string) string { return "Technical" })
	got, err := c.Classify(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Technical", got)
}

func writeArtifact(t *testing.T, a artifact) string {
	t.Helper()
	raw, err := json.Marshal(a)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestTokenizeKeepsNonASCIIWords(t *testing.T) {
	assert.Equal(t,
		[]string{"Café", "déjà", "vu", "42", "naïve_x", "Überweisung"},
		tokenize("Café déjà vu, a 42 ü naïve_x Überweisung!"))
	assert.Empty(t, tokenize("a b c ! ?"))
}
