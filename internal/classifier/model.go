package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// tokenPattern matches runs of two or more Unicode letters, digits or underscores.
// RE2's \w and \b are ASCII-only, so the classes are spelled out.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// artifact mirrors the JSON model file on disk.
type artifact struct {
	Labels       []string       `json:"labels"`
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Coefficients [][]float64    `json:"coefficients"`
	Intercepts   []float64      `json:"intercepts"`
	Lowercase    bool           `json:"lowercase"`
	SublinearTF  bool           `json:"sublinear_tf"`
}

// Model is a loaded TF-IDF vectorizer plus a linear multi-class scorer.
type Model struct {
	labels      []string
	vocabulary  map[string]int
	idf         []float64
	weights     *mat.Dense
	intercepts  *mat.VecDense
	lowercase   bool
	sublinearTF bool
}

// Load reads and validates a model artifact.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %q: %w", path, err)
	}
	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model %q: %w", path, err)
	}
	return newModel(a)
}

func newModel(a artifact) (*Model, error) {
	classes := len(a.Labels)
	features := len(a.IDF)
	switch {
	case classes == 0:
		return nil, errors.New("model has no labels")
	case features == 0:
		return nil, errors.New("model has no features")
	case len(a.Vocabulary) != features:
		return nil, fmt.Errorf("vocabulary size %d does not match idf size %d", len(a.Vocabulary), features)
	case len(a.Coefficients) != classes:
		return nil, fmt.Errorf("coefficient rows %d do not match %d labels", len(a.Coefficients), classes)
	case len(a.Intercepts) != classes:
		return nil, fmt.Errorf("intercepts %d do not match %d labels", len(a.Intercepts), classes)
	}

	weights := mat.NewDense(classes, features, nil)
	for i, row := range a.Coefficients {
		if len(row) != features {
			return nil, fmt.Errorf("coefficient row %d has %d columns, want %d", i, len(row), features)
		}
		weights.SetRow(i, row)
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= features {
			return nil, fmt.Errorf("vocabulary term %q has out of range index %d", term, idx)
		}
	}

	return &Model{
		labels:      append([]string(nil), a.Labels...),
		vocabulary:  a.Vocabulary,
		idf:         a.IDF,
		weights:     weights,
		intercepts:  mat.NewVecDense(classes, append([]float64(nil), a.Intercepts...)),
		lowercase:   a.Lowercase,
		sublinearTF: a.SublinearTF,
	}, nil
}

// Labels returns the classes the model can emit.
func (m *Model) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Predict returns the highest scoring label for text.
func (m *Model) Predict(text string) string {
	scores := m.scores(text)
	best := 0
	for i := 1; i < scores.Len(); i++ {
		if scores.AtVec(i) > scores.AtVec(best) {
			best = i
		}
	}
	return m.labels[best]
}

func (m *Model) scores(text string) *mat.VecDense {
	features := mat.NewVecDense(len(m.idf), m.vectorize(text))
	scores := mat.NewVecDense(len(m.labels), nil)
	scores.MulVec(m.weights, features)
	scores.AddVec(scores, m.intercepts)
	return scores
}

func (m *Model) vectorize(text string) []float64 {
	if m.lowercase {
		text = strings.ToLower(text)
	}
	vec := make([]float64, len(m.idf))
	for _, token := range tokenize(text) {
		if idx, ok := m.vocabulary[token]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		if m.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec[i] = tf * m.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
