package hmm

import (
	"encoding/json"
	"io/ioutil"
	"path"
	"testing"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestModelRoundTrip(t *testing.T) {
	model := trainTestModel(t, catSatLines, []string{"cat", "sat"})

	modelPath := path.Join(t.TempDir(), "hmm.model.json")
	require.NoError(t, SaveModelToFile(model, modelPath))

	loaded, err := LoadModelFromFile(modelPath)
	require.NoError(t, err)

	// Serialized forms must be the same JSON document.
	originalJSON, err := json.Marshal(model)
	require.NoError(t, err)
	loadedJSON, err := json.Marshal(loaded)
	require.NoError(t, err)
	require.True(t, jsonpatch.Equal(originalJSON, loadedJSON),
		"serialized models differ:\n%s\n%s", originalJSON, loadedJSON)

	// And the loaded model must decode identically.
	wantTags, err := model.Predict([]string{"cat", "sat"})
	require.NoError(t, err)
	gotTags, err := loaded.Predict([]string{"cat", "sat"})
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(wantTags, gotTags))

	require.Equal(t, model.Fingerprint(), loaded.Fingerprint())
}

func TestLoadModelBadDimensions(t *testing.T) {
	// Tags and vocab check out, but the emission rows are truncated. The
	// loader has to reject this; Predict would index past the row end.
	broken := &Model{
		Tags:       []string{"--s--", "N", "V"},
		Alpha:      DefaultAlpha,
		Transition: [][]float64{{0.3, 0.3, 0.4}, {0.3, 0.3, 0.4}, {0.3, 0.3, 0.4}},
		Emission:   [][]float64{{0.5}, {0.5}, {0.5}},
		Vocab:      map[string]int{"cat": 0, "sat": 1},
	}
	modelPath := path.Join(t.TempDir(), "truncated.model.json")
	buf, err := json.Marshal(broken)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(modelPath, buf, 0644))

	_, err = LoadModelFromFile(modelPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "emission row 0")

	broken.Emission = [][]float64{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}
	broken.Transition = [][]float64{{0.3, 0.3, 0.4}, {0.3, 0.3, 0.4}}
	buf, err = json.Marshal(broken)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(modelPath, buf, 0644))

	_, err = LoadModelFromFile(modelPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "transition matrix")
}

func TestLoadModelMissingStartTag(t *testing.T) {
	modelPath := path.Join(t.TempDir(), "broken.model.json")
	broken := &Model{
		Tags:       []string{"N", "V"},
		Alpha:      DefaultAlpha,
		Transition: [][]float64{{0.5, 0.5}, {0.5, 0.5}},
		Emission:   [][]float64{{1}, {1}},
		Vocab:      map[string]int{"cat": 0},
	}
	buf, err := json.Marshal(broken)
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(modelPath, buf, 0644))

	_, err = LoadModelFromFile(modelPath)
	require.ErrorIs(t, err, ErrNoStartTag)
}
