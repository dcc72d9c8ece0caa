package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithms(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []Algorithm
	}{
		{"empty selects all", nil, AllAlgorithms},
		{"all keyword", []string{"all"}, AllAlgorithms},
		{"single", []string{"lru"}, []Algorithm{AlgorithmLRU}},
		{"aliases", []string{"optimal", "belady"}, []Algorithm{AlgorithmOptimal}},
		{"case and space", []string{" FIFO ", "Opt"}, []Algorithm{AlgorithmFIFO, AlgorithmOptimal}},
		{"display order", []string{"opt", "lru", "fifo"}, AllAlgorithms},
		{"duplicates collapse", []string{"lru", "lru"}, []Algorithm{AlgorithmLRU}},
		{"blank entries ignored", []string{"", "fifo"}, []Algorithm{AlgorithmFIFO}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgorithms(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAlgorithms_Unknown(t *testing.T) {
	_, err := ParseAlgorithms([]string{"fifo", "clock"})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Contains(t, err.Error(), "clock")
}

func TestNormalizeAlgorithms_ReturnsFreshSlice(t *testing.T) {
	got := NormalizeAlgorithms(nil)
	got[0] = "mutated"
	assert.Equal(t, AlgorithmFIFO, AllAlgorithms[0])
}

func TestAlgorithm_DisplayName(t *testing.T) {
	assert.Equal(t, "FIFO", AlgorithmFIFO.DisplayName())
	assert.Equal(t, "LRU", AlgorithmLRU.DisplayName())
	assert.Equal(t, "OPT", AlgorithmOptimal.DisplayName())
}

func TestFaults_ByName(t *testing.T) {
	pages := []int{1, 2, 3, 4, 1, 2, 5}
	got, err := Faults(AlgorithmOptimal, pages, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	_, err = Faults("clock", pages, 3)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestEngines_RegistryCoversAllAlgorithms(t *testing.T) {
	for _, a := range AllAlgorithms {
		if _, ok := engines[a]; !ok {
			t.Errorf("no engine registered for %s", a)
		}
	}
	for _, a := range ValidAlgorithms {
		if _, ok := engines[a]; !ok {
			t.Errorf("alias maps to unregistered engine %s", a)
		}
	}
}
