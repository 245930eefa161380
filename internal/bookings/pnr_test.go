package bookings

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryPNRStore remembers every code it was probed with a reservation for.
type memoryPNRStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemoryPNRStore() *memoryPNRStore {
	return &memoryPNRStore{seen: make(map[string]bool)}
}

func (s *memoryPNRStore) PNRExists(ctx context.Context, pnr string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[pnr] {
		return true, nil
	}
	s.seen[pnr] = true
	return false, nil
}

// saturatedPNRStore claims every code is taken.
type saturatedPNRStore struct{}

func (saturatedPNRStore) PNRExists(ctx context.Context, pnr string) (bool, error) {
	return true, nil
}

func TestGenerateFormat(t *testing.T) {
	gen := NewPNRGenerator(newMemoryPNRStore(), 50)

	for i := 0; i < 200; i++ {
		pnr, err := gen.Generate(context.Background())
		require.NoError(t, err)

		assert.Len(t, pnr, 6)
		for _, c := range pnr {
			assert.Contains(t, pnrAlphabet, string(c))
		}
		// ambiguous characters never appear
		assert.NotContains(t, pnr, "0")
		assert.NotContains(t, pnr, "O")
		assert.NotContains(t, pnr, "1")
		assert.NotContains(t, pnr, "I")
	}
}

func TestGenerateAvoidsDeniedWords(t *testing.T) {
	gen := NewPNRGenerator(newMemoryPNRStore(), 50)

	for i := 0; i < 500; i++ {
		pnr, err := gen.Generate(context.Background())
		require.NoError(t, err)
		for _, word := range pnrDenylist {
			assert.NotContains(t, pnr, word)
		}
	}
}

func TestGenerateUniqueUnderConcurrency(t *testing.T) {
	store := newMemoryPNRStore()
	gen := NewPNRGenerator(store, 50)

	const workers = 20
	const perWorker = 25

	var mu sync.Mutex
	issued := make(map[string]int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				pnr, err := gen.Generate(context.Background())
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				issued[pnr]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, issued, workers*perWorker)
	for pnr, count := range issued {
		assert.Equal(t, 1, count, "PNR %s issued more than once", pnr)
	}
}

func TestGenerateExhaustion(t *testing.T) {
	gen := NewPNRGenerator(saturatedPNRStore{}, 10)

	_, err := gen.Generate(context.Background())
	assert.ErrorIs(t, err, ErrGenerationExhausted)
}

func TestGenerateDefaultsAttempts(t *testing.T) {
	gen := NewPNRGenerator(newMemoryPNRStore(), 0)
	assert.Equal(t, 50, gen.maxAttempts)
}

func TestContainsDenied(t *testing.T) {
	assert.True(t, containsDenied("SHITXY"))
	assert.True(t, containsDenied("XHELLX"))
	assert.False(t, containsDenied("ABC234"))
}

func TestRandomPNRIndexesWholeAlphabet(t *testing.T) {
	// every alphabet character should show up across enough samples
	counts := make(map[byte]int)
	for i := 0; i < 2000; i++ {
		pnr, err := randomPNR()
		require.NoError(t, err)
		for j := 0; j < len(pnr); j++ {
			counts[pnr[j]]++
		}
	}
	for i := 0; i < len(pnrAlphabet); i++ {
		assert.Greater(t, counts[pnrAlphabet[i]], 0, "character %c never generated", pnrAlphabet[i])
	}
}
