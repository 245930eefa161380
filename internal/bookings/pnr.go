package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
)

// pnrAlphabet omits 0, O, 1 and I so a PNR read over the phone or from a
// crumpled printout is unambiguous. 32 characters, so a random byte masked
// to 5 bits indexes it without bias.
const pnrAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const pnrLength = 6

// pnrDenylist rejects codes containing an offensive substring. Checked
// against the full generated code, not per position.
var pnrDenylist = []string{"FUCK", "SHIT", "HELL", "COCK", "BULL"}

var ErrGenerationExhausted = errors.New("could not generate a unique PNR")

// PNRStore is the uniqueness probe the generator needs from storage.
type PNRStore interface {
	PNRExists(ctx context.Context, pnr string) (bool, error)
}

// PNRGenerator mints unique 6-character record locators. Uniqueness is
// check-then-insert; a late collision surfaces as a storage error the caller
// retries.
type PNRGenerator struct {
	store       PNRStore
	maxAttempts int
}

func NewPNRGenerator(store PNRStore, maxAttempts int) *PNRGenerator {
	if maxAttempts <= 0 {
		maxAttempts = 50
	}
	return &PNRGenerator{store: store, maxAttempts: maxAttempts}
}

func (g *PNRGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		pnr, err := randomPNR()
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		if containsDenied(pnr) {
			continue
		}

		exists, err := g.store.PNRExists(ctx, pnr)
		if err != nil {
			return "", fmt.Errorf("failed to probe PNR uniqueness: %w", err)
		}
		if !exists {
			return pnr, nil
		}
	}
	return "", ErrGenerationExhausted
}

func randomPNR() (string, error) {
	buf := make([]byte, pnrLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(pnrLength)
	for _, c := range buf {
		b.WriteByte(pnrAlphabet[c&31])
	}
	return b.String(), nil
}

func containsDenied(pnr string) bool {
	for _, word := range pnrDenylist {
		if strings.Contains(pnr, word) {
			return true
		}
	}
	return false
}
