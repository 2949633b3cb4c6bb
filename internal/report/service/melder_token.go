// Package service provides the Melder token generator. Tokens are the only credential of an
// anonymous reporter and are stored as SHA-256 hashes.
package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strings"

	apperrors "github.com/allisson/whistleblower/internal/errors"
	"github.com/allisson/whistleblower/internal/report/domain"
)

var (
	animals = []string{
		"WOLF", "FUCHS", "ADLER", "BISON", "LUCHS", "FALKE", "IGEL", "DACHS",
		"RABE", "HABICHT", "OTTER", "MARDER", "HIRSCH", "LACHS", "BIBER",
	}
	colors = []string{
		"BLAU", "GRUEN", "GRAU", "WEISS", "BRAUN", "SCHWARZ", "SILBER", "GOLD", "BEIGE", "DUNKEL",
	}

	tokenPattern = regexp.MustCompile(`^[A-Z]+-[0-9]{4}-[A-Z]+$`)
)

const (
	tokenNumberMin = 1000
	tokenNumberMax = 9999
)

// MelderTokenGenerator creates and normalizes Melder tokens of the form ANIMAL-NNNN-COLOR.
type MelderTokenGenerator interface {
	Generate() (string, error)

	// Canonicalize upper-cases and trims a token. It is idempotent.
	Canonicalize(token string) string

	// Validate checks the canonical form of token against ANIMAL-NNNN-COLOR.
	Validate(token string) error

	// Hash returns hex(sha256(canonical token)).
	Hash(token string) string
}

type melderTokenGenerator struct {
	random io.Reader
}

// NewMelderTokenGenerator creates a generator drawing from crypto/rand.
func NewMelderTokenGenerator() MelderTokenGenerator {
	return &melderTokenGenerator{random: rand.Reader}
}

func (g *melderTokenGenerator) pick(n int64) (int64, error) {
	v, err := rand.Int(g.random, big.NewInt(n))
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read random number")
	}
	return v.Int64(), nil
}

func (g *melderTokenGenerator) Generate() (string, error) {
	animal, err := g.pick(int64(len(animals)))
	if err != nil {
		return "", err
	}
	number, err := g.pick(tokenNumberMax - tokenNumberMin + 1)
	if err != nil {
		return "", err
	}
	color, err := g.pick(int64(len(colors)))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d-%s", animals[animal], tokenNumberMin+number, colors[color]), nil
}

func (g *melderTokenGenerator) Canonicalize(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

func (g *melderTokenGenerator) Validate(token string) error {
	if !tokenPattern.MatchString(g.Canonicalize(token)) {
		return domain.ErrInvalidToken
	}
	return nil
}

func (g *melderTokenGenerator) Hash(token string) string {
	sum := sha256.Sum256([]byte(g.Canonicalize(token)))
	return hex.EncodeToString(sum[:])
}
