package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	scoresdomain "github.com/hykocx/grabsanta.hyko.dev/app/modules/scores/domain"
)

// TestDataGenerator produces player names and scores for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed so a failing run can be reproduced.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// PlayerName returns a name that always passes submission validation.
func (g *TestDataGenerator) PlayerName() string {
	name := g.faker.FirstName()
	if r := []rune(name); len(r) > scoresdomain.MaxNameLength {
		name = string(r[:scoresdomain.MaxNameLength])
	}
	return name
}

// Score returns a score within the accepted range.
func (g *TestDataGenerator) Score() int {
	return g.faker.Number(0, scoresdomain.MaxScore)
}

// Submission is a valid name and score pair.
type Submission struct {
	Name  string
	Score int
}

// GenerateSubmissions returns n valid submissions.
func (g *TestDataGenerator) GenerateSubmissions(n int) []Submission {
	out := make([]Submission, n)
	for i := range out {
		out[i] = Submission{Name: g.PlayerName(), Score: g.Score()}
	}
	return out
}
