package fake

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker produces randomized detail values for generated events. A zero seed
// picks a random one.
type Faker struct {
	f *gofakeit.Faker
}

func New(seed uint64) *Faker {
	return &Faker{f: gofakeit.New(seed)}
}

func (fk *Faker) Username() string {
	return fk.f.Username()
}

func (fk *Faker) IPv4() string {
	return fk.f.IPv4Address()
}

func (fk *Faker) Sentence(words int) string {
	return fk.f.Sentence(words)
}

func (fk *Faker) UserAgent() string {
	return fk.f.UserAgent()
}

func (fk *Faker) Latitude() float64 {
	return fk.f.Latitude()
}

func (fk *Faker) Longitude() float64 {
	return fk.f.Longitude()
}

func (fk *Faker) Word() string {
	return fk.f.Word()
}

func (fk *Faker) IntBetween(min, max int) int {
	return fk.f.Number(min, max)
}

func (fk *Faker) FloatBetween(min, max float64) float64 {
	return fk.f.Float64Range(min, max)
}

func (fk *Faker) Pick(options []string) string {
	return fk.f.RandomString(options)
}

func (fk *Faker) URIPath() string {
	parts := make([]string, fk.f.Number(2, 4))
	for i := range parts {
		parts[i] = fk.f.Word()
	}
	return "/" + strings.Join(parts, "/")
}
