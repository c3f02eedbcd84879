// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"time"

	"simplepost/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds post payloads with realistic fake text.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. A zero seed uses the current time.
func NewFactory(seed int64) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{faker: gofakeit.New(seed)}
}

// BuildPost returns a create payload that satisfies the post constraints.
func (f *Factory) BuildPost(overrides ...func(*models.PostCreate)) models.PostCreate {
	in := models.PostCreate{
		Title:   f.faker.Sentence(5),
		Content: f.faker.Paragraph(1, 3, 8, " "),
	}
	if len([]rune(in.Title)) > models.TitleMaxLength {
		in.Title = string([]rune(in.Title)[:models.TitleMaxLength])
	}
	for _, o := range overrides {
		o(&in)
	}
	return in
}
