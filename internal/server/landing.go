package server

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/index.html
var templateFS embed.FS

var landingTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type landingData struct {
	ProjectName string
	APIPrefix   string
}

// Landing renders the HTML front page.
func (s *Server) Landing(c *fiber.Ctx) error {
	var buf bytes.Buffer
	err := landingTemplate.Execute(&buf, landingData{
		ProjectName: s.config.ProjectName,
		APIPrefix:   s.config.APIV1Str,
	})
	if err != nil {
		return err
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
