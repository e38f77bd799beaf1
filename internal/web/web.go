package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed index.html static
var assets embed.FS

// Register mounts the single page at / and its script under /_next/static.
func Register(app *fiber.App) error {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return err
	}
	page, err := assets.ReadFile("index.html")
	if err != nil {
		return err
	}

	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(page)
	})
	app.Use("/_next/static", filesystem.New(filesystem.Config{
		Root:   http.FS(static),
		MaxAge: 3600,
	}))
	return nil
}
