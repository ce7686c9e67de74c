// Package export renders every preview route into a static snapshot.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/spf13/afero"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/floatplane/mitsuqtt-preview/internal/routes"
	"github.com/floatplane/mitsuqtt-preview/internal/templates"
)

// Options controls an export.
type Options struct {
	OutputDir string
	Minify    bool
}

// Result lists the files written, keyed by route path.
type Result struct {
	Files map[string]string
}

// FileName maps a route path to its snapshot file:
//
//	/              -> index.html
//	/captive/      -> captive/index.html
//	/captive/save  -> captive/save.html
//	/css (static)  -> css/mvp.css
func FileName(routePath string, action routes.Action) string {
	p := strings.TrimPrefix(routePath, "/")
	if action.Kind == routes.KindStatic {
		return path.Join(p, action.File)
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return p + "index.html"
	}
	return p + ".html"
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	return m
}

// Run writes one file per route of table into dest. The first failure
// aborts the export.
func Run(ctx context.Context, table *routes.Table, renderer *templates.Renderer, dest afero.Fs, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m *minify.M
	if opts.Minify {
		m = newMinifier()
	}

	res := &Result{Files: make(map[string]string, table.Len())}
	for _, routePath := range table.Paths() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		action := table.Resolve(routePath)
		var (
			data      []byte
			mediatype string
			err       error
		)
		switch action.Kind {
		case routes.KindStatic:
			mediatype = "text/css"
			data, err = renderer.Store().Static(action.File)
		case routes.KindRender:
			mediatype = "text/html"
			var page string
			page, err = renderer.Render(action.View, action.Context)
			data = []byte(page)
		default:
			continue
		}
		if err != nil {
			return res, fmt.Errorf("export %s: %w", routePath, err)
		}

		if m != nil {
			out, err := m.Bytes(mediatype, data)
			if err != nil {
				return res, fmt.Errorf("minify %s: %w", routePath, err)
			}
			data = out
		}

		name := path.Join(opts.OutputDir, FileName(routePath, action))
		if err := dest.MkdirAll(path.Dir(name), 0755); err != nil {
			return res, fmt.Errorf("create directory for %s: %w", name, err)
		}
		if err := afero.WriteFile(dest, name, data, 0644); err != nil {
			return res, fmt.Errorf("write %s: %w", name, err)
		}
		res.Files[routePath] = name
		logger.Debug("exported", "route", routePath, "file", name, "bytes", len(data))
	}

	logger.Info("export complete", "files", len(res.Files), "dir", opts.OutputDir)
	return res, nil
}
