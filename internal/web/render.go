package web

import (
	"bytes"
	"html/template"
	"math"
	"strconv"
	"time"

	"worktrack/internal/auth"
	"worktrack/internal/models"
	"worktrack/pkg/logger"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

// Raw HTML in comments is dropped by goldmark unless WithUnsafe is set.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

func renderMarkdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		logger.ErrorLogger.Error("Markdown conversion failed", zap.Error(err))
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

func formatHours(h float64) string {
	return strconv.FormatFloat(math.Round(h*100)/100, 'f', -1, 64)
}

func templateFuncs() map[string]interface{} {
	return map[string]interface{}{
		"date":     models.FormatDate,
		"weekday":  func(t time.Time) string { return t.Weekday().String()[:3] },
		"hours":    formatHours,
		"markdown": renderMarkdown,
		"can": func(u *models.User, c string) bool {
			return auth.Require(u, auth.Capability(c)) == nil
		},
	}
}
