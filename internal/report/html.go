package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

const htmlStyle = `body{font-family:system-ui,sans-serif;max-width:56rem;margin:2rem auto;padding:0 1rem;color:#1f2328}
table{border-collapse:collapse}th,td{border:1px solid #d0d7de;padding:.3rem .6rem}
h1{color:#0b6e99}`

// RenderHTML converts the markdown report into a standalone page.
func RenderHTML(w io.Writer, r Report) error {
	var body bytes.Buffer
	if err := htmlRenderer.Convert([]byte(markdown(r)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	title := "Compliance Assessment Report"
	if r.Profile.CompanyName != "" {
		title += " - " + r.Profile.CompanyName
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), htmlStyle, body.String())
	return err
}
