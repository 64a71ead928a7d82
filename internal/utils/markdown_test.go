package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown("hello <script>alert(1)</script> world"))
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived sanitization: %s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("text content lost: %s", out)
	}
}

func TestRenderMarkdownBasics(t *testing.T) {
	out := string(RenderMarkdown("**bold** and [link](https://example.com)"))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %s", out)
	}
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Errorf("link not rendered: %s", out)
	}
}

func TestEnhanceHTMLContentImages(t *testing.T) {
	out := string(EnhanceHTMLContent(`<p><img src="/uploads/a.jpg"/></p>`))
	if !strings.Contains(out, `loading="lazy"`) {
		t.Errorf("lazy loading attribute missing: %s", out)
	}
	if !strings.Contains(out, `referrerpolicy="no-referrer"`) {
		t.Errorf("referrer policy attribute missing: %s", out)
	}
}
