package broadcast

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Renderer renders broadcast subjects and bodies as Go templates with
// the sprig function map. Parsed templates are cached by content hash;
// the cache is shared across requests and safe for concurrent use.
type Renderer struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewRenderer creates a new broadcast template renderer
func NewRenderer() *Renderer {
	return &Renderer{
		templates: make(map[string]*template.Template),
	}
}

// generateTemplateName derives a stable cache key from the template text
func generateTemplateName(tmpl string) string {
	hash := sha256.Sum256([]byte(tmpl))
	return fmt.Sprintf("tmpl_%s", hex.EncodeToString(hash[:8]))
}

// Render renders one template against a recipient. Parse and execute
// errors are returned verbatim so the editor can show what is wrong
// with the template; nothing is partially rendered.
func (r *Renderer) Render(tmpl string, recipient Recipient) (string, error) {
	t, err := r.lookup(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, recipient); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderMessage renders a subject/content pair against one recipient.
// The subject is rendered first; a failing subject leaves the content
// untouched.
func (r *Renderer) RenderMessage(subject, content string, recipient Recipient) (renderedSubject, renderedContent string, err error) {
	renderedSubject, err = r.Render(subject, recipient)
	if err != nil {
		return "", "", fmt.Errorf("subject: %w", err)
	}
	renderedContent, err = r.Render(content, recipient)
	if err != nil {
		return "", "", fmt.Errorf("content: %w", err)
	}
	return renderedSubject, renderedContent, nil
}

// Validate parses the template without executing it.
func (r *Renderer) Validate(tmpl string) error {
	_, err := r.lookup(tmpl)
	return err
}

func (r *Renderer) lookup(tmpl string) (*template.Template, error) {
	name := generateTemplateName(tmpl)

	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.templates[name] = t
	r.mu.Unlock()
	return t, nil
}
