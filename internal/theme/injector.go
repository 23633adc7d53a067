package theme

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// CustomCSSNodeID identifies the stylesheet node that carries the free-form
// custom CSS token.
const CustomCSSNodeID = "theme-custom-css"

// Document models a document root: custom properties set on :root plus at
// most one managed stylesheet node.
type Document struct {
	mu        sync.RWMutex
	props     map[string]string
	styleNode *string // nil until the first non-empty custom CSS
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{props: make(map[string]string)}
}

// Property returns the value of a custom property.
func (d *Document) Property(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.props[name]
	return v, ok
}

// Properties returns a copy of every custom property set so far.
func (d *Document) Properties() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.props)
}

// StyleNode returns the managed stylesheet content and whether the node
// exists.
func (d *Document) StyleNode() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.styleNode == nil {
		return "", false
	}
	return *d.styleNode, true
}

// CSS renders the :root block followed by the custom stylesheet content.
func (d *Document) CSS() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range slices.Sorted(maps.Keys(d.props)) {
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(d.props[name])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	if d.styleNode != nil && *d.styleNode != "" {
		b.WriteString("\n/* " + CustomCSSNodeID + " */\n")
		b.WriteString(*d.styleNode)
		if !strings.HasSuffix(*d.styleNode, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Injector projects tokens onto a Document.
type Injector struct {
	doc *Document
}

// NewInjector returns an injector writing to doc.
func NewInjector(doc *Document) *Injector {
	return &Injector{doc: doc}
}

// Document returns the target document.
func (in *Injector) Document() *Document { return in.doc }

// Apply sets one custom property per mapped token, skipping empty values.
// Properties without a new value keep what they had. The custom CSS token
// creates the stylesheet node on its first non-empty value and only clears
// its content afterwards.
func (in *Injector) Apply(t Tokens) {
	d := in.doc
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, value := range t {
		if value == "" {
			continue
		}
		if name, ok := cssVars[key]; ok {
			d.props[name] = value
		}
	}

	css, ok := t[KeyCustomCSS]
	if !ok {
		return
	}
	switch {
	case d.styleNode == nil && css != "":
		d.styleNode = &css
	case d.styleNode != nil:
		*d.styleNode = css
	}
}

// RenderCSS merges records over the defaults and renders them through a
// fresh document.
func RenderCSS(records []Record) string {
	in := NewInjector(NewDocument())
	in.Apply(Merge(records))
	return in.doc.CSS()
}
