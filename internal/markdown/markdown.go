// Package markdown turns the assistant's narrative into display markup.
//
// The narrative uses a small Markdown subset: **bold**, "## " and "### "
// headings, "- " list items and blank-line paragraphs. HTMLRenderer converts
// exactly that subset with an ordered list of rewrite rules; it is not a
// general Markdown parser. Input is trusted and is not HTML-escaped, and
// nested lists or nested emphasis are not recognised. Anything the rules do
// not match is left as literal text.
package markdown

import "regexp"

// Renderer converts a narrative into output for a particular surface.
type Renderer interface {
	Render(narrative string) (string, error)
}

// rule is one rewrite step of the HTML pipeline.
type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules run in order; later rules match on tags inserted by earlier ones.
var rules = []rule{
	{regexp.MustCompile(`\*\*(.*?)\*\*`), `<strong>$1</strong>`},
	{regexp.MustCompile(`(?m)^## (.*)$`), `<h2>$1</h2>`},
	{regexp.MustCompile(`(?m)^### (.*)$`), `<h3>$1</h3>`},
	{regexp.MustCompile(`(?m)^- (.*)$`), `<li>$1</li>`},
	{regexp.MustCompile(`\n\n`), `</p><p>`},
	// A run is a sequence of items joined by single newlines.
	{regexp.MustCompile(`<li>.*?</li>(?:\n<li>.*?</li>)*`), `<ul>$0</ul>`},
}

// HTML renders narrative as an HTML fragment wrapped in a single <p>.
func HTML(narrative string) string {
	out := narrative
	for _, r := range rules {
		out = r.re.ReplaceAllString(out, r.repl)
	}
	return "<p>" + out + "</p>"
}

// HTMLRenderer is the Renderer form of HTML.
type HTMLRenderer struct{}

// Render implements Renderer. It never fails.
func (HTMLRenderer) Render(narrative string) (string, error) {
	return HTML(narrative), nil
}

// Passthrough returns the narrative unchanged.
type Passthrough struct{}

func (Passthrough) Render(narrative string) (string, error) {
	return narrative, nil
}
