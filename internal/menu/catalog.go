package menu

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Action string

const (
	ActionReply   Action = "reply"
	ActionContact Action = "contact"
	ActionCancel  Action = "cancel"
)

// Item is one menu button and what pressing it does.
type Item struct {
	Label  string `yaml:"label"`
	Action Action `yaml:"action"`
	Reply  string `yaml:"reply"`
}

// URLs fill the links in the canned replies.
type URLs struct {
	SiteURL   string
	AlbumsURL string
}

type catalogFile struct {
	Greeting string     `yaml:"greeting"`
	Fallback string     `yaml:"fallback"`
	Layout   [][]string `yaml:"layout"`
	Items    []Item     `yaml:"items"`
}

type Catalog struct {
	fallback string
	layout   [][]string
	items    map[string]Item
	greeting *template.Template
}

// Default loads the catalog compiled into the binary.
func Default(urls URLs) (*Catalog, error) {
	return Parse(defaultCatalog, urls)
}

func Parse(data []byte, urls URLs) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse menu catalog: %w", err)
	}

	greeting, err := template.New("greeting").Option("missingkey=error").Parse(f.Greeting)
	if err != nil {
		return nil, fmt.Errorf("greeting template: %w", err)
	}

	c := &Catalog{
		fallback: f.Fallback,
		layout:   f.Layout,
		items:    make(map[string]Item, len(f.Items)),
		greeting: greeting,
	}

	contacts := 0
	for _, it := range f.Items {
		if it.Action == "" {
			it.Action = ActionReply
		}
		if _, dup := c.items[it.Label]; dup {
			return nil, fmt.Errorf("menu item %q defined twice", it.Label)
		}

		switch it.Action {
		case ActionReply:
			if it.Reply == "" {
				return nil, fmt.Errorf("menu item %q has no reply", it.Label)
			}
			it.Reply, err = render(it.Label, it.Reply, urls)
			if err != nil {
				return nil, err
			}
		case ActionContact:
			contacts++
		case ActionCancel:
		default:
			return nil, fmt.Errorf("menu item %q: unknown action %q", it.Label, it.Action)
		}

		c.items[it.Label] = it
	}
	if contacts != 1 {
		return nil, fmt.Errorf("menu needs exactly one contact item, got %d", contacts)
	}

	shown := 0
	for _, row := range f.Layout {
		for _, label := range row {
			if _, ok := c.items[label]; !ok {
				return nil, fmt.Errorf("layout label %q has no menu item", label)
			}
			shown++
		}
	}
	if shown != len(c.items) {
		return nil, fmt.Errorf("layout shows %d buttons for %d items", shown, len(c.items))
	}

	return c, nil
}

func render(name, text string, urls URLs) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("menu item %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, urls); err != nil {
		return "", fmt.Errorf("menu item %q: %w", name, err)
	}
	return buf.String(), nil
}

// Lookup matches a label exactly.
func (c *Catalog) Lookup(label string) (Item, bool) {
	it, ok := c.items[label]
	return it, ok
}

func (c *Catalog) Layout() [][]string {
	return c.layout
}

func (c *Catalog) Fallback() string {
	return c.fallback
}

// Greeting renders the /start text. firstName must already be escaped
// for the parse mode the text is sent with.
func (c *Catalog) Greeting(firstName string) (string, error) {
	var buf bytes.Buffer
	if err := c.greeting.Execute(&buf, struct{ FirstName string }{firstName}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
