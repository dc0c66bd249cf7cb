// Command gridctl is the CLI for working with layout documents locally:
// validating, inspecting, extracting text and rendering without a running
// server.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dgallion1/gridgest/internal/editors"
	"github.com/dgallion1/gridgest/internal/layout"
	"github.com/dgallion1/gridgest/internal/render"
)

const version = "0.1.0"

// CLI defines the command-line interface for gridctl.
var CLI struct {
	Validate ValidateCmd `cmd:"" help:"Build a layout document and report whether it is well formed"`
	Inspect  InspectCmd  `cmd:"" help:"Print the layout tree structure"`
	Text     TextCmd     `cmd:"" help:"Print a layout's searchable text"`
	Controls ControlsCmd `cmd:"" help:"List a layout's controls, optionally filtered by editor"`
	Render   RenderCmd   `cmd:"" help:"Render a layout document to HTML"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("gridctl"),
		kong.Description("Inspect and render grid layout documents."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// buildFile parses a layout file with the built-in editors registered.
func buildFile(path string) (*layout.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	factory := layout.NewFactory()
	editors.Register(factory)
	return layout.Parse(f, factory)
}

// ValidateCmd builds the document and reports the outcome.
type ValidateCmd struct {
	Path string `arg:"" help:"Layout document file" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	doc, err := buildFile(c.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}
	status := "invalid (no meaningful content)"
	if doc.IsValid() {
		status = "valid"
	}
	fmt.Printf("%s: built ok, %d sections, %d controls, %s\n",
		c.Path, len(doc.Sections), len(doc.Controls()), status)
	return nil
}

// InspectCmd prints the tree structure.
type InspectCmd struct {
	Path string `arg:"" help:"Layout document file" type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	doc, err := buildFile(c.Path)
	if err != nil {
		return err
	}
	if doc.Name != "" {
		fmt.Printf("document %q\n", doc.Name)
	}
	for si, sec := range doc.Sections {
		fmt.Printf("section %d (grid %d)\n", si, sec.Grid)
		for _, row := range sec.Rows {
			name := row.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("  row %s id=%q valid=%v\n", name, row.ID, row.IsValid())
			for ai, area := range row.Areas {
				fmt.Printf("    area %d (grid %d)\n", ai, area.Grid)
				for _, ctrl := range area.Controls {
					fmt.Printf("      control editor=%q valid=%v\n", ctrl.Editor().Alias, ctrl.IsValid())
				}
			}
		}
	}
	return nil
}

// TextCmd prints searchable text.
type TextCmd struct {
	Path   string `arg:"" help:"Layout document file" type:"existingfile"`
	PerRow bool   `help:"Print one line per row instead of the concatenated document text"`
}

func (c *TextCmd) Run() error {
	doc, err := buildFile(c.Path)
	if err != nil {
		return err
	}
	if !c.PerRow {
		fmt.Println(doc.SearchableText())
		return nil
	}
	for _, sec := range doc.Sections {
		for _, row := range sec.Rows {
			if t := row.SearchableText(); t != "" {
				fmt.Printf("%s\t%s\n", row.ID, t)
			}
		}
	}
	return nil
}

// ControlsCmd lists controls as JSON lines.
type ControlsCmd struct {
	Path   string `arg:"" help:"Layout document file" type:"existingfile"`
	Editor string `help:"Only list controls with this exact editor alias"`
}

func (c *ControlsCmd) Run() error {
	doc, err := buildFile(c.Path)
	if err != nil {
		return err
	}
	controls := doc.Controls()
	if c.Editor != "" {
		controls = doc.ControlsByEditor(c.Editor)
	}
	enc := json.NewEncoder(os.Stdout)
	for _, ctrl := range controls {
		if err := enc.Encode(map[string]any{
			"editor": ctrl.Editor().Alias,
			"valid":  ctrl.IsValid(),
			"text":   ctrl.SearchableText(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// RenderCmd renders to HTML on stdout.
type RenderCmd struct {
	Path      string `arg:"" help:"Layout document file" type:"existingfile"`
	Templates string `help:"Directory of *.tmpl files layered over the built-in templates" type:"existingdir"`
}

func (c *RenderCmd) Run() error {
	doc, err := buildFile(c.Path)
	if err != nil {
		return err
	}
	var r *render.Renderer
	if c.Templates != "" {
		r, err = render.NewFromDir(c.Templates)
	} else {
		r, err = render.New()
	}
	if err != nil {
		return err
	}
	html, err := r.RenderDocument(doc)
	if err != nil {
		return err
	}
	fmt.Println(html)
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("gridctl %s\n", version)
	return nil
}
