package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-insights/components/layout"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a widget template, preview stub, and manifest entry."`
}

type scaffoldCmd struct {
	Type         string   `required:"" help:"Widget type slug (e.g. revenue-kpi)."`
	Title        string   `required:"" help:"Display title for the widget."`
	Description  string   `required:"" help:"One-line description shown in the widget library."`
	Category     string   `default:"overview" help:"Library category (overview, audience, behavior, ecommerce, content, video)."`
	Size         string   `default:"medium" help:"Default size (small, medium, large, full)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the catalog manifest YAML file to update."`
	SchemaPath   string   `type:"path" help:"Optional path to a JSON schema file for the widget settings."`
	Tag          []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	PreviewOut   string   `help:"File path for the generated preview stub (defaults to components/layout/previews/<type>_preview.go)."`
	Overwrite    bool     `help:"Overwrite existing preview stub / manifest entry if present."`
	SkipPreview  bool     `name:"skip-preview" help:"Skip preview stub generation."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Widget scaffolding utility for go-insights catalog manifests."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("layoutctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Template.Type == cmd.Type {
				return fmt.Errorf("layoutctl: manifest already defines widget %s (use --overwrite to replace)", cmd.Type)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	entry := layout.ManifestTemplate{
		Template: layout.Template{
			Type:        cmd.Type,
			Title:       cmd.Title,
			Description: cmd.Description,
			Category:    cmd.Category,
			DefaultSize: layout.Size(cmd.Size),
			Schema:      schema,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Widgets {
			if doc.Widgets[idx].Template.Type == cmd.Type {
				doc.Widgets[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Widgets = append(doc.Widgets, entry)
		}
	} else {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Template.Type < doc.Widgets[j].Template.Type
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipPreview {
		fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Type, manifestPath)
		return nil
	}

	previewPath := cmd.PreviewOut
	if previewPath == "" {
		previewPath = filepath.Join("components", "layout", "previews", fmt.Sprintf("%s_preview.go", sanitizeFileName(cmd.Type)))
	}
	previewName := strcase.ToCamel(cmd.Type) + "Preview"
	if err := writePreviewStub(previewPath, previewName, cmd.Type, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s and generated %s\n", cmd.Type, manifestPath, previewPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !layout.Size(cmd.Size).Valid() {
		return fmt.Errorf("layoutctl: unknown size %s", cmd.Size)
	}
	if strings.TrimSpace(cmd.Type) == "" {
		return fmt.Errorf("layoutctl: widget type is required")
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("layoutctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("layoutctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*layout.CatalogManifest, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &layout.CatalogManifest{
				Version: layout.ManifestVersion,
				Widgets: []layout.ManifestTemplate{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("layoutctl: stat manifest: %w", err)
	}
	doc, err := layout.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *layout.CatalogManifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("layoutctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("layoutctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("layoutctl: write manifest: %w", err)
	}
	return nil
}

func writePreviewStub(path, previewName, widgetType string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("layoutctl: preview stub %s already exists (use --overwrite or --preview-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("layoutctl: mkdir preview dir: %w", err)
	}
	content := fmt.Sprintf(`package layout

import "context"

// %s renders the %s widget preview.
func %s(ctx context.Context, widget WidgetConfig, theme string) (string, error) {
	return "<div class=\"widget-preview\">replace with real markup</div>", nil
}
`, previewName, widgetType, previewName)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("layoutctl: write preview stub: %w", err)
	}
	return nil
}

func sanitizeFileName(code string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(code))
}
