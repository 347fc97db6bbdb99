// Package fieldgen generates typed field tags for target types from their
// getter methods, so specifications can avoid runtime accessor introspection.
package fieldgen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gabisonia/go-specification/criteria"
)

const criteriaImport = "github.com/gabisonia/go-specification/criteria"

// Getter is one getter method of a target type.
type Getter struct {
	Method string
	// Field is the exported struct field holding the tag.
	Field string
	// Name is the field identifier, as criteria.Getter would resolve it.
	Name string
}

// Target is a type and its getters in declaration order.
type Target struct {
	Type    string
	Getters []Getter
}

// Package is the parsed result for one directory.
type Package struct {
	Name    string
	Targets []Target
}

// Scan parses the non-test Go files in dir, skipping the file at path skip
// (the previous output), and collects the getters of each requested type.
func Scan(dir string, types []string, skip string, logger *slog.Logger) (*Package, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("list go files: %w", err)
	}
	sort.Strings(paths)

	fset := token.NewFileSet()
	pkg := &Package{}
	methods := make(map[string][]Getter, len(types))
	declared := make(map[string]bool, len(types))
	for _, name := range types {
		methods[name] = nil
	}

	for _, path := range paths {
		if strings.HasSuffix(path, "_test.go") || samePath(path, skip) {
			continue
		}
		file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if pkg.Name == "" {
			pkg.Name = file.Name.Name
		} else if pkg.Name != file.Name.Name {
			return nil, fmt.Errorf("%s declares package %s, expected %s", path, file.Name.Name, pkg.Name)
		}
		logger.Debug("parsed file", slog.String("path", path))

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				collectTypes(d, methods, declared)
			case *ast.FuncDecl:
				recv, getter, ok := getterOf(d)
				if !ok {
					continue
				}
				existing, wanted := methods[recv]
				if !wanted {
					continue
				}
				if hasField(existing, getter.Field) {
					logger.Warn("skipping getter with duplicate field",
						slog.String("type", recv),
						slog.String("method", getter.Method),
					)
					continue
				}
				methods[recv] = append(existing, getter)
				logger.Debug("found getter",
					slog.String("type", recv),
					slog.String("method", getter.Method),
					slog.String("field", getter.Name),
				)
			}
		}
	}
	if pkg.Name == "" {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}

	for _, name := range types {
		if !declared[name] {
			return nil, fmt.Errorf("type %s is not declared in %s", name, dir)
		}
		if len(methods[name]) == 0 {
			return nil, fmt.Errorf("type %s has no getter methods", name)
		}
		pkg.Targets = append(pkg.Targets, Target{Type: name, Getters: methods[name]})
	}
	return pkg, nil
}

func collectTypes(d *ast.GenDecl, wanted map[string][]Getter, declared map[string]bool) {
	if d.Tok != token.TYPE {
		return
	}
	for _, spec := range d.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		if _, ok := wanted[ts.Name.Name]; ok && ts.TypeParams == nil {
			declared[ts.Name.Name] = true
		}
	}
}

// getterOf reports whether d is a zero-argument, single-result method
// whose name follows the getter convention.
func getterOf(d *ast.FuncDecl) (recv string, getter Getter, ok bool) {
	if d.Recv == nil || len(d.Recv.List) != 1 {
		return "", Getter{}, false
	}
	if d.Type.Params != nil && d.Type.Params.NumFields() != 0 {
		return "", Getter{}, false
	}
	if d.Type.Results == nil || d.Type.Results.NumFields() != 1 {
		return "", Getter{}, false
	}

	expr := d.Recv.List[0].Type
	if star, isStar := expr.(*ast.StarExpr); isStar {
		expr = star.X
	}
	ident, isIdent := expr.(*ast.Ident)
	if !isIdent {
		return "", Getter{}, false
	}

	name, err := criteria.FieldNameFromMethod(d.Name.Name)
	if err != nil {
		return "", Getter{}, false
	}
	return ident.Name, Getter{Method: d.Name.Name, Field: exportName(name), Name: name}, true
}

func hasField(getters []Getter, field string) bool {
	for _, g := range getters {
		if g.Field == field {
			return true
		}
	}
	return false
}

func samePath(a, b string) bool {
	if b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return cases.Upper(language.Und).String(string(r)) + name[size:]
}

var fileTemplate = template.Must(template.New("fields").Parse(`// Code generated by fieldgen. DO NOT EDIT.

package {{.Name}}

import "` + criteriaImport + `"
{{range .Targets}}{{$type := .Type}}
// {{$type}}Fields holds the field tags of {{$type}}.
var {{$type}}Fields = struct {
{{- range .Getters}}
	{{.Field}} criteria.Field[{{$type}}]
{{- end}}
}{
{{- range .Getters}}
	{{.Field}}: criteria.Named[{{$type}}]({{printf "%q" .Name}}),
{{- end}}
}
{{end}}`))

// Render produces the gofmt'd source of the generated file.
func Render(pkg *Package) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, pkg); err != nil {
		return nil, fmt.Errorf("render fields: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// Run scans cfg.Dir and writes the generated file, returning its path.
func Run(cfg *Config, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	output := cfg.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(cfg.Dir, output)
	}

	pkg, err := Scan(cfg.Dir, cfg.Types, output, logger)
	if err != nil {
		return "", err
	}
	src, err := Render(pkg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", output, err)
	}
	logger.Info("generated field tags",
		slog.String("output", output),
		slog.Int("types", len(pkg.Targets)),
	)
	return output, nil
}
