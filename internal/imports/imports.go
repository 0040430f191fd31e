// Package imports discovers import edges for boundary checks: either by
// scanning Go sources or by reading a precomputed edge list.
package imports

import (
	"bufio"
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/papapumpkin/phase0/internal/boundary"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"vendor":       true,
	"testdata":     true,
	"node_modules": true,
}

// ModulePath reads the module path declared in root/go.mod.
func ModulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("reading go.mod: %w", err)
	}
	mod := modfile.ModulePath(data)
	if mod == "" {
		return "", fmt.Errorf("go.mod in %s declares no module path", root)
	}
	return mod, nil
}

// ScanGo walks root and returns one edge per import of a package inside
// modulePath. From is the importing file and To the imported package
// directory, both slash-separated and relative to root. Test files are
// included; the boundary policy's ignore list decides whether they count.
// Edges are sorted by From, then To.
func ScanGo(ctx context.Context, root, modulePath string) ([]boundary.Edge, error) {
	prefix := modulePath + "/"
	fset := token.NewFileSet()
	var edges []boundary.Edge

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != root && (skipDirs[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		from := filepath.ToSlash(rel)

		node, err := parser.ParseFile(fset, p, nil, parser.ImportsOnly)
		if err != nil {
			return fmt.Errorf("parsing imports in %s: %w", from, err)
		}
		for _, imp := range node.Imports {
			ip := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(ip, prefix) {
				continue
			}
			edges = append(edges, boundary.Edge{From: from, To: strings.TrimPrefix(ip, prefix)})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges, nil
}

// ReadEdges parses one edge per line as "from to", separated by spaces or
// tabs. Blank lines and lines starting with '#' are skipped.
func ReadEdges(r io.Reader) ([]boundary.Edge, error) {
	var edges []boundary.Edge
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want \"from to\", got %q", lineNo, line)
		}
		edges = append(edges, boundary.Edge{From: path.Clean(fields[0]), To: path.Clean(fields[1])})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading edges: %w", err)
	}
	return edges, nil
}
