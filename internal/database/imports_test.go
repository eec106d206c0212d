package database_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// moduleFiles parses the package clause and imports of every non-test Go
// file in the module outside *test helper packages.
func moduleFiles(t *testing.T) map[string]*ast.File {
	t.Helper()
	root := filepath.Join("..", "..")
	fset := token.NewFileSet()
	files := make(map[string]*ast.File)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || strings.HasSuffix(name, "test")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		files[path] = file
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}

func TestProductionCodeDoesNotImportTesting(t *testing.T) {
	for path, file := range moduleFiles(t) {
		for _, imp := range file.Imports {
			imported, _ := strconv.Unquote(imp.Path.Value)
			assert.NotEqual(t, "testing", imported, "%s imports testing", path)
		}
	}
}

func TestPackagesDoNotShadowSync(t *testing.T) {
	for path, file := range moduleFiles(t) {
		assert.NotEqual(t, "sync", file.Name.Name, "%s declares package sync", path)
	}
}
