package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hersac/umbral/internal/ast"
	"github.com/hersac/umbral/internal/lexer"
	"github.com/hersac/umbral/internal/parser"
	"github.com/hersac/umbral/internal/token"
)

// sourceExt is the conventional source extension used when probing
// filesystem candidates and package directories (spec §6 "the extension
// ... is a convention (e.g. .um) and does not affect semantics").
const sourceExt = ".um"

// StdlibInit, when set, is invoked on every module interpreter's Global
// environment (including this one's, by the caller) so the `Std` binding
// and pre-registered `Error` class are available identically in every
// module, main or imported. Kept as an injectable hook rather than a direct
// import of internal/stdlib to avoid a package cycle (stdlib constructs
// interp.Value instances and must import interp, not the reverse).
type StdlibInit func(env *Environment, registry *Registry)

func (i *Interpreter) execImport(d *ast.ImportDecl, env *Environment) {
	resolved, err := i.resolveModulePath(d.Path)
	if err != nil {
		i.Diag.Runtimef(d.Position, "module resolution failed for %q: %s", d.Path, err.Error())
		return
	}

	mod, ok := i.moduleCache[resolved]
	if !ok {
		src, readErr := os.ReadFile(resolved)
		if readErr != nil {
			i.Diag.Runtimef(d.Position, "cannot read module %q: %s", d.Path, readErr.Error())
			return
		}
		lx := lexer.New(string(src))
		ps := parser.New(lx, string(src))
		prog, perr := ps.ParseProgram()
		if perr != nil {
			i.Diag.Parsef(d.Position, "while parsing module %q: %s", d.Path, perr.Error())
			return
		}
		mod = New(filepath.Dir(resolved), i.Out, i.Diag)
		mod.StdlibInit = i.StdlibInit
		if mod.StdlibInit != nil {
			mod.StdlibInit(mod.Global, mod.Registry)
		}
		if runErr := mod.Run(prog); runErr != nil {
			i.Diag.Runtimef(d.Position, "module %q terminated with an uncaught exception: %s", d.Path, runErr.Error())
		}
		i.moduleCache[resolved] = mod
	}

	for _, item := range d.Items {
		i.projectImport(item, mod, env, d.Position)
	}
}

// resolveModulePath implements spec §4.3's two-branch resolution order.
func (i *Interpreter) resolveModulePath(path string) (string, error) {
	isFSPath := strings.Contains(path, "/") || strings.HasPrefix(path, "./") ||
		strings.HasPrefix(path, "../") || strings.HasSuffix(path, sourceExt)

	if isFSPath {
		candidates := []string{
			filepath.Join(i.BaseDir, path),
			filepath.Join(i.BaseDir, "modules_ump", path),
			filepath.Join(i.BaseDir, "modules_ump", path, "main"+sourceExt),
			filepath.Join(i.BaseDir, "modules_ump", path, "index"+sourceExt),
		}
		for _, c := range candidates {
			if fileExists(c) {
				return c, nil
			}
		}
		return "", fmt.Errorf("no candidate found for filesystem path %q", path)
	}

	dir := i.BaseDir
	for {
		candidates := []string{
			filepath.Join(dir, "modules_ump", path, "src", "main"+sourceExt),
			filepath.Join(dir, "modules_ump", path, "main"+sourceExt),
			filepath.Join(dir, "modules_ump", path, "index"+sourceExt),
		}
		for _, c := range candidates {
			if fileExists(c) {
				return c, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("package %q not found in any modules_ump directory", path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// projectImport binds one ImportItem's projection into env, per spec
// §4.3's four projection kinds.
func (i *Interpreter) projectImport(item ast.ImportItem, mod *Interpreter, env *Environment, pos token.Position) {
	switch item.Kind {
	case ast.ImportAll:
		for _, name := range sortedExports(mod) {
			bindName := name
			if item.Alias != "" {
				bindName = item.Alias + "_" + name
			}
			i.bindExport(name, bindName, mod, env, pos)
		}
	case ast.ImportOne:
		bindName := item.Name
		if item.Alias != "" {
			bindName = item.Alias
		}
		i.bindExport(item.Name, bindName, mod, env, pos)
	case ast.ImportModule:
		d := NewDict()
		for _, name := range sortedExports(mod) {
			if v, ok := mod.Global.Get(name); ok {
				d.Set(name, v)
				continue
			}
			syntheticKey := item.Name + "_" + name
			if c, ok := mod.Registry.Classes[name]; ok {
				i.Registry.Classes[syntheticKey] = c
				d.Set(name, &ClassRefValue{Class: c})
				continue
			}
			if in, ok := mod.Registry.Interfaces[name]; ok {
				i.Registry.Interfaces[syntheticKey] = in
				continue
			}
			if en, ok := mod.Registry.Enums[name]; ok {
				i.Registry.Enums[syntheticKey] = en
			}
		}
		env.Define(item.Name, d, false)
	case ast.ImportList:
		for _, sub := range item.Items {
			i.projectImport(sub, mod, env, pos)
		}
	}
}

// bindExport copies one exported name from mod into env/registry under
// bindName. Unexported or missing names produce a warning and no binding,
// per spec §4.3's final paragraph.
func (i *Interpreter) bindExport(name, bindName string, mod *Interpreter, env *Environment, pos token.Position) {
	if !mod.Exports[name] {
		i.Diag.Runtimef(pos, "module has no exported name %q", name)
		return
	}
	found := false
	if v, ok := mod.Global.Get(name); ok {
		env.Define(bindName, v, false)
		found = true
	}
	if c, ok := mod.Registry.Classes[name]; ok {
		i.Registry.Classes[bindName] = c
		found = true
	}
	if in, ok := mod.Registry.Interfaces[name]; ok {
		i.Registry.Interfaces[bindName] = in
		found = true
	}
	if en, ok := mod.Registry.Enums[name]; ok {
		i.Registry.Enums[bindName] = en
		found = true
	}
	if !found {
		i.Diag.Runtimef(pos, "module has no exported name %q", name)
	}
}

func sortedExports(mod *Interpreter) []string {
	names := make([]string, 0, len(mod.Exports))
	for n := range mod.Exports {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
