// modules.go — NIKL module system.
//
// `import "path" as alias` resolves in two stages:
//
//  1. Builtin table. A fixed set of native modules (`os`, `regex`) is
//     constructed in-process; each import gets its own instance.
//  2. Filesystem. The path is joined onto the importing file's directory
//     (the script dir for the entry script, the module's own dir for
//     nested imports) and canonicalized to an absolute cleaned path, which
//     is also the identity used for re-import detection.
//
// A file module runs to completion in a nested interpreter with a fresh
// builtin-seeded environment. The loaded-path set is copied by value into
// that interpreter — the copy carries the module being loaded, so import
// cycles bottom out as no-ops, and sibling imports never observe each
// other's cache. After the body runs, the module's visible bindings are
// flattened into an ordered HashMap (nearest frame wins, names sorted
// within a frame) and bound immutably under the alias. A path only enters
// the importer's own cache once its body and alias bind have succeeded;
// a failed import can be retried.
//
// Re-importing an already-canonicalized path is a silent no-op: the body
// does not run again and the alias is not bound.
package nikl

import (
	"os"
	"path/filepath"
	"sort"
)

// builtinModules maps native module names to their constructors. Checked
// before any filesystem resolution, so a file literally named "os" in the
// script directory is not importable under that name.
var builtinModules = map[string]func() *MapObject{
	"os":    osModule,
	"regex": regexModule,
}

func (ip *Interpreter) importModule(st *ImportStatement) error {
	if mk, ok := builtinModules[st.Path]; ok {
		return ip.env.Define(st.Alias, MapVal(mk()), false)
	}

	base := ip.scriptDir
	if base == "" {
		base = "."
	}
	canon, err := filepath.Abs(filepath.Join(base, st.Path))
	if err != nil {
		return rtErrf("Cannot import '%s': %v", st.Path, err)
	}

	if ip.loaded[canon] {
		return nil
	}

	src, err := os.ReadFile(canon)
	if err != nil {
		return rtErrf("Cannot import '%s': %v", st.Path, err)
	}
	stmts, err := ParseSource(string(src))
	if err != nil {
		return rtErrf("Error in module '%s': %v", st.Path, err)
	}

	sub := NewInterpreter()
	sub.stdout = ip.stdout
	sub.stdin = ip.stdin
	sub.scriptDir = filepath.Dir(canon)
	// The nested copy carries the module being loaded so import cycles
	// bottom out; the importer's own cache is only committed below, once
	// the body and the alias bind have succeeded. A failed import stays
	// uncached and can be retried on the next line.
	sub.loaded = make(map[string]bool, len(ip.loaded)+1)
	for p := range ip.loaded {
		sub.loaded[p] = true
	}
	sub.loaded[canon] = true

	if _, err := sub.Interpret(stmts); err != nil {
		return err
	}

	if err := ip.env.Define(st.Alias, MapVal(flattenEnvToMap(sub.env)), false); err != nil {
		return err
	}
	ip.loaded[canon] = true
	return nil
}

// flattenEnvToMap exports every visible binding of an environment chain as
// an ordered map: frames inner to outer, names sorted within each frame,
// shadowed outer names skipped. Sorting keeps the export order stable
// across runs (Go map iteration is randomized).
func flattenEnvToMap(e *Env) *MapObject {
	out := &MapObject{}
	seen := map[string]bool{}
	for cur := e; cur != nil; cur = cur.parent {
		names := make([]string, 0, len(cur.table))
		for n := range cur.table {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if seen[n] {
				continue
			}
			seen[n] = true
			out.Entries = append(out.Entries, MapEntry{Key: Str(n), Val: cur.table[n].val})
		}
	}
	return out
}
