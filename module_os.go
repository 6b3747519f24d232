// module_os.go
package nikl

import (
	"os"
)

// osModule builds the native `os` module: filesystem and environment
// facilities as an ordered map of builtins. Single-path functions validate
// only their first argument and ignore extras; the two-argument functions
// check arity strictly.
func osModule() *MapObject {
	m := &MapObject{}
	add := func(name string, fn func(args []Value) (Value, error)) {
		m.Entries = append(m.Entries, MapEntry{Key: Str(name), Val: BuiltinVal(&Builtin{Name: name, Fn: fn})})
	}

	add("get_cwd", func(_ []Value) (Value, error) {
		dir, err := os.Getwd()
		if err != nil {
			return Null, rtErrf("os.getcwd error: %v", err)
		}
		return Str(dir), nil
	})

	add("set_cwd", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("setcwd expects a string path")
		}
		if err := os.Chdir(path); err != nil {
			return Null, rtErrf("os.set_cwd error: %v", err)
		}
		return Null, nil
	})

	add("list_dir", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("listdir expects a string path")
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return Null, rtErrf("os.listdir error: %v", err)
		}
		names := make([]Value, 0, len(entries))
		for _, e := range entries {
			names = append(names, Str(e.Name()))
		}
		return Arr(names), nil
	})

	add("make_dir", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("mkdir expects a string path")
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return Null, rtErrf("os.mkdir error: %v", err)
		}
		return Null, nil
	})

	add("remove_dir", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("rmdir expects a string path")
		}
		if err := os.RemoveAll(path); err != nil {
			return Null, rtErrf("os.rmdir error: %v", err)
		}
		return Null, nil
	})

	add("remove_file", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("remove_file expects a string path")
		}
		if err := os.Remove(path); err != nil {
			return Null, rtErrf("os.remove_file error: %v", err)
		}
		return Null, nil
	})

	add("rename", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Null, rtErrf("rename expects 2 arguments: old_path, new_path")
		}
		if args[0].Tag != VTStr || args[1].Tag != VTStr {
			return Null, rtErrf("rename expects 2 string arguments")
		}
		if err := os.Rename(args[0].Data.(string), args[1].Data.(string)); err != nil {
			return Null, rtErrf("os.rename error: %v", err)
		}
		return Null, nil
	})

	add("exists", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("exists expects a string path")
		}
		_, err := os.Stat(path)
		return Bool(err == nil), nil
	})

	add("is_file", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("is_file expects a string path")
		}
		fi, err := os.Stat(path)
		return Bool(err == nil && fi.Mode().IsRegular()), nil
	})

	add("is_dir", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("is_dir expects a string path")
		}
		fi, err := os.Stat(path)
		return Bool(err == nil && fi.IsDir()), nil
	})

	add("read_file", func(args []Value) (Value, error) {
		path, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("read_file expects a string path")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Null, rtErrf("os.read_file error: %v", err)
		}
		return Str(string(data)), nil
	})

	add("write_file", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Null, rtErrf("write_file expects 2 arguments: path, content")
		}
		if args[0].Tag != VTStr || args[1].Tag != VTStr {
			return Null, rtErrf("write_file expects 2 string arguments")
		}
		if err := os.WriteFile(args[0].Data.(string), []byte(args[1].Data.(string)), 0o644); err != nil {
			return Null, rtErrf("os.write_file error: %v", err)
		}
		return Null, nil
	})

	add("env_get", func(args []Value) (Value, error) {
		key, ok := strArg0(args)
		if !ok {
			return Null, rtErrf("env_get expects a string key")
		}
		if v, set := os.LookupEnv(key); set {
			return Str(v), nil
		}
		return Null, nil
	})

	add("env_set", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return Null, rtErrf("env_set expects 2 arguments: key, value")
		}
		if args[0].Tag != VTStr || args[1].Tag != VTStr {
			return Null, rtErrf("env_set expects 2 string arguments")
		}
		if err := os.Setenv(args[0].Data.(string), args[1].Data.(string)); err != nil {
			return Null, rtErrf("os.env_set error: %v", err)
		}
		return Null, nil
	})

	return m
}

// strArg0 pulls a leading String argument; extra arguments are tolerated
// the way the single-path os functions always have.
func strArg0(args []Value) (string, bool) {
	if len(args) >= 1 && args[0].Tag == VTStr {
		return args[0].Data.(string), true
	}
	return "", false
}
