package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/build"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadCUE loads a catalog from a .cue file or a directory of them.
//
// The expected shape is:
//
//	table: Orders: {
//		name?: string            // SQL name, defaults to the label
//		aliases?: [...string]
//		columns: [...string] | {[string]: string}
//	}
func LoadCUE(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog: %v", err)}
	}

	var instances []*build.Instance
	if info.IsDir() {
		files, err := FindCUEFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(files) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
		}
		instances = load.Instances([]string{"."}, &load.Config{Dir: path})
	} else {
		instances = load.Instances([]string{filepath.Base(path)}, &load.Config{Dir: filepath.Dir(path)})
	}

	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, cueError(ErrCodeLoadFailed, inst.Err)
	}

	value := cuecontext.New().BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, cueError(ErrCodeBuildFailed, err)
	}
	return FromValue(value, path)
}

// FromValue builds a catalog from the "table" field of v.
func FromValue(v cue.Value, source string) (*Catalog, error) {
	tablesVal := v.LookupPath(cue.ParsePath("table"))
	if !tablesVal.Exists() {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "no tables found in catalog", Pos: v.Pos()}
	}

	iter, err := tablesVal.Fields()
	if err != nil {
		return nil, cueError(ErrCodeInvalidTable, err)
	}

	c := New()
	for iter.Next() {
		label := iter.Label()
		t, aliases, err := parseTable(label, iter.Value())
		if err != nil {
			return nil, err
		}
		t.Source = source
		c.Add(t)
		c.AddAlias(label, t.Name)
		for _, a := range aliases {
			c.AddAlias(a, t.Name)
		}
	}
	if c.Len() == 0 {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "no tables found in catalog", Pos: tablesVal.Pos()}
	}
	return c, nil
}

func parseTable(label string, v cue.Value) (Table, []string, error) {
	t := Table{Name: label}

	if nameVal := v.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return Table{}, nil, cueError(ErrCodeInvalidTable, err)
		}
		t.Name = name
	}

	var aliases []string
	if aliasVal := v.LookupPath(cue.ParsePath("aliases")); aliasVal.Exists() {
		list, err := stringList(aliasVal)
		if err != nil {
			return Table{}, nil, err
		}
		aliases = list
	}

	colsVal := v.LookupPath(cue.ParsePath("columns"))
	if !colsVal.Exists() {
		return t, aliases, nil
	}

	switch colsVal.IncompleteKind() {
	case cue.ListKind:
		names, err := stringList(colsVal)
		if err != nil {
			return Table{}, nil, err
		}
		for _, n := range names {
			t.Columns = append(t.Columns, Column{Name: n})
		}
	case cue.StructKind:
		fields, err := colsVal.Fields()
		if err != nil {
			return Table{}, nil, cueError(ErrCodeInvalidTable, err)
		}
		for fields.Next() {
			typ, err := fields.Value().String()
			if err != nil {
				return Table{}, nil, cueError(ErrCodeInvalidTable, err)
			}
			t.Columns = append(t.Columns, Column{Name: fields.Label(), Type: typ})
		}
	default:
		return Table{}, nil, &LoadError{
			Code:    ErrCodeInvalidTable,
			Message: fmt.Sprintf("table %s: columns must be a list or a struct, got %v", label, colsVal.IncompleteKind()),
			Pos:     colsVal.Pos(),
		}
	}
	return t, aliases, nil
}

func stringList(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, cueError(ErrCodeInvalidTable, err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, cueError(ErrCodeInvalidTable, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// FindCUEFiles walks dir and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
