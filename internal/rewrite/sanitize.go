package rewrite

import (
	"strings"

	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// pathQualifiedName builds a field's default new-name candidate: its
// vgroup path, slash segments joined by "_", followed by its original
// name (spec.md §3's "new_name (sanitized, path-qualified, clash-
// resolved)"). A field synthesized with no path keeps its bare name.
func pathQualifiedName(f *inventory.SdsField) string {
	if f.Path == "" {
		return f.Name
	}
	segs := strings.Split(strings.Trim(f.Path, "/"), "/")
	return strings.Join(segs, "_") + "_" + f.Name
}

// sanitize maps an arbitrary original name to a CF-legal form: any byte not
// in [A-Za-z0-9_] becomes '_', and a leading digit gets a '_' prefix
// (spec.md §4.3 step 4).
func sanitize(name string) string {
	if name == "" {
		return "_"
	}
	b := []byte(name)
	for i, c := range b {
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		default:
			b[i] = '_'
		}
	}
	if b[0] >= '0' && b[0] <= '9' {
		b = append([]byte{'_'}, b...)
	}
	return string(b)
}

// sanitizeNames applies sanitize to every SdsField name, every dimension
// name, every Vdata table/field name, and every attribute name in the
// catalog (spec.md §4.3 step 4).
func sanitizeNames(cat *inventory.Catalog) {
	for _, f := range cat.SDS {
		if f.NewName == "" {
			f.NewName = sanitize(pathQualifiedName(f))
		} else {
			f.NewName = sanitize(f.NewName)
		}
		for i := range f.Dims {
			f.Dims[i].Name = sanitize(f.Dims[i].Name)
		}
		sanitizeAttrs(&f.Attrs)
	}

	for _, v := range cat.Vdata {
		if v.NewName == "" {
			v.NewName = sanitize(v.Name)
		}
		for i := range v.Fields {
			if v.Fields[i].NewName == "" {
				v.Fields[i].NewName = sanitize(v.Fields[i].Name)
			}
			sanitizeAttrs(&v.Fields[i].Attrs)
		}
	}

	sanitizeAttrs(&cat.Global)
	for i := range cat.Vgroups {
		sanitizeAttrs(&cat.Vgroups[i])
	}
	for k, set := range cat.DimInfo {
		sanitizeAttrs(&set)
		cat.DimInfo[k] = set
	}
}

func sanitizeAttrs(set *inventory.AttributeSet) {
	for i := range set.Attrs {
		set.Attrs[i].Name = sanitize(set.Attrs[i].Name)
	}
}
