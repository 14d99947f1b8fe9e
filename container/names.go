package container

import (
	"path"
	"strings"
)

// normalizeName converts a part name to its lookup key.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "/")
	return strings.ToLower(name)
}

// cleanName strips the leading slash while keeping the original case.
func cleanName(name string) string {
	return strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/")
}

// relsName returns the relationships part for source. The empty source
// names the package itself.
func relsName(source string) string {
	source = cleanName(source)
	if source == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget resolves an internal relationship target against the
// directory of its source part.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)[1:]
	}
	base := path.Dir("/" + cleanName(source))
	return path.Join(base, target)[1:]
}
