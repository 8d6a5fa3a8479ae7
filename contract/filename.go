package contract

import (
	"path/filepath"
	"strings"

	"gofill/roster"
)

var separatorFold = strings.NewReplacer("/", "_", "\\", "_")

// Filename builds the output document path for one record inside dir:
// <name>_<surname><ext>, with noname and nosurname standing in for absent
// or empty fields. Path separators inside values become underscores so a
// record cannot address anything outside dir.
func Filename(rec roster.Record, dir, ext string) string {
	name := fieldOr(rec, "name", "noname")
	surname := fieldOr(rec, "surname", "nosurname")
	return filepath.Join(dir, name+"_"+surname+ext)
}

func fieldOr(rec roster.Record, key, fallback string) string {
	value := rec.GetString(key)
	if value == "" {
		return fallback
	}
	return separatorFold.Replace(value)
}
