package roster

// Validate checks that every required field is present in the record with a
// non-empty value. Field names are normalized before lookup, and missing
// names come back canonical, in the order required was supplied.
func Validate(rec Record, required []string) (bool, []string) {
	var missing []string
	for _, field := range required {
		name := NormalizeHeader(field)
		if isEmpty(rec[name]) {
			missing = append(missing, name)
		}
	}
	return len(missing) == 0, missing
}
