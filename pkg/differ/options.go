package differ

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithIgnoredFields sets fields to ignore during comparison.
// Field names are the JSON names of the record ("notes", "tags").
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// WithMaxValueLength truncates old and new values longer than n in field changes.
// Zero disables truncation.
func WithMaxValueLength(n int) Option {
	return func(d *differ) {
		d.maxValueLen = n
	}
}
