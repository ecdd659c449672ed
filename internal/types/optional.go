package types

// Optional is either a present value or absent. Renderers resolve it to a
// formatted line or to an empty placeholder so fixed-arity LaTeX commands
// always receive the same number of arguments.
type Optional struct {
	value   string
	present bool
}

// Present wraps a value that exists in the source.
func Present(v string) Optional {
	return Optional{value: v, present: true}
}

// Absent is the missing value.
func Absent() Optional {
	return Optional{}
}

// IsPresent reports whether the value exists.
func (o Optional) IsPresent() bool {
	return o.present
}

// Value returns the wrapped value and whether it is present.
func (o Optional) Value() (string, bool) {
	return o.value, o.present
}

// OrElse returns the value or def when absent.
func (o Optional) OrElse(def string) string {
	if o.present {
		return o.value
	}
	return def
}
