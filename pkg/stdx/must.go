package stdx

// Must0 panics when err is not nil. Use it for errors that can only mean a
// programming mistake, such as marshaling a value the caller constructed.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v, panicking when err is not nil. It collapses a
// (value, error) pair in places where the error cannot legitimately occur.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
