package panicerr

// Recover calls f, converting any panic raised while it runs into a non-nil
// error return. The call happens on the caller's goroutine; an error value
// passed to panic stays reachable through errors.Unwrap.
func Recover(name string, f func() error) (err error) {
	defer recoverPanicError(name, &err)
	return f()
}
