package runtime

// Utf8Length returns the number of bytes in the UTF-8 encoding of s. Go
// strings already carry UTF-8 bytes, so this is len(s); the function exists
// so generated length-prefix computations read as intent rather than as a
// string length.
func Utf8Length(s string) int {
	return len(s)
}

// WriteUtf8 writes the UTF-8 bytes of s. The written bytes are exactly the
// platform encoding of s.
func WriteUtf8(w WritableSequentialData, s string) error {
	_, err := w.WriteBytes([]byte(s))
	return err
}

// ReadUtf8 reads n bytes and decodes them as UTF-8.
func ReadUtf8(r ReadableSequentialData, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := r.ReadBytes(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
