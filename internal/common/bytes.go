package common

// WipeByteArray zeroes the buffer in place. Passwords read from the
// terminal go through here as soon as they are no longer needed.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
