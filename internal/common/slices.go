package common

// Second drops the first of two results.
func Second[T any](_ any, t T) T { return t }

// Unpack2 returns the first two elements of the slice, zero values when missing.
func Unpack2[S ~[]T, T any](s S) (first T, second T) {
	switch len(s) {
	default:
		return s[0], s[1]
	case 0:
		return
	case 1:
		first = s[0]
		return
	}
}
