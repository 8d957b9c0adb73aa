package utils

// SafeDeref safely dereferences a string pointer and returns empty string if nil
func SafeDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeDerefInt32 dereferences an int32 pointer as int, returning 0 if nil
func SafeDerefInt32(n *int32) int {
	if n == nil {
		return 0
	}
	return int(*n)
}
