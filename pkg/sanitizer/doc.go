// Package sanitizer provides composable string transforms for cleaning user
// input before validation.
//
//	clean := sanitizer.Compose(sanitizer.StripHTML, sanitizer.SingleLine, sanitizer.Trim)
//	name := clean(in.Name)
package sanitizer
