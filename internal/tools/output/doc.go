// Package output prepares raw Kubernetes objects for display.
//
// Objects returned by the details endpoint and the get_resource tool go
// through two steps before they are encoded:
//
// Field Exclusion (Slim Output): removes verbose fields such as
// metadata.managedFields and the last-applied-configuration annotation.
//
// Secret Masking: never returns secret data - all values under data and
// stringData are replaced with "***REDACTED***". Keys stay visible.
//
// # Usage Example
//
//	format, err := output.ParseFormat(r.URL.Query().Get("format"))
//	if err != nil {
//		return err
//	}
//	body, err := output.RenderObject(obj, format, output.DefaultConfig())
package output
