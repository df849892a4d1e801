// internal/app/system/csvutil/limits.go
package csvutil

// File size and row limits for CSV processing.
const (
	MaxFileSize = 5 << 20 // 5 MB
	MaxRows     = 20000
)
