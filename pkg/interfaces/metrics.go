package interfaces

import "time"

// LibraryMetrics records scan, read and render outcomes. The result label is
// a short outcome code such as "ok", "not_found" or "forbidden".
type LibraryMetrics interface {
	ObserveScan(result string, duration time.Duration, folders, files int)
	IncrementRead(result string)
	IncrementRender(result string)
}
