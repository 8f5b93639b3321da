package jsonpath

import "sync"

var autoIDMu sync.RWMutex
var globalAutoIDField string

// SetAutoIDField sets the process-wide auto_id_field (spec §3 "Auto-id").
// Passing "" disables the feature. This is the "thin global shim" called
// for in spec.md §9; callers that want isolation per call should use
// Options with FindWithOptions instead (Update, Include and Exclude
// take no Options and always use this setting).
func SetAutoIDField(name string) {
	autoIDMu.Lock()
	defer autoIDMu.Unlock()
	globalAutoIDField = name
}

// AutoIDField returns the current process-wide auto_id_field.
func AutoIDField() string {
	autoIDMu.RLock()
	defer autoIDMu.RUnlock()
	return globalAutoIDField
}

// Options carries per-call evaluation configuration, as an alternative
// to the global mutable auto_id_field (spec §5 "Implementations MAY
// replace it with an explicit evaluation-options argument").
type Options struct {
	// AutoIDField overrides the process-wide setting for one call. The
	// zero value ("") means "use the global", matching Go's usual
	// zero-value-means-default convention; use Options{AutoIDField:
	// "-"} is not needed since an empty global already disables it.
	AutoIDField string
}

func (o *Options) autoIDField() string {
	if o != nil && o.AutoIDField != "" {
		return o.AutoIDField
	}
	return AutoIDField()
}
