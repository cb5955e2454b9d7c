package quota

import "errors"

// ErrFailedToLoadUsage wraps transport or driver failures while reading
// usage counters.
var ErrFailedToLoadUsage = errors.New("quota.failed_to_load_usage")
