package matching

import "errors"

// ErrNilJob is returned when a ranking pass is requested without a job.
var ErrNilJob = errors.New("matching: job posting is nil")
