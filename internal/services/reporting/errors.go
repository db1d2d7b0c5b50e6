package reporting

import "errors"

var (
	ErrNilConfig      = errors.New("config cannot be nil")
	ErrNilArchiveRepo = errors.New("archive repository cannot be nil")
	ErrNilMessaging   = errors.New("messaging service cannot be nil")
	ErrNilReport      = errors.New("report cannot be nil")
)
