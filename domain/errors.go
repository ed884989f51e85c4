package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDataSource   = errors.New("data source error")
	ErrUserNotFound = errors.New("user not found")
)

// DataSourceError reports a dataset that is missing, unreadable or malformed.
type DataSourceError struct {
	Path string
	Op   string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %q: %s: %v", e.Path, e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}
