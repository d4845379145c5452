package sump

import "errors"

var (
	ErrTransport      = errors.New("sump: transport failure")
	ErrIdentification = errors.New("sump: device identification failed")
	ErrConfiguration  = errors.New("sump: invalid capture configuration")
	ErrMetadata       = errors.New("sump: malformed metadata stream")
)
