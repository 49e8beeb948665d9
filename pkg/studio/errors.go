package studio

import "errors"

var (
	ErrStudioClosed    = errors.New("studio is closed")
	ErrUnknownEntry    = errors.New("unknown catalog entry")
	ErrUnknownElement  = errors.New("unknown element")
	ErrUnexpectedReply = errors.New("unexpected reply from storefront")
)
