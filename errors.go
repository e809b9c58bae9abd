package qimdwt

import "errors"

var (
	ErrConfiguration    = errors.New("qimdwt: invalid configuration")
	ErrCapacityExceeded = errors.New("qimdwt: payload exceeds capacity")
	ErrFrame            = errors.New("qimdwt: truncated frame")
	ErrCorruptHeader    = errors.New("qimdwt: corrupt length header")
)
