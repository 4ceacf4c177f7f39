// Package cloudwriter stages fixture files in memory and uploads them to object storage.
package cloudwriter

import "io"

// CloudWriter buffers one object and uploads it on Close.
type CloudWriter interface {
	io.WriteCloser
}

// CloudWriterFactory opens a writer per object key inside a bucket.
type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
