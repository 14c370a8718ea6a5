// File: pkg/storage/gcp/mappers.go
package gcp

import (
	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
)

// Maps GCP SDK object attributes to the domain model
func mapObjectAttributes(attrs *gcpstorage.ObjectAttrs) storage.Blob {
	if attrs == nil {
		return storage.Blob{Provider: common.GCP, Size: -1}
	}

	return storage.Blob{
		Name:         attrs.Name,
		Container:    attrs.Bucket,
		Provider:     common.GCP,
		Size:         attrs.Size,
		ContentType:  attrs.ContentType,
		LastModified: attrs.Updated,
		ETag:         attrs.Etag,
	}
}
