// File: pkg/storage/azure/blobs.go
package azure

import (
	"context"
	"fmt"
	"io"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

func (a *AzureStorage) ListBlobs(ctx context.Context, fn func(storage.Blob) error) error {
	a.logger.Debug("Starting Azure ListBlobs operation")

	pager := a.container.NewListBlobsFlatPager(&container.ListBlobsFlatOptions{})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return a.opError("list", "", err)
		}

		for _, item := range page.Segment.BlobItems {
			if err := fn(mapBlobItem(item, a.containerName)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *AzureStorage) Upload(ctx context.Context, name string, r io.Reader) error {
	a.logger.Debug("Starting Azure Upload operation", "blob", name)

	if _, err := a.blobHandle(name).UploadStream(ctx, r, nil); err != nil {
		return a.opError("upload", name, err)
	}
	return nil
}

func (a *AzureStorage) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	a.logger.Debug("Starting Azure Download operation", "blob", name)

	resp, err := a.blobHandle(name).BlobClient().DownloadStream(ctx, nil)
	if err != nil {
		return nil, a.opError("download", name, err)
	}
	return resp.Body, nil
}

func (a *AzureStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := a.blobHandle(name).BlobClient().GetProperties(ctx, nil)
	if err == nil {
		return true, nil
	}
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return false, nil
	}
	return false, a.opError("exists", name, err)
}

func (a *AzureStorage) opError(op, name string, err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		err = fmt.Errorf("%w: %w", storage.ErrBlobNotFound, err)
	}
	return storage.NewOpError(op, common.Azure, a.containerName, name, err)
}

func mapBlobItem(item *container.BlobItem, containerName string) storage.Blob {
	blob := storage.Blob{
		Container: containerName,
		Provider:  common.Azure,
		Size:      -1,
	}
	if item == nil {
		return blob
	}
	if item.Name != nil {
		blob.Name = *item.Name
	}
	if props := item.Properties; props != nil {
		if props.ContentLength != nil {
			blob.Size = *props.ContentLength
		}
		if props.ContentType != nil {
			blob.ContentType = *props.ContentType
		}
		if props.LastModified != nil {
			blob.LastModified = *props.LastModified
		}
		if props.ETag != nil {
			blob.ETag = string(*props.ETag)
		}
	}
	return blob
}
