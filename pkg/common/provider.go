// File: pkg/common/provider.go
package common

type Provider string

const (
	Azure   Provider = "Azure"
	GCP     Provider = "GCP"
	AWS     Provider = "AWS"
	GoCloud Provider = "GoCloud"
)
