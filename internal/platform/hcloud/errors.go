package hcloud

import (
	"errors"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// classify maps an hcloud API error to a cloud error kind.
func classify(op string, err error) error {
	return cloud.Wrap(op, kindFor(err), err)
}

func kindFor(err error) error {
	switch {
	case isHCloudErrorCode(err, hcloud.ErrorCodeUnauthorized, hcloud.ErrorCodeForbidden):
		return cloud.ErrAuth
	case isHCloudErrorCode(err, hcloud.ErrorCodeResourceLimitExceeded, hcloud.ErrorCodeRateLimitExceeded):
		return cloud.ErrQuotaExceeded
	case isHCloudErrorCode(err, hcloud.ErrorCodeUniquenessError):
		return cloud.ErrConflict
	case isHCloudErrorCode(err,
		hcloud.ErrorCodeInvalidInput,
		hcloud.ErrorCodeNotFound,
		hcloud.ErrorCodeInvalidServerType,
	):
		return cloud.ErrInvalidRequest
	default:
		return nil
	}
}

// isHCloudErrorCode checks if the error is an hcloud API error with one of the given codes.
func isHCloudErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}

	var hcloudErr hcloud.Error
	if errors.As(err, &hcloudErr) {
		for _, code := range codes {
			if hcloudErr.Code == code {
				return true
			}
		}
	}
	return false
}
