package digitalocean

import (
	"errors"
	"net/http"
	"strings"

	"github.com/digitalocean/godo"

	"github.com/imamik/dropvpn/internal/platform/cloud"
)

// classify maps a godo failure to a cloud error kind by HTTP status.
// Transport errors stay unclassified so callers may retry them.
func classify(op string, resp *godo.Response, err error) error {
	return cloud.Wrap(op, kindFor(statusOf(resp, err), messageOf(err)), err)
}

func kindFor(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return cloud.ErrAuth
	case status == http.StatusTooManyRequests:
		return cloud.ErrQuotaExceeded
	case status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(message), "already"):
		return cloud.ErrConflict
	case status == http.StatusUnprocessableEntity && strings.Contains(strings.ToLower(message), "limit"):
		return cloud.ErrQuotaExceeded
	case status == http.StatusUnprocessableEntity, status == http.StatusBadRequest, status == http.StatusNotFound:
		return cloud.ErrInvalidRequest
	default:
		return nil
	}
}

func statusOf(resp *godo.Response, err error) int {
	var errResp *godo.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	return 0
}

func messageOf(err error) string {
	var errResp *godo.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Message
	}
	return ""
}
