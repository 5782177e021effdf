package client

import (
	"bytes"
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/weevils-io/weevils-go/internal/constants"
	"github.com/weevils-io/weevils-go/internal/http"
	"github.com/weevils-io/weevils-go/pkg/weevils"
)

// outcome is what an operation expects a successful response to carry.
type outcome int

const (
	outcomeOne outcome = iota
	outcomeMany
	outcomeNoContent
)

// failureKinds maps every status with a defined meaning to its error kind.
// Statuses absent from the table are unhandled.
var failureKinds = map[int]weevils.ErrorKind{
	nethttp.StatusConflict:            weevils.KindWriteConflict,
	nethttp.StatusNotFound:            weevils.KindEntityNotFound,
	nethttp.StatusBadRequest:          weevils.KindBadRequest,
	nethttp.StatusForbidden:           weevils.KindActionDisallowed,
	nethttp.StatusUnauthorized:        weevils.KindNotAuthenticated,
	nethttp.StatusInternalServerError: weevils.KindServiceProcessing,
	nethttp.StatusBadGateway:          weevils.KindServiceUnavailable,
	nethttp.StatusServiceUnavailable:  weevils.KindServiceUnavailable,
	nethttp.StatusGatewayTimeout:      weevils.KindServiceUnavailable,
}

// target names what a request looks up, for not-found errors.
type target struct {
	resource weevils.Kind
	key      string
}

// decide applies the status table to resp. It returns nil when resp is a
// success of the expected shape.
func decide(resp *http.Response, want outcome, lookup target) error {
	switch resp.StatusCode {
	case nethttp.StatusOK, nethttp.StatusCreated:
		if want == outcomeNoContent {
			return unhandled(resp, nil)
		}

		first := firstByte(resp.Body)
		if want == outcomeOne && first != '{' {
			return unhandled(resp, nil)
		}

		if want == outcomeMany && first != '[' && first != '{' {
			return unhandled(resp, nil)
		}

		return nil
	case nethttp.StatusNoContent:
		if want != outcomeNoContent {
			return unhandled(resp, nil)
		}

		return nil
	}

	kind, ok := failureKinds[resp.StatusCode]
	if !ok {
		return unhandled(resp, nil)
	}

	respErr := weevils.NewResponseError(kind, resp.StatusCode, resp.Method, resp.Path, resp.Body)
	if kind == weevils.KindEntityNotFound {
		respErr.Resource = lookup.resource
		respErr.Key = lookup.key
	}

	return respErr
}

// unhandled reports a response the library has no outcome for. cause, when
// set, is the decoding failure that made it so.
func unhandled(resp *http.Response, cause error) error {
	respErr := weevils.NewResponseError(weevils.KindUnhandledResponse, resp.StatusCode, resp.Method, resp.Path, resp.Body)
	if cause == nil {
		return respErr
	}

	return fmt.Errorf("%w: %w", respErr, cause)
}

func firstByte(body []byte) byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return 0
	}

	return trimmed[0]
}

func (s *session) send(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	return s.transport.Do(ctx, &http.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
		Auth:   s.credentials,
	})
}

func getOne[T any](ctx context.Context, s *session, path string, query url.Values, hydrate weevils.Hydrator[T], lookup target) (*T, error) {
	resp, err := s.send(ctx, nethttp.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	return one(resp, hydrate, lookup)
}

func getMany[T any](ctx context.Context, s *session, path string, query url.Values, hydrate weevils.Hydrator[T]) ([]T, error) {
	resp, err := s.send(ctx, nethttp.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	err = decide(resp, outcomeMany, target{})
	if err != nil {
		return nil, err
	}

	records, err := weevils.HydrateList(resp.Body, hydrate)
	if err != nil {
		return nil, unhandled(resp, err)
	}

	return records, nil
}

func create[T any](ctx context.Context, s *session, path string, body interface{}, hydrate weevils.Hydrator[T]) (*T, error) {
	resp, err := s.send(ctx, nethttp.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}

	return one(resp, hydrate, target{})
}

func update[T any](ctx context.Context, s *session, path string, body interface{}, hydrate weevils.Hydrator[T], lookup target) (*T, error) {
	resp, err := s.send(ctx, nethttp.MethodPatch, path, nil, body)
	if err != nil {
		return nil, err
	}

	return one(resp, hydrate, lookup)
}

func remove(ctx context.Context, s *session, path string, lookup target) (bool, error) {
	resp, err := s.send(ctx, nethttp.MethodDelete, path, nil, nil)
	if err != nil {
		return false, err
	}

	err = decide(resp, outcomeNoContent, lookup)
	if err != nil {
		return false, err
	}

	return true, nil
}

func one[T any](resp *http.Response, hydrate weevils.Hydrator[T], lookup target) (*T, error) {
	err := decide(resp, outcomeOne, lookup)
	if err != nil {
		return nil, err
	}

	record, err := hydrate(resp.Body)
	if err != nil {
		return nil, unhandled(resp, err)
	}

	return record, nil
}

// findBySlug lists path filtered by slug and returns the first match. No
// match is reported as a not-found error.
func findBySlug[T any](ctx context.Context, s *session, path, slug string, hydrate weevils.Hydrator[T], resource weevils.Kind) (*T, error) {
	query := url.Values{}
	query.Set("slug", slug)

	resp, err := s.send(ctx, nethttp.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	lookup := target{resource: resource, key: slug}

	err = decide(resp, outcomeMany, lookup)
	if err != nil {
		return nil, err
	}

	records, err := weevils.HydrateList(resp.Body, hydrate)
	if err != nil {
		return nil, unhandled(resp, err)
	}

	if len(records) == 0 {
		return nil, &weevils.ResponseError{
			Kind:       weevils.KindEntityNotFound,
			StatusCode: resp.StatusCode,
			Method:     resp.Method,
			Path:       resp.Path,
			Body:       resp.Body,
			Resource:   resource,
			Key:        slug,
		}
	}

	return &records[0], nil
}

// pageQuery returns the offset and limit parameters of page.
func pageQuery(page weevils.Page) url.Values {
	limit := page.Limit
	if limit <= 0 {
		limit = constants.DefaultLimit
	}

	offset := page.Offset
	if offset < 0 {
		offset = constants.DefaultOffset
	}

	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	return query
}

// setID adds key=id to query unless id is nil.
func setID(query url.Values, key string, id uuid.UUID) {
	if id != uuid.Nil {
		query.Set(key, id.String())
	}
}

func idQuery(key string, id uuid.UUID) url.Values {
	query := url.Values{}
	setID(query, key, id)

	return query
}
