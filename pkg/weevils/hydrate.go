package weevils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Hydrator turns the JSON of one record into the record.
type Hydrator[T any] func(data []byte) (*T, error)

// Validatable is satisfied by every resource record.
type Validatable interface {
	Validate() error
}

// ErrMissingResults is returned when a collection envelope has no results list.
var ErrMissingResults = errors.New("collection response has no results list")

// Hydrate decodes data into a T and checks that it, and every nested record,
// carries an id.
func Hydrate[T any, P interface {
	*T
	Validatable
}](data []byte) (*T, error) {
	var record T

	err := json.Unmarshal(data, &record)
	if err != nil {
		return nil, fmt.Errorf("decoding %T: %w", record, err)
	}

	err = P(&record).Validate()
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// HydrateList decodes a collection body. Both a bare JSON array and an
// object holding the array under "results" are accepted.
func HydrateList[T any](data []byte, hydrate Hydrator[T]) ([]T, error) {
	items, err := collectionItems(data)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(items))

	for i, item := range items {
		record, err := hydrate(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		records = append(records, *record)
	}

	return records, nil
}

func collectionItems(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)

	var items []json.RawMessage

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Results *[]json.RawMessage `json:"results"`
		}

		err := json.Unmarshal(trimmed, &envelope)
		if err != nil {
			return nil, fmt.Errorf("decoding collection: %w", err)
		}

		if envelope.Results == nil {
			return nil, ErrMissingResults
		}

		return *envelope.Results, nil
	}

	err := json.Unmarshal(trimmed, &items)
	if err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}

	return items, nil
}

// Hydrators for each resource kind.
var (
	HydrateGitHost    Hydrator[GitHost]    = Hydrate[GitHost]
	HydrateAccount    Hydrator[Account]    = Hydrate[Account]
	HydrateGitHostApp Hydrator[GitHostApp] = Hydrate[GitHostApp]
	HydrateRepository Hydrator[Repository] = Hydrate[Repository]
	HydrateBaseImage  Hydrator[BaseImage]  = Hydrate[BaseImage]
	HydrateWeevil     Hydrator[Weevil]     = Hydrate[Weevil]
	HydrateArtifact   Hydrator[Artifact]   = Hydrate[Artifact]
	HydrateJob        Hydrator[Job]        = Hydrate[Job]
	HydrateUser       Hydrator[User]       = Hydrate[User]
)
