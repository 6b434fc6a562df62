package models

import (
	"fmt"

	"github.com/desertthunder/discover/internal/shared"
)

// CredentialAcquisitionError reports that no access token could be obtained.
// Nothing is fetched without a token, so it is attached to every base section.
type CredentialAcquisitionError struct {
	Err error
}

func (e *CredentialAcquisitionError) Error() string {
	return fmt.Sprintf("%v: %v", shared.ErrCredentialAcquisition, e.Err)
}

func (e *CredentialAcquisitionError) Unwrap() error { return e.Err }

func (e *CredentialAcquisitionError) Is(target error) bool {
	return target == shared.ErrCredentialAcquisition
}

// SectionFetchError is scoped to one section and never affects its siblings.
type SectionFetchError struct {
	Section SectionKind
	Err     error
}

func (e *SectionFetchError) Error() string {
	return fmt.Sprintf("%v (%s): %v", shared.ErrSectionFetch, e.Section, e.Err)
}

func (e *SectionFetchError) Unwrap() error { return e.Err }

func (e *SectionFetchError) Is(target error) bool {
	return target == shared.ErrSectionFetch
}

// MalformedResponseError reports a response body that could not be decoded into catalog items.
type MalformedResponseError struct {
	Section SectionKind
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%v (%s): %v", shared.ErrMalformedResponse, e.Section, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool {
	return target == shared.ErrMalformedResponse
}
