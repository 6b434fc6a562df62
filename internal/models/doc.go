// Package models defines the catalog domain shared by the credential provider, the orchestrator and the presentation layer.
//
// The package contains:
//   - [CatalogItem] and [Image] : one displayable entry and its ordered image URLs
//   - [SectionKind] : the four catalog sections with their display metadata and [ImageKey]
//   - [Section] and [Snapshot] : the read-only view handed to presentation code
//   - [CredentialStatus] and [Status] : lifecycle tags for the credential and each section
//
// Errors captured at a section boundary are reported as [CredentialAcquisitionError], [SectionFetchError]
// or [MalformedResponseError]; each matches its shared sentinel with [errors.Is].
package models
