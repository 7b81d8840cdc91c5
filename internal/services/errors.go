package services

import "errors"

var (
	ErrEmptyDocument      = errors.New("empty_document")
	ErrDocumentNotFound   = errors.New("document_not_found")
	ErrNotQuotation       = errors.New("not_a_quotation")
	ErrMalformedNumber    = errors.New("malformed_document_number")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidType        = errors.New("invalid_document_type")
	ErrWorkerNotFound     = errors.New("worker_not_found")
	ErrItemNotFound       = errors.New("item_not_found")
	ErrServiceNotFound    = errors.New("service_not_found")
	ErrLineItemIndex      = errors.New("line_item_out_of_range")
	ErrUnknownField       = errors.New("unknown_line_item_field")
	ErrInvalidValue       = errors.New("invalid_value")
	ErrUnknownSource      = errors.New("unknown_catalog_source")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)
