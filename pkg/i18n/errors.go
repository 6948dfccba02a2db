package i18n

import "errors"

var (
	// Namespace resolution
	ErrNamespaceNotFound = errors.New("i18n: namespace not found")
	ErrInvalidNamespace  = errors.New("i18n: invalid namespace name")
	ErrInvalidLanguage   = errors.New("i18n: invalid language code")

	// Parsing
	ErrFailedToParseJSON = errors.New("i18n: failed to parse JSON translations")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML translations")
	ErrInvalidTree       = errors.New("i18n: translation document root must be a mapping")
	ErrParsingCancelled  = errors.New("i18n: parsing cancelled")

	// Sources
	ErrFetchCancelled     = errors.New("i18n: fetch cancelled")
	ErrFailedToRead       = errors.New("i18n: failed to read translation resource")
	ErrDocumentTooLarge   = errors.New("i18n: translation document too large")
	ErrUnexpectedStatus   = errors.New("i18n: unexpected HTTP status from translation source")
	ErrUnsupportedFormat  = errors.New("i18n: unsupported translation file format")
	ErrSourceAccessDenied = errors.New("i18n: access to translation source denied")
)
