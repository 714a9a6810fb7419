package i18n

import "errors"

var (
	ErrNilLoader = errors.New("translation loader is nil")

	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrInvalidStructure  = errors.New("invalid translation structure")

	ErrUnsupportedFormat = errors.New("unsupported translation file format")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrFailedToReadDir   = errors.New("failed to read translation directory")
	ErrLoadingCancelled  = errors.New("loading translations cancelled")
	ErrEmptyLanguageCode = errors.New("empty language code")
)
