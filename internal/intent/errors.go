package intent

import "errors"

var (
	ErrEmptyCatalog      = errors.New("catalog has no intents")
	ErrEmptyTag          = errors.New("intent tag is empty")
	ErrDuplicateTag      = errors.New("duplicate intent tag")
	ErrUnknownTag        = errors.New("unknown intent tag")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrInvalidResponse   = errors.New("response must be a string or a book record")
)
