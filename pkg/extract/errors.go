package extract

import "fmt"

// EmptyInputError reports that the submitted markup was blank after
// trimming. It fails fast, before any decoding or parsing.
type EmptyInputError struct{}

func (EmptyInputError) Error() string {
	return "extract: input markup is empty"
}

// FormNotFoundError reports that the parsed document contains no element
// matching the requested selector.
type FormNotFoundError struct {
	Selector string
}

func (e FormNotFoundError) Error() string {
	return fmt.Sprintf("extract: no form matched selector %q", e.Selector)
}
