package segment

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnrecognizedCharacter is matched by *UnrecognizedCharacterError.
// ErrUnterminatedBracketSpan is matched by *UnterminatedBracketError.
// ErrInputTooLong is matched by *InputTooLongError.
// ErrNoInventory and ErrUnknownHandlingUnset are returned by NewSegmenter.
var (
	ErrUnrecognizedCharacter   = errors.New("segmenter: character not recognized")
	ErrUnterminatedBracketSpan = errors.New("segmenter: unterminated bracket span")
	ErrInputTooLong            = errors.New("segmenter: input too long")
	ErrNoInventory             = errors.New("segmenter: no inventory given")
	ErrUnknownHandlingUnset    = errors.New("segmenter: handling of unknown characters must be strict or lenient")
)

// UnrecognizedCharacterError reports a character which is neither a unit of
// the inventory nor covered by a structural rule. Offsets refer to the
// transcription after case folding and normalization (see
// inventory.Prepare); they are equal to offsets in the raw input for
// inventories which do neither.
type UnrecognizedCharacterError struct {
	Char       rune // the offending character
	Offset     int  // position in code-points
	ByteOffset int  // position in bytes
}

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("segmenter: next character not recognized: %#U at offset %d",
		e.Char, e.Offset)
}

// Is makes the error match ErrUnrecognizedCharacter.
func (e *UnrecognizedCharacterError) Is(target error) bool {
	return target == ErrUnrecognizedCharacter
}

func (e *UnrecognizedCharacterError) offsetString() string {
	return strconv.Itoa(e.Offset)
}

// UnterminatedBracketError reports a bracket opener without a closer. It is
// a warning: segmenting stops at the bracket, but all units before it are
// valid.
type UnterminatedBracketError struct {
	Open       string // the bracket opener
	Offset     int    // position of the opener in code-points
	ByteOffset int    // position of the opener in bytes
}

func (e *UnterminatedBracketError) Error() string {
	return fmt.Sprintf("segmenter: bracket %q at offset %d is never closed", e.Open, e.Offset)
}

// Is makes the error match ErrUnterminatedBracketSpan.
func (e *UnterminatedBracketError) Is(target error) bool {
	return target == ErrUnterminatedBracketSpan
}

// InputTooLongError is returned for transcriptions exceeding the maximum
// input size of a segmenter.
type InputTooLongError struct {
	Size, Max int
}

func (e *InputTooLongError) Error() string {
	return fmt.Sprintf("segmenter: input of %d bytes exceeds maximum of %d", e.Size, e.Max)
}

// Is makes the error match ErrInputTooLong.
func (e *InputTooLongError) Is(target error) bool {
	return target == ErrInputTooLong
}

// IsWarning is true for errors which leave a usable segmentation result,
// i.e. unterminated bracket spans.
func IsWarning(err error) bool {
	return err != nil && errors.Is(err, ErrUnterminatedBracketSpan)
}
