package summarize

import "fmt"

// Style selects the summary voice.
type Style string

const (
	StyleAbstractive Style = "abstractive"
	StyleExtractive  Style = "extractive"
	StyleBullets     Style = "bullets"
)

// Length selects how long the summary should be.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Options are the caller-facing summarization knobs. Zero values mean
// "use the default".
type Options struct {
	Style  Style
	Length Length
	Focus  string
}

// InvalidOptionError reports which option field failed validation.
type InvalidOptionError struct {
	Field string
	Value string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// ParseOptions normalizes raw option strings. Empty style defaults to
// abstractive and empty length to medium. "detailed" is accepted as an
// alias for long.
func ParseOptions(style, length, focus string) (Options, error) {
	opts := Options{Focus: focus}

	switch Style(style) {
	case "", StyleAbstractive:
		opts.Style = StyleAbstractive
	case StyleExtractive:
		opts.Style = StyleExtractive
	case StyleBullets:
		opts.Style = StyleBullets
	default:
		return Options{}, &InvalidOptionError{Field: "type", Value: style}
	}

	switch Length(length) {
	case "", LengthMedium:
		opts.Length = LengthMedium
	case LengthShort:
		opts.Length = LengthShort
	case LengthLong, Length("detailed"):
		opts.Length = LengthLong
	default:
		return Options{}, &InvalidOptionError{Field: "length", Value: length}
	}

	return opts, nil
}
