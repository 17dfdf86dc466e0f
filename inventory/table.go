package inventory

import (
	"fmt"
	"io"

	"github.com/npillmayer/phonseg"
	"github.com/npillmayer/phonseg/internal/tableparse"
)

// ReadTable reads units from an inventory table into a builder.
//
// Tables list one unit per line, followed by its category. Bracket openers
// name their closer in a third field:
//
//    # literal ; category [; closer]
//    tɕʰ       ; phoneme
//    ˧˥        ; tone
//    U+0020    ; whitespace
//    [         ; bracket-open ; ]
//
// Literals which cannot be written verbatim are given in U+XXXX notation.
// Closers named by a bracket opener are entered implicitly. ReadTable returns
// syntax errors; collisions are reported by Build().
func ReadTable(r io.Reader, b *Builder) error {
	return tableparse.Parse(r, func(token *tableparse.Token) error {
		cat, err := phonseg.ParseCategory(token.Field(2))
		if err != nil {
			return err
		}
		switch cat {
		case phonseg.BracketOpen:
			if token.Field(3) == "" {
				return fmt.Errorf("%w: %q", ErrUnpairedBracket, token.Literal)
			}
			closer, err := tableparse.DecodeLiteral(token.Field(3))
			if err != nil {
				return err
			}
			b.AddBracket(token.Literal, closer)
		default:
			b.Add(cat, token.Literal)
		}
		return nil
	})
}
