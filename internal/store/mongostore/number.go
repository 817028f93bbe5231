package mongostore

import (
	"fmt"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/pageza/recipebook/backend/internal/model"
)

// looseNumber is a numeric field that older documents may hold as a
// string, as an integer, or not at all. It is always written as a double.
type looseNumber float64

// UnmarshalBSONValue implements bson.ValueUnmarshaler. Blank, unparsable
// and non-finite values decode to 0 so one bad document cannot break a
// whole listing.
func (n *looseNumber) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	var f float64
	switch t {
	case bsontype.Double:
		f = raw.Double()
	case bsontype.Int32:
		f = float64(raw.Int32())
	case bsontype.Int64:
		f = float64(raw.Int64())
	case bsontype.Decimal128:
		parsed, err := model.ParseNumber(raw.Decimal128().String())
		if err == nil {
			f = parsed
		}
	case bsontype.String:
		if s := strings.TrimSpace(raw.StringValue()); s != "" {
			parsed, err := model.ParseNumber(s)
			if err == nil {
				f = parsed
			}
		}
	case bsontype.Null, bsontype.Undefined:
	default:
		return fmt.Errorf("cannot decode %s into a number", t)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	*n = looseNumber(f)
	return nil
}
