package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"harumnesia/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsObjectIDHex reports whether id can be used as an _id lookup.
func IsObjectIDHex(id string) bool {
	return objectIDPattern.MatchString(id)
}

// identifierValues returns the string form of each id plus its integer form
// when it parses as one; perfumeId and "ID Perfume" are stored either way.
func identifierValues(ids []string) []interface{} {
	values := make([]interface{}, 0, len(ids)*2)
	for _, id := range ids {
		values = append(values, id)
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			values = append(values, n)
		}
	}
	return values
}

// IdentifierFilter matches documents referenced by any of ids through
// perfumeId, "ID Perfume" or, for 24-hex ids, _id.
func IdentifierFilter(ids []string) bson.M {
	var clean []string
	var oids []primitive.ObjectID
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		clean = append(clean, id)
		if IsObjectIDHex(id) {
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				oids = append(oids, oid)
			}
		}
	}

	values := identifierValues(clean)
	or := bson.A{
		bson.M{"perfumeId": bson.M{"$in": values}},
		bson.M{"ID Perfume": bson.M{"$in": values}},
	}
	if len(oids) > 0 {
		or = append(or, bson.M{"_id": bson.M{"$in": oids}})
	}
	return bson.M{"$or": or}
}

// ExactInsensitive builds an anchored case-insensitive regex for s.
func ExactInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(s)) + "$", Options: "i"}
}

// ContainsInsensitive builds an unanchored case-insensitive regex for s.
func ContainsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(s)), Options: "i"}
}

func mapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, model.ErrDuplicate)
	default:
		return err
	}
}

// distinctStrings keeps the non-blank string values of a Distinct result.
func distinctStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
