package model

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDString renders a loosely typed identifier (string, int32, int64 or
// double as stored by the seeder) in its canonical external form.
func IDString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case primitive.ObjectID:
		if t.IsZero() {
			return ""
		}
		return t.Hex()
	default:
		return ""
	}
}

// TextValue renders a scalar stored where text is expected. Imports from
// spreadsheets leave numbers in name and brand columns.
func TextValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case primitive.Decimal128:
		return t.String()
	default:
		return IDString(v)
	}
}

// splitID separates an ObjectID _id from an _id of any other type, which
// is kept in text form.
func splitID(v interface{}) (primitive.ObjectID, string) {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid, ""
	}
	return primitive.NilObjectID, TextValue(v)
}

// decodeLoose reads a raw document into a map the caller pops its typed
// keys from; what remains is the document's extra part.
func decodeLoose(data []byte) (bson.M, error) {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func pop(doc bson.M, key string) (interface{}, bool) {
	v, ok := doc[key]
	if ok {
		delete(doc, key)
	}
	return v, ok
}

func restOrNil(doc bson.M) bson.M {
	if len(doc) == 0 {
		return nil
	}
	return doc
}

// jsonValue converts decoded BSON values into shapes encoding/json renders
// the way the API has always returned them.
func jsonValue(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]interface{}, len(t))
		for _, e := range t {
			m[e.Key] = jsonValue(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = jsonValue(e)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = jsonValue(e)
		}
		return m
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = jsonValue(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = jsonValue(e)
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Decimal128:
		return t.String()
	default:
		return v
	}
}

// extraFields copies the loose part of a document for JSON output.
func extraFields(extra bson.M, capacity int) map[string]interface{} {
	out := make(map[string]interface{}, len(extra)+capacity)
	for k, v := range extra {
		out[k] = jsonValue(v)
	}
	return out
}
