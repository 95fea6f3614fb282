package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"harumnesia/internal/model"

	json "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
)

// ReadDocuments decodes a JSON array of documents. Extended JSON values
// such as {"$oid": ...} or {"$date": ...} from mongoexport are converted to
// their BSON types.
func ReadDocuments(r io.Reader) ([]interface{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("expected a JSON array of documents: %w", err)
	}

	docs := make([]interface{}, 0, len(raws))
	for i, raw := range raws {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func readFile(path string) ([]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDocuments(f)
}

// toBrands decodes seeded documents through their bson field names.
func toBrands(docs []interface{}) ([]model.Brand, error) {
	brands := make([]model.Brand, 0, len(docs))
	for i, d := range docs {
		raw, err := bson.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("brand %d: %w", i, err)
		}
		var b model.Brand
		if err := bson.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("brand %d: %w", i, err)
		}
		if b.Name == "" {
			return nil, fmt.Errorf("brand %d: name is required", i)
		}
		brands = append(brands, b)
	}
	return brands, nil
}
