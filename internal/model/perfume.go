package model

import (
	"encoding/json"
	"strings"

	"harumnesia/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page size of GET /api/perfumes/page/:pageNumber.
const PerfumePageSize = 12

// Perfume is a document of the local collection. The collection has no
// fixed schema: only the fields used for identity, naming and brand lookup
// are typed, everything else is kept in Extra and returned unchanged.
type Perfume struct {
	ID primitive.ObjectID `bson:"_id,omitempty"`
	// IDText holds an _id stored as anything but an ObjectID.
	IDText    string              `bson:"-"`
	PerfumeID interface{}         `bson:"perfumeId,omitempty"`
	LegacyID  interface{}         `bson:"ID Perfume,omitempty"`
	Name      string              `bson:"name,omitempty"`
	Perfume   string              `bson:"perfume,omitempty"`
	Brand     string              `bson:"brand,omitempty"`
	BrandID   *primitive.ObjectID `bson:"brandId,omitempty"`
	Extra     bson.M              `bson:",inline"`

	// SimilarityScore is only set on recommendation results.
	SimilarityScore *float64 `bson:"-"`
}

// DisplayID is the external identifier: perfumeId, then "ID Perfume", then _id.
func (p *Perfume) DisplayID() string {
	if id := IDString(p.PerfumeID); id != "" {
		return id
	}
	if id := IDString(p.LegacyID); id != "" {
		return id
	}
	return p.Key()
}

// Key is the _id in text form, whatever type it was stored as.
func (p *Perfume) Key() string {
	if p.IDText != "" {
		return p.IDText
	}
	return IDString(p.ID)
}

// UnmarshalBSON casts name, perfume and brand to text so one badly typed
// document cannot fail a whole cursor.
func (p *Perfume) UnmarshalBSON(data []byte) error {
	doc, err := decodeLoose(data)
	if err != nil {
		return err
	}

	*p = Perfume{}
	if v, ok := pop(doc, "_id"); ok {
		p.ID, p.IDText = splitID(v)
	}
	p.PerfumeID, _ = pop(doc, "perfumeId")
	p.LegacyID, _ = pop(doc, "ID Perfume")
	if v, ok := pop(doc, "name"); ok {
		p.Name = TextValue(v)
	}
	if v, ok := pop(doc, "perfume"); ok {
		p.Perfume = TextValue(v)
	}
	if v, ok := pop(doc, "brand"); ok {
		p.Brand = TextValue(v)
	}
	switch v := doc["brandId"].(type) {
	case primitive.ObjectID:
		p.BrandID = &v
		delete(doc, "brandId")
	case string:
		if oid, err := primitive.ObjectIDFromHex(v); err == nil {
			p.BrandID = &oid
			delete(doc, "brandId")
		}
	}
	p.Extra = restOrNil(doc)
	return nil
}

func (p Perfume) MarshalBSON() ([]byte, error) {
	doc := make(bson.M, len(p.Extra)+7)
	for k, v := range p.Extra {
		doc[k] = v
	}
	switch {
	case !p.ID.IsZero():
		doc["_id"] = p.ID
	case p.IDText != "":
		doc["_id"] = p.IDText
	}
	if p.PerfumeID != nil {
		doc["perfumeId"] = p.PerfumeID
	}
	if p.LegacyID != nil {
		doc["ID Perfume"] = p.LegacyID
	}
	for k, v := range map[string]string{"name": p.Name, "perfume": p.Perfume, "brand": p.Brand} {
		if v != "" {
			doc[k] = v
		}
	}
	if p.BrandID != nil {
		doc["brandId"] = *p.BrandID
	}
	return bson.Marshal(doc)
}

// DisplayName never returns an empty string.
func (p *Perfume) DisplayName() string {
	if name := utils.FirstNonEmpty(p.Name, p.Perfume); name != "" {
		return name
	}
	if id := p.DisplayID(); id != "" {
		return "Perfume " + id
	}
	return "Perfume"
}

// Identifiers lists every value under which the perfume can be referenced.
func (p *Perfume) Identifiers() []string {
	var ids []string
	for _, id := range []string{IDString(p.PerfumeID), IDString(p.LegacyID), p.Key()} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

var noteKeys = [][2]string{
	{"topNotes", "top notes"},
	{"middleNotes", "middle notes"},
	{"baseNotes", "base notes"},
}

// NormalizeNotes fills the array note fields from their free-text
// counterparts when only the latter were imported.
func (p *Perfume) NormalizeNotes() {
	for _, keys := range noteKeys {
		arrayKey, textKey := keys[0], keys[1]
		if _, ok := p.Extra[arrayKey]; ok {
			continue
		}
		text, ok := p.Extra[textKey].(string)
		if !ok {
			continue
		}
		notes := SplitNotes(text)
		if len(notes) == 0 {
			continue
		}
		if p.Extra == nil {
			p.Extra = bson.M{}
		}
		p.Extra[arrayKey] = notes
	}
}

// SplitNotes splits "Bergamot, Lemon ,  Musk" into trimmed notes.
func SplitNotes(text string) []string {
	var notes []string
	for _, part := range strings.Split(text, ",") {
		if n := strings.TrimSpace(part); n != "" {
			notes = append(notes, n)
		}
	}
	return notes
}

func (p Perfume) MarshalJSON() ([]byte, error) {
	out := extraFields(p.Extra, 8)
	if key := p.Key(); key != "" {
		out["_id"] = key
	}
	if p.PerfumeID != nil {
		out["perfumeId"] = jsonValue(p.PerfumeID)
	}
	if p.LegacyID != nil {
		out["ID Perfume"] = jsonValue(p.LegacyID)
	}
	if p.Perfume != "" {
		out["perfume"] = p.Perfume
	}
	if p.BrandID != nil {
		out["brandId"] = p.BrandID.Hex()
	}
	if p.SimilarityScore != nil {
		out["similarityScore"] = *p.SimilarityScore
	}
	out["name"] = p.Name
	out["brand"] = p.Brand
	return json.Marshal(out)
}

// PerfumePage is the response of the paginated listing.
type PerfumePage struct {
	Perfumes []Perfume `json:"perfumes"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
	Count    int64     `json:"count"`
}
