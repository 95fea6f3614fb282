package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InterPerfume is a document of the international reference collection.
// Notes, ratings and accords stay in Extra.
type InterPerfume struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	IDText  string             `bson:"-"`
	Perfume string             `bson:"Perfume,omitempty"`
	Brand   string             `bson:"Brand,omitempty"`
	Extra   bson.M             `bson:",inline"`
}

func (p *InterPerfume) Key() string {
	if p.IDText != "" {
		return p.IDText
	}
	return IDString(p.ID)
}

func (p *InterPerfume) UnmarshalBSON(data []byte) error {
	doc, err := decodeLoose(data)
	if err != nil {
		return err
	}

	*p = InterPerfume{}
	if v, ok := pop(doc, "_id"); ok {
		p.ID, p.IDText = splitID(v)
	}
	if v, ok := pop(doc, "Perfume"); ok {
		p.Perfume = TextValue(v)
	}
	if v, ok := pop(doc, "Brand"); ok {
		p.Brand = TextValue(v)
	}
	p.Extra = restOrNil(doc)
	return nil
}

func (p InterPerfume) MarshalJSON() ([]byte, error) {
	out := extraFields(p.Extra, 3)
	if key := p.Key(); key != "" {
		out["_id"] = key
	}
	out["Perfume"] = p.Perfume
	out["Brand"] = p.Brand
	return json.Marshal(out)
}

// DropdownItem is a perfume reshaped for a select input.
type DropdownItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// DropdownData feeds the brand and perfume selects of the questionnaire.
type DropdownData struct {
	Brands   []string       `json:"brands"`
	Perfumes []DropdownItem `json:"perfumes"`
}
