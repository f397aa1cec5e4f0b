// board/tile.go
package board

import (
	"encoding/json"
	"fmt"
)

// Kind tags which payload of a Tile is populated.
type Kind int

const (
	KindProperty Kind = iota
	KindStation
	KindUtility
	KindTax
	KindSpecial
	KindChance
	KindCommunityChest
)

var kindNames = map[Kind]string{
	KindProperty:       "property",
	KindStation:        "station",
	KindUtility:        "utility",
	KindTax:            "tax",
	KindSpecial:        "special",
	KindChance:         "chance",
	KindCommunityChest: "community-chest",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown tile type %q", name)
}

// SpecialKind identifies the corner tiles.
type SpecialKind string

const (
	SpecialGo          SpecialKind = "Go"
	SpecialJail        SpecialKind = "Jail"
	SpecialFreeParking SpecialKind = "Free Parking"
	SpecialGoToJail    SpecialKind = "Go To Jail"
)

// Deed is the ownable part shared by properties, stations and utilities.
type Deed struct {
	Price     int    `json:"price"`
	OwnerID   string `json:"ownerId,omitempty"`
	Mortgaged bool   `json:"mortgaged"`
}

// Owned reports whether the deed belongs to anyone.
func (d *Deed) Owned() bool {
	return d.OwnerID != ""
}

// MortgageValue is the cash credited when the deed is mortgaged.
func (d *Deed) MortgageValue() int {
	return d.Price / 2
}

// UnmortgageCost is 110% of the mortgage value, rounded up.
func (d *Deed) UnmortgageCost() int {
	return (d.MortgageValue()*11 + 9) / 10
}

// Property is a colored street. Rent is indexed by house count, 5 being a hotel.
type Property struct {
	Deed
	Rent      []int  `json:"rent"`
	HouseCost int    `json:"houseCost"`
	Color     string `json:"color"`
	Houses    int    `json:"houses"`
}

// Station rent is indexed by the number of stations the owner holds, minus one.
type Station struct {
	Deed
	Rent []int `json:"rent"`
}

// Utility rent is derived from the dice at landing time.
type Utility struct {
	Deed
}

type Tax struct {
	Amount int `json:"amount"`
}

// Tile is a closed variant: Kind selects which of the payload fields is set.
// Card tiles carry no payload.
type Tile struct {
	Kind     Kind        `json:"type"`
	Name     string      `json:"name"`
	Property *Property   `json:"property,omitempty"`
	Station  *Station    `json:"station,omitempty"`
	Utility  *Utility    `json:"utility,omitempty"`
	Tax      *Tax        `json:"tax,omitempty"`
	Special  SpecialKind `json:"special,omitempty"`
}

// Deed returns the ownable part of the tile, or nil for tiles that cannot be owned.
func (t *Tile) Deed() *Deed {
	switch t.Kind {
	case KindProperty:
		return &t.Property.Deed
	case KindStation:
		return &t.Station.Deed
	case KindUtility:
		return &t.Utility.Deed
	case KindTax, KindSpecial, KindChance, KindCommunityChest:
		return nil
	}
	return nil
}

// Houses returns the development level, zero for everything but properties.
func (t *Tile) Houses() int {
	if t.Kind == KindProperty {
		return t.Property.Houses
	}
	return 0
}

func (t Tile) clone() Tile {
	c := t
	switch t.Kind {
	case KindProperty:
		p := *t.Property
		p.Rent = append([]int(nil), t.Property.Rent...)
		c.Property = &p
	case KindStation:
		s := *t.Station
		s.Rent = append([]int(nil), t.Station.Rent...)
		c.Station = &s
	case KindUtility:
		u := *t.Utility
		c.Utility = &u
	case KindTax:
		x := *t.Tax
		c.Tax = &x
	case KindSpecial, KindChance, KindCommunityChest:
	}
	return c
}
