// board/board.go
package board

const (
	Size             = 40
	GoPosition       = 0
	JailPosition     = 10
	GoToJailPosition = 30
	MaxHouses        = 5 // 5 houses is a hotel
)

// Board is the ordered ring of tiles. Index is board position.
type Board []Tile

// Clone returns a deep copy safe to mutate independently.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	c := make(Board, len(b))
	for i, t := range b {
		c[i] = t.clone()
	}
	return c
}

// Valid reports whether idx addresses a tile.
func (b Board) Valid(idx int) bool {
	return idx >= 0 && idx < len(b)
}

// Group returns the indices of every property sharing color.
func (b Board) Group(color string) []int {
	var idx []int
	for i := range b {
		if b[i].Kind == KindProperty && b[i].Property.Color == color {
			idx = append(idx, i)
		}
	}
	return idx
}

// HasMonopoly reports whether playerID owns every property of color.
func (b Board) HasMonopoly(playerID, color string) bool {
	group := b.Group(color)
	if len(group) == 0 || playerID == "" {
		return false
	}
	for _, i := range group {
		if b[i].Property.OwnerID != playerID {
			return false
		}
	}
	return true
}

// HouseRange returns the lowest and highest house count within a color group.
func (b Board) HouseRange(color string) (min, max int) {
	group := b.Group(color)
	if len(group) == 0 {
		return 0, 0
	}
	min, max = MaxHouses, 0
	for _, i := range group {
		h := b[i].Property.Houses
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	return min, max
}

// Developed reports whether any property of color carries a house.
func (b Board) Developed(color string) bool {
	_, max := b.HouseRange(color)
	return max > 0
}

// CountOwned counts tiles of kind owned by ownerID.
func (b Board) CountOwned(kind Kind, ownerID string) int {
	n := 0
	for i := range b {
		if b[i].Kind != kind {
			continue
		}
		if d := b[i].Deed(); d != nil && d.OwnerID == ownerID {
			n++
		}
	}
	return n
}

// OwnedBy lists the indices of every tile owned by ownerID.
func (b Board) OwnedBy(ownerID string) []int {
	var idx []int
	for i := range b {
		if d := b[i].Deed(); d != nil && d.OwnerID == ownerID {
			idx = append(idx, i)
		}
	}
	return idx
}

// Release returns every tile owned by ownerID to the bank: unowned,
// undeveloped and unmortgaged. It returns the number of tiles released.
func (b Board) Release(ownerID string) int {
	n := 0
	for _, i := range b.OwnedBy(ownerID) {
		d := b[i].Deed()
		d.OwnerID = ""
		d.Mortgaged = false
		if b[i].Kind == KindProperty {
			b[i].Property.Houses = 0
		}
		n++
	}
	return n
}
