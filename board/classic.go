package board

func street(name, color string, price, houseCost int, rent ...int) Tile {
	return Tile{Kind: KindProperty, Name: name, Property: &Property{
		Deed:      Deed{Price: price},
		Rent:      rent,
		HouseCost: houseCost,
		Color:     color,
	}}
}

func railroad(name string) Tile {
	return Tile{Kind: KindStation, Name: name, Station: &Station{
		Deed: Deed{Price: 200},
		Rent: []int{25, 50, 100, 200},
	}}
}

func utility(name string) Tile {
	return Tile{Kind: KindUtility, Name: name, Utility: &Utility{Deed: Deed{Price: 150}}}
}

func tax(name string, amount int) Tile {
	return Tile{Kind: KindTax, Name: name, Tax: &Tax{Amount: amount}}
}

func special(kind SpecialKind) Tile {
	return Tile{Kind: KindSpecial, Name: string(kind), Special: kind}
}

func chance() Tile {
	return Tile{Kind: KindChance, Name: "Chance"}
}

func communityChest() Tile {
	return Tile{Kind: KindCommunityChest, Name: "Community Chest"}
}

// Classic returns a fresh copy of the standard 40-tile board with no owners.
func Classic() Board {
	return Board{
		special(SpecialGo),
		street("Mediterranean Avenue", "brown", 60, 50, 2, 10, 30, 90, 160, 250),
		communityChest(),
		street("Baltic Avenue", "brown", 60, 50, 4, 20, 60, 180, 320, 450),
		tax("Income Tax", 200),
		railroad("Reading Railroad"),
		street("Oriental Avenue", "lightblue", 100, 50, 6, 30, 90, 270, 400, 550),
		chance(),
		street("Vermont Avenue", "lightblue", 100, 50, 6, 30, 90, 270, 400, 550),
		street("Connecticut Avenue", "lightblue", 120, 50, 8, 40, 100, 300, 450, 600),
		special(SpecialJail),
		street("St. Charles Place", "pink", 140, 100, 10, 50, 150, 450, 625, 750),
		utility("Electric Company"),
		street("States Avenue", "pink", 140, 100, 10, 50, 150, 450, 625, 750),
		street("Virginia Avenue", "pink", 160, 100, 12, 60, 180, 500, 700, 900),
		railroad("Pennsylvania Railroad"),
		street("St. James Place", "orange", 180, 100, 14, 70, 200, 550, 750, 950),
		communityChest(),
		street("Tennessee Avenue", "orange", 180, 100, 14, 70, 200, 550, 750, 950),
		street("New York Avenue", "orange", 200, 100, 16, 80, 220, 600, 800, 1000),
		special(SpecialFreeParking),
		street("Kentucky Avenue", "red", 220, 150, 18, 90, 250, 700, 875, 1050),
		chance(),
		street("Indiana Avenue", "red", 220, 150, 18, 90, 250, 700, 875, 1050),
		street("Illinois Avenue", "red", 240, 150, 20, 100, 300, 750, 925, 1100),
		railroad("B. & O. Railroad"),
		street("Atlantic Avenue", "yellow", 260, 150, 22, 110, 330, 800, 975, 1150),
		street("Ventnor Avenue", "yellow", 260, 150, 22, 110, 330, 800, 975, 1150),
		utility("Water Works"),
		street("Marvin Gardens", "yellow", 280, 150, 24, 120, 360, 850, 1025, 1200),
		special(SpecialGoToJail),
		street("Pacific Avenue", "green", 300, 200, 26, 130, 390, 900, 1100, 1275),
		street("North Carolina Avenue", "green", 300, 200, 26, 130, 390, 900, 1100, 1275),
		communityChest(),
		street("Pennsylvania Avenue", "green", 320, 200, 28, 150, 450, 1000, 1200, 1400),
		railroad("Short Line"),
		chance(),
		street("Park Place", "darkblue", 350, 200, 35, 175, 500, 1100, 1300, 1500),
		tax("Luxury Tax", 100),
		street("Boardwalk", "darkblue", 400, 200, 50, 200, 600, 1400, 1700, 2000),
	}
}
