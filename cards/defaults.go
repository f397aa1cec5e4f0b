package cards

func DefaultChance() []Card {
	return []Card{
		{Text: "Advance to Go.", Effect: EffectGoTo, Position: 0},
		{Text: "Advance to Illinois Avenue.", Effect: EffectGoTo, Position: 24},
		{Text: "Advance to St. Charles Place.", Effect: EffectGoTo, Position: 11},
		{Text: "Take a trip to Reading Railroad.", Effect: EffectGoTo, Position: 5},
		{Text: "Take a walk on the Boardwalk.", Effect: EffectGoTo, Position: 39},
		{Text: "Bank pays you dividend of $50.", Effect: EffectMoney, Amount: 50},
		{Text: "Get Out of Jail Free.", Effect: EffectGetOutOfJail},
		{Text: "Go back 3 spaces.", Effect: EffectMove, Amount: -3},
		{Text: "Go to Jail. Do not pass Go.", Effect: EffectJail},
		{Text: "Speeding fine $15.", Effect: EffectMoney, Amount: -15},
		{Text: "Your building loan matures. Collect $150.", Effect: EffectMoney, Amount: 150},
		{Text: "You have been elected Chairman of the Board. Pay $50.", Effect: EffectMoney, Amount: -50},
		{Text: "Advance 5 spaces.", Effect: EffectMove, Amount: 5},
	}
}

func DefaultCommunityChest() []Card {
	return []Card{
		{Text: "Advance to Go.", Effect: EffectGoTo, Position: 0},
		{Text: "Bank error in your favor. Collect $200.", Effect: EffectMoney, Amount: 200},
		{Text: "Doctor's fee. Pay $50.", Effect: EffectMoney, Amount: -50},
		{Text: "From sale of stock you get $50.", Effect: EffectMoney, Amount: 50},
		{Text: "Get Out of Jail Free.", Effect: EffectGetOutOfJail},
		{Text: "Go to Jail. Do not pass Go.", Effect: EffectJail},
		{Text: "Holiday fund matures. Receive $100.", Effect: EffectMoney, Amount: 100},
		{Text: "Income tax refund. Collect $20.", Effect: EffectMoney, Amount: 20},
		{Text: "Life insurance matures. Collect $100.", Effect: EffectMoney, Amount: 100},
		{Text: "Pay hospital fees of $100.", Effect: EffectMoney, Amount: -100},
		{Text: "Pay school fees of $50.", Effect: EffectMoney, Amount: -50},
		{Text: "Receive $25 consultancy fee.", Effect: EffectMoney, Amount: 25},
		{Text: "You have won second prize in a beauty contest. Collect $10.", Effect: EffectMoney, Amount: 10},
		{Text: "You inherit $100.", Effect: EffectMoney, Amount: 100},
	}
}
