package event

// Rating is a rank on one of the commander's ladders.
type Rating struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
}

var (
	combatRanks      = []string{"Harmless", "Mostly Harmless", "Novice", "Competent", "Expert", "Master", "Dangerous", "Deadly", "Elite"}
	tradeRanks       = []string{"Penniless", "Mostly Penniless", "Peddler", "Dealer", "Merchant", "Broker", "Entrepreneur", "Tycoon", "Elite"}
	explorationRanks = []string{"Aimless", "Mostly Aimless", "Scout", "Surveyor", "Trailblazer", "Pathfinder", "Ranger", "Pioneer", "Elite"}
	cqcRanks         = []string{"Helpless", "Mostly Helpless", "Amateur", "Semi Professional", "Professional", "Champion", "Hero", "Legend", "Elite"}
	federationRanks  = []string{
		"None", "Recruit", "Cadet", "Midshipman", "Petty Officer", "Chief Petty Officer", "Warrant Officer",
		"Ensign", "Lieutenant", "Lieutenant Commander", "Post Commander", "Post Captain",
		"Rear Admiral", "Vice Admiral", "Admiral",
	}
	empireRanks = []string{
		"None", "Outsider", "Serf", "Master", "Squire", "Knight", "Lord", "Baron",
		"Viscount", "Count", "Earl", "Marquis", "Duke", "Prince", "King",
	}
)

func rating(table []string, rank int) Rating {
	if rank < 0 || rank >= len(table) {
		return Rating{Rank: rank, Name: "Unknown"}
	}
	return Rating{Rank: rank, Name: table[rank]}
}

func CombatRating(rank int) Rating      { return rating(combatRanks, rank) }
func TradeRating(rank int) Rating       { return rating(tradeRanks, rank) }
func ExplorationRating(rank int) Rating { return rating(explorationRanks, rank) }
func CQCRating(rank int) Rating         { return rating(cqcRanks, rank) }
func FederationRating(rank int) Rating  { return rating(federationRanks, rank) }
func EmpireRating(rank int) Rating      { return rating(empireRanks, rank) }

// CombatRatingByName resolves journal rank names such as "Deadly". Unknown
// names give rank -1.
func CombatRatingByName(name string) Rating {
	for i, n := range combatRanks {
		if n == name {
			return Rating{Rank: i, Name: n}
		}
	}
	return Rating{Rank: -1, Name: name}
}
