package event

// CommanderContinued fires when a saved game is loaded.
type CommanderContinued struct {
	Header
	Commander    string   `json:"commander"`
	ShipID       int64    `json:"shipId"`
	Ship         string   `json:"ship"`
	ShipName     string   `json:"shipName,omitempty"`
	ShipIdent    string   `json:"shipIdent,omitempty"`
	Mode         string   `json:"mode,omitempty"`
	Group        string   `json:"group,omitempty"`
	Credits      int64    `json:"credits"`
	Loan         int64    `json:"loan"`
	Fuel         *float64 `json:"fuel,omitempty"`
	FuelCapacity *float64 `json:"fuelCapacity,omitempty"`
}

func (CommanderContinued) Kind() Kind { return KindCommanderContinued }

// EnteredCQC replaces CommanderContinued when the loaded game has no ship,
// which only happens in close quarters combat.
type EnteredCQC struct {
	Header
	Commander string `json:"commander"`
}

func (EnteredCQC) Kind() Kind { return KindEnteredCQC }

type CommanderStarted struct {
	Header
	Name    string `json:"name"`
	Package string `json:"package,omitempty"`
}

func (CommanderStarted) Kind() Kind { return KindCommanderStarted }

type CommanderReset struct {
	Header
	Name string `json:"name"`
}

func (CommanderReset) Kind() Kind { return KindCommanderReset }

type CommanderRatings struct {
	Header
	Combat      Rating `json:"combat"`
	Trade       Rating `json:"trade"`
	Exploration Rating `json:"exploration"`
	CQC         Rating `json:"cqc"`
	Empire      Rating `json:"empire"`
	Federation  Rating `json:"federation"`
}

func (CommanderRatings) Kind() Kind { return KindCommanderRatings }

// CommanderProgress carries percentage progress towards the next rank on
// each ladder.
type CommanderProgress struct {
	Header
	Combat      int64 `json:"combat"`
	Trade       int64 `json:"trade"`
	Exploration int64 `json:"exploration"`
	CQC         int64 `json:"cqc"`
	Empire      int64 `json:"empire"`
	Federation  int64 `json:"federation"`
}

func (CommanderProgress) Kind() Kind { return KindCommanderProgress }

type CombatPromotion struct {
	Header
	Rating Rating `json:"rating"`
}

func (CombatPromotion) Kind() Kind { return KindCombatPromotion }

type TradePromotion struct {
	Header
	Rating Rating `json:"rating"`
}

func (TradePromotion) Kind() Kind { return KindTradePromotion }

type ExplorationPromotion struct {
	Header
	Rating Rating `json:"rating"`
}

func (ExplorationPromotion) Kind() Kind { return KindExplorationPromotion }

type FederationPromotion struct {
	Header
	Rating Rating `json:"rating"`
}

func (FederationPromotion) Kind() Kind { return KindFederationPromotion }

type EmpirePromotion struct {
	Header
	Rating Rating `json:"rating"`
}

func (EmpirePromotion) Kind() Kind { return KindEmpirePromotion }

// Friends reports a change in a friend's online status.
type Friends struct {
	Header
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (Friends) Kind() Kind { return KindFriends }

// FileHeader is the first record of every journal file.
type FileHeader struct {
	Header
	Filename string `json:"filename,omitempty"`
	Version  string `json:"version"`
	Build    string `json:"build"`
	Language string `json:"language,omitempty"`
	Part     *int64 `json:"part,omitempty"`
}

func (FileHeader) Kind() Kind { return KindFileHeader }
