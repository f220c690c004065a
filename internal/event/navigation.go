package event

// Docked fires when the ship docks at a station.
type Docked struct {
	Header
	System           string   `json:"system"`
	Station          string   `json:"station"`
	StationModel     string   `json:"stationModel,omitempty"`
	StationState     string   `json:"stationState,omitempty"`
	Allegiance       string   `json:"allegiance,omitempty"`
	Faction          string   `json:"faction,omitempty"`
	FactionState     string   `json:"factionState,omitempty"`
	Economy          string   `json:"economy,omitempty"`
	Government       string   `json:"government,omitempty"`
	DistanceFromStar *float64 `json:"distanceFromStar,omitempty"`
	Services         []string `json:"services,omitempty"`
}

func (Docked) Kind() Kind { return KindDocked }

type Undocked struct {
	Header
	Station string `json:"station"`
}

func (Undocked) Kind() Kind { return KindUndocked }

// Location is written at startup and after respawn or resurrection.
type Location struct {
	Header
	System      string   `json:"system"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Z           float64  `json:"z"`
	Body        string   `json:"body,omitempty"`
	BodyType    string   `json:"bodyType,omitempty"`
	Docked      bool     `json:"docked"`
	Station     string   `json:"station,omitempty"`
	StationType string   `json:"stationType,omitempty"`
	Allegiance  string   `json:"allegiance,omitempty"`
	Faction     string   `json:"faction,omitempty"`
	Economy     string   `json:"economy,omitempty"`
	Government  string   `json:"government,omitempty"`
	Security    string   `json:"security,omitempty"`
	Population  *int64   `json:"population,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

func (Location) Kind() Kind { return KindLocation }

// Jumped fires on arrival after a hyperspace jump.
type Jumped struct {
	Header
	System        string  `json:"system"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Z             float64 `json:"z"`
	Distance      float64 `json:"distance"`
	FuelUsed      float64 `json:"fuelUsed"`
	FuelRemaining float64 `json:"fuelRemaining"`
	Allegiance    string  `json:"allegiance,omitempty"`
	Faction       string  `json:"faction,omitempty"`
	FactionState  string  `json:"factionState,omitempty"`
	Economy       string  `json:"economy,omitempty"`
	Government    string  `json:"government,omitempty"`
	Security      string  `json:"security,omitempty"`
	Population    *int64  `json:"population,omitempty"`
}

func (Jumped) Kind() Kind { return KindJumped }

// Jump targets reported by FSDEngaged.
const (
	JumpHyperspace  = "Hyperspace"
	JumpSupercruise = "Supercruise"
)

// FSDEngaged fires when the frame shift drive starts charging for a jump.
type FSDEngaged struct {
	Header
	Target       string `json:"target"`
	System       string `json:"system,omitempty"`
	StellarClass string `json:"stellarClass,omitempty"`
}

func (FSDEngaged) Kind() Kind { return KindFSDEngaged }

type EnteredSupercruise struct {
	Header
	System string `json:"system"`
}

func (EnteredSupercruise) Kind() Kind { return KindEnteredSupercruise }

type EnteredNormalSpace struct {
	Header
	System   string `json:"system"`
	Body     string `json:"body,omitempty"`
	BodyType string `json:"bodyType,omitempty"`
}

func (EnteredNormalSpace) Kind() Kind { return KindEnteredNormalSpace }

type Touchdown struct {
	Header
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	PlayerControlled bool     `json:"playerControlled"`
}

func (Touchdown) Kind() Kind { return KindTouchdown }

type Liftoff struct {
	Header
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	PlayerControlled bool     `json:"playerControlled"`
}

func (Liftoff) Kind() Kind { return KindLiftoff }

type DockingRequested struct {
	Header
	Station string `json:"station"`
}

func (DockingRequested) Kind() Kind { return KindDockingRequested }

type DockingGranted struct {
	Header
	Station    string `json:"station"`
	LandingPad int64  `json:"landingPad"`
}

func (DockingGranted) Kind() Kind { return KindDockingGranted }

type DockingDenied struct {
	Header
	Station string `json:"station"`
	Reason  string `json:"reason"`
}

func (DockingDenied) Kind() Kind { return KindDockingDenied }

type DockingCancelled struct {
	Header
	Station string `json:"station"`
}

func (DockingCancelled) Kind() Kind { return KindDockingCancelled }

type DockingTimedOut struct {
	Header
	Station string `json:"station"`
}

func (DockingTimedOut) Kind() Kind { return KindDockingTimedOut }

type SettlementApproached struct {
	Header
	Name string `json:"name"`
}

func (SettlementApproached) Kind() Kind { return KindSettlementApproached }

type SignalSourceEntered struct {
	Header
	Source string `json:"source"`
	Threat int64  `json:"threat"`
}

func (SignalSourceEntered) Kind() Kind { return KindSignalSourceEntered }

type NavBeaconScanned struct {
	Header
	Bodies int64 `json:"bodies"`
}

func (NavBeaconScanned) Kind() Kind { return KindNavBeaconScanned }

type JetConeBoost struct {
	Header
	Boost float64 `json:"boost"`
}

func (JetConeBoost) Kind() Kind { return KindJetConeBoost }

// MarketInformationUpdated is synthetic. Reason says whether the station
// data was confirmed by the profile source or the update is a best-effort
// notification.
type MarketInformationUpdated struct {
	Header
	Reason string `json:"reason"`
}

func (MarketInformationUpdated) Kind() Kind { return KindMarketInformationUpdated }

// Reasons carried by MarketInformationUpdated.
const (
	MarketReasonProfile  = "profile"
	MarketReasonFallback = "fallback"
)
