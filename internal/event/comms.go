package event

// MessageReceived is a message shown in the comms panel. Source is the class
// of sender, for example "Commander", "Wing mate", "Police" or "Station".
type MessageReceived struct {
	Header
	From    string `json:"from"`
	Source  string `json:"source"`
	Player  bool   `json:"player"`
	Channel string `json:"channel"`
	Message string `json:"message"`
}

func (MessageReceived) Kind() Kind { return KindMessageReceived }

type MessageSent struct {
	Header
	To      string `json:"to"`
	Message string `json:"message"`
}

func (MessageSent) Kind() Kind { return KindMessageSent }

type NoFireZoneEntered struct {
	Header
	WeaponsDeployed bool `json:"weaponsDeployed"`
}

func (NoFireZoneEntered) Kind() Kind { return KindNoFireZoneEntered }

type NoFireZoneExited struct{ Header }

func (NoFireZoneExited) Kind() Kind { return KindNoFireZoneExited }

type NPCInterdictionCommenced struct {
	Header
	By string `json:"by"`
}

func (NPCInterdictionCommenced) Kind() Kind { return KindNPCInterdictionCommenced }

type NPCAttackCommenced struct {
	Header
	By string `json:"by"`
}

func (NPCAttackCommenced) Kind() Kind { return KindNPCAttackCommenced }

type NPCCargoScanCommenced struct {
	Header
	By string `json:"by"`
}

func (NPCCargoScanCommenced) Kind() Kind { return KindNPCCargoScanCommenced }
