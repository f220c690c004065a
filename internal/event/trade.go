package event

type CommodityPurchased struct {
	Header
	Commodity string `json:"commodity"`
	Amount    int64  `json:"amount"`
	Price     int64  `json:"price"`
}

func (CommodityPurchased) Kind() Kind { return KindCommodityPurchased }

// CommoditySold carries the per-unit sale price and profit over the average
// price paid.
type CommoditySold struct {
	Header
	Commodity   string `json:"commodity"`
	Amount      int64  `json:"amount"`
	Price       int64  `json:"price"`
	Profit      int64  `json:"profit"`
	Illegal     bool   `json:"illegal"`
	Stolen      bool   `json:"stolen"`
	BlackMarket bool   `json:"blackMarket"`
}

func (CommoditySold) Kind() Kind { return KindCommoditySold }

type CommodityCollected struct {
	Header
	Commodity string `json:"commodity"`
	Stolen    bool   `json:"stolen"`
}

func (CommodityCollected) Kind() Kind { return KindCommodityCollected }

type CommodityEjected struct {
	Header
	Commodity string `json:"commodity"`
	Amount    int64  `json:"amount"`
	Abandoned bool   `json:"abandoned"`
}

func (CommodityEjected) Kind() Kind { return KindCommodityEjected }

type CommodityRefined struct {
	Header
	Commodity string `json:"commodity"`
}

func (CommodityRefined) Kind() Kind { return KindCommodityRefined }

// CargoItem is one line of a cargo hold listing.
type CargoItem struct {
	Commodity string `json:"commodity"`
	Amount    int64  `json:"amount"`
}

// CargoInventory is a full listing of the hold, replacing any running tally.
type CargoInventory struct {
	Header
	Inventory []CargoItem `json:"inventory"`
}

func (CargoInventory) Kind() Kind { return KindCargoInventory }

type LimpetPurchased struct {
	Header
	Amount int64 `json:"amount"`
	Price  int64 `json:"price"`
}

func (LimpetPurchased) Kind() Kind { return KindLimpetPurchased }

type LimpetSold struct {
	Header
	Amount int64 `json:"amount"`
	Price  int64 `json:"price"`
}

func (LimpetSold) Kind() Kind { return KindLimpetSold }

type SearchAndRescue struct {
	Header
	Commodity string `json:"commodity"`
	Amount    *int64 `json:"amount,omitempty"`
	Reward    int64  `json:"reward"`
}

func (SearchAndRescue) Kind() Kind { return KindSearchAndRescue }

type ExplorationDataPurchased struct {
	Header
	System string `json:"system"`
	Price  int64  `json:"price"`
}

func (ExplorationDataPurchased) Kind() Kind { return KindExplorationDataPurchased }

type ExplorationDataSold struct {
	Header
	Systems    []string `json:"systems"`
	Discovered []string `json:"discovered,omitempty"`
	Reward     int64    `json:"reward"`
	Bonus      int64    `json:"bonus"`
}

func (ExplorationDataSold) Kind() Kind { return KindExplorationDataSold }

type TradeDataPurchased struct {
	Header
	System string `json:"system"`
	Price  int64  `json:"price"`
}

func (TradeDataPurchased) Kind() Kind { return KindTradeDataPurchased }

// MaterialAmount pairs a material with a count. Category is set on full
// inventory listings.
type MaterialAmount struct {
	Material string `json:"material"`
	Category string `json:"category,omitempty"`
	Amount   int64  `json:"amount"`
}

type MaterialCollected struct {
	Header
	Material string `json:"material"`
	Amount   int64  `json:"amount"`
}

func (MaterialCollected) Kind() Kind { return KindMaterialCollected }

type MaterialDiscarded struct {
	Header
	Material string `json:"material"`
	Amount   int64  `json:"amount"`
}

func (MaterialDiscarded) Kind() Kind { return KindMaterialDiscarded }

type MaterialDiscovered struct {
	Header
	Material string `json:"material"`
}

func (MaterialDiscovered) Kind() Kind { return KindMaterialDiscovered }

type MaterialDonated struct {
	Header
	Material string `json:"material"`
	Amount   int64  `json:"amount"`
}

func (MaterialDonated) Kind() Kind { return KindMaterialDonated }

type MaterialInventory struct {
	Header
	Materials []MaterialAmount `json:"materials"`
}

func (MaterialInventory) Kind() Kind { return KindMaterialInventory }

// MaterialThreshold is synthetic. It reports a material count crossing one
// of its configured limits.
type MaterialThreshold struct {
	Header
	Material string `json:"material"`
	Level    string `json:"level"`
	Limit    int64  `json:"limit"`
	Amount   int64  `json:"amount"`
	Change   string `json:"change"`
}

func (MaterialThreshold) Kind() Kind { return KindMaterialThreshold }

// Levels and changes carried by MaterialThreshold.
const (
	ThresholdMinimum = "Minimum"
	ThresholdDesired = "Desired"
	ThresholdMaximum = "Maximum"

	ChangeIncrease = "Increase"
	ChangeDecrease = "Decrease"
)

type BountyRedeemed struct {
	Header
	Rewards          []FactionReward `json:"rewards,omitempty"`
	Amount           int64           `json:"amount"`
	BrokerPercentage *float64        `json:"brokerPercentage,omitempty"`
}

func (BountyRedeemed) Kind() Kind { return KindBountyRedeemed }

type BondRedeemed struct {
	Header
	Rewards          []FactionReward `json:"rewards,omitempty"`
	Amount           int64           `json:"amount"`
	BrokerPercentage *float64        `json:"brokerPercentage,omitempty"`
}

func (BondRedeemed) Kind() Kind { return KindBondRedeemed }

type TradeVoucherRedeemed struct {
	Header
	Rewards          []FactionReward `json:"rewards,omitempty"`
	Amount           int64           `json:"amount"`
	BrokerPercentage *float64        `json:"brokerPercentage,omitempty"`
}

func (TradeVoucherRedeemed) Kind() Kind { return KindTradeVoucherRedeemed }

type DataVoucherRedeemed struct {
	Header
	Rewards          []FactionReward `json:"rewards,omitempty"`
	Amount           int64           `json:"amount"`
	BrokerPercentage *float64        `json:"brokerPercentage,omitempty"`
}

func (DataVoucherRedeemed) Kind() Kind { return KindDataVoucherRedeemed }

type FinePaid struct {
	Header
	Amount           int64    `json:"amount"`
	BrokerPercentage *float64 `json:"brokerPercentage,omitempty"`
	Legacy           bool     `json:"legacy"`
}

func (FinePaid) Kind() Kind { return KindFinePaid }
