package event

type ShipPurchased struct {
	Header
	Ship         string `json:"ship"`
	Price        int64  `json:"price"`
	SoldShip     string `json:"soldShip,omitempty"`
	SoldShipID   *int64 `json:"soldShipId,omitempty"`
	SoldPrice    *int64 `json:"soldPrice,omitempty"`
	StoredShip   string `json:"storedShip,omitempty"`
	StoredShipID *int64 `json:"storedShipId,omitempty"`
}

func (ShipPurchased) Kind() Kind { return KindShipPurchased }

type ShipDelivered struct {
	Header
	Ship   string `json:"ship"`
	ShipID int64  `json:"shipId"`
}

func (ShipDelivered) Kind() Kind { return KindShipDelivered }

type ShipSold struct {
	Header
	Ship   string `json:"ship"`
	ShipID int64  `json:"shipId"`
	Price  int64  `json:"price"`
	System string `json:"system,omitempty"`
}

func (ShipSold) Kind() Kind { return KindShipSold }

type ShipSoldOnRebuy struct {
	Header
	Ship   string `json:"ship"`
	ShipID int64  `json:"shipId"`
	Price  int64  `json:"price"`
	System string `json:"system,omitempty"`
}

func (ShipSoldOnRebuy) Kind() Kind { return KindShipSoldOnRebuy }

type ShipSwapped struct {
	Header
	Ship         string `json:"ship"`
	ShipID       int64  `json:"shipId"`
	SoldShip     string `json:"soldShip,omitempty"`
	SoldShipID   *int64 `json:"soldShipId,omitempty"`
	StoredShip   string `json:"storedShip,omitempty"`
	StoredShipID *int64 `json:"storedShipId,omitempty"`
}

func (ShipSwapped) Kind() Kind { return KindShipSwapped }

// ShipTransferInitiated fires when a stored ship is sent for. When Time is
// known the decoder also schedules a ShipArrived after that many seconds.
type ShipTransferInitiated struct {
	Header
	Ship     string  `json:"ship"`
	ShipID   int64   `json:"shipId"`
	System   string  `json:"system"`
	Distance float64 `json:"distance"`
	Price    *int64  `json:"price,omitempty"`
	Time     *int64  `json:"time,omitempty"`
}

func (ShipTransferInitiated) Kind() Kind { return KindShipTransferInitiated }

// ShipArrived is normally synthetic: System and Station name where the
// commander was when the transfer completed.
type ShipArrived struct {
	Header
	Ship     string  `json:"ship"`
	ShipID   int64   `json:"shipId"`
	System   string  `json:"system"`
	Station  string  `json:"station"`
	Distance float64 `json:"distance"`
	Price    *int64  `json:"price,omitempty"`
	Time     *int64  `json:"time,omitempty"`
}

func (ShipArrived) Kind() Kind { return KindShipArrived }

type ShipRenamed struct {
	Header
	Ship   string `json:"ship"`
	ShipID int64  `json:"shipId"`
	Name   string `json:"name"`
	Ident  string `json:"ident"`
}

func (ShipRenamed) Kind() Kind { return KindShipRenamed }

// Refuel sources.
const (
	RefuelMarket = "Market"
	RefuelScoop  = "Scoop"
)

type ShipRefuelled struct {
	Header
	Source string   `json:"source"`
	Price  *int64   `json:"price,omitempty"`
	Amount float64  `json:"amount"`
	Total  *float64 `json:"total,omitempty"`
}

func (ShipRefuelled) Kind() Kind { return KindShipRefuelled }

// ShipRepaired has an empty Item when everything was repaired.
type ShipRepaired struct {
	Header
	Item  string `json:"item,omitempty"`
	Price int64  `json:"price"`
}

func (ShipRepaired) Kind() Kind { return KindShipRepaired }

type ShipRestocked struct {
	Header
	Price int64 `json:"price"`
}

func (ShipRestocked) Kind() Kind { return KindShipRestocked }

// LoadoutModule is a module fitted in one slot. Health is a percentage.
type LoadoutModule struct {
	Slot     string  `json:"slot"`
	Item     string  `json:"item"`
	On       bool    `json:"on"`
	Priority int64   `json:"priority"`
	Health   float64 `json:"health"`
	Value    *int64  `json:"value,omitempty"`
}

type ShipLoadout struct {
	Header
	Ship      string          `json:"ship"`
	ShipID    int64           `json:"shipId"`
	ShipName  string          `json:"shipName,omitempty"`
	ShipIdent string          `json:"shipIdent,omitempty"`
	Paintjob  string          `json:"paintjob,omitempty"`
	Modules   []LoadoutModule `json:"modules,omitempty"`
}

func (ShipLoadout) Kind() Kind { return KindShipLoadout }

type ModulePurchased struct {
	Header
	Ship       string `json:"ship"`
	ShipID     int64  `json:"shipId"`
	Slot       string `json:"slot"`
	Module     string `json:"module"`
	Price      int64  `json:"price"`
	SoldModule string `json:"soldModule,omitempty"`
	SoldPrice  *int64 `json:"soldPrice,omitempty"`
	Stored     string `json:"stored,omitempty"`
}

func (ModulePurchased) Kind() Kind { return KindModulePurchased }

type ModuleSold struct {
	Header
	Ship   string `json:"ship"`
	ShipID int64  `json:"shipId"`
	Slot   string `json:"slot"`
	Module string `json:"module"`
	Price  int64  `json:"price"`
}

func (ModuleSold) Kind() Kind { return KindModuleSold }

type ModuleSoldFromStorage struct {
	Header
	Ship        string `json:"ship"`
	ShipID      int64  `json:"shipId"`
	StorageSlot int64  `json:"storageSlot"`
	ServerID    int64  `json:"serverId"`
	Module      string `json:"module"`
	Price       int64  `json:"price"`
}

func (ModuleSoldFromStorage) Kind() Kind { return KindModuleSoldFromStorage }

type ModuleStored struct {
	Header
	Ship          string `json:"ship"`
	ShipID        int64  `json:"shipId"`
	Slot          string `json:"slot"`
	Module        string `json:"module"`
	Cost          *int64 `json:"cost,omitempty"`
	Modifications string `json:"modifications,omitempty"`
	Replacement   string `json:"replacement,omitempty"`
}

func (ModuleStored) Kind() Kind { return KindModuleStored }

type ModuleRetrieved struct {
	Header
	Ship          string `json:"ship"`
	ShipID        int64  `json:"shipId"`
	Slot          string `json:"slot"`
	Module        string `json:"module"`
	Cost          *int64 `json:"cost,omitempty"`
	Modifications string `json:"modifications,omitempty"`
	SwappedOut    string `json:"swappedOut,omitempty"`
}

func (ModuleRetrieved) Kind() Kind { return KindModuleRetrieved }

type ModuleSwapped struct {
	Header
	Ship       string `json:"ship"`
	ShipID     int64  `json:"shipId"`
	FromSlot   string `json:"fromSlot"`
	FromModule string `json:"fromModule"`
	ToSlot     string `json:"toSlot"`
	ToModule   string `json:"toModule,omitempty"`
}

func (ModuleSwapped) Kind() Kind { return KindModuleSwapped }

// StoredModule is one entry of a mass store operation.
type StoredModule struct {
	Slot     string `json:"slot"`
	Module   string `json:"module"`
	Modified bool   `json:"modified"`
}

type ModulesStored struct {
	Header
	Ship    string         `json:"ship"`
	ShipID  int64          `json:"shipId"`
	Modules []StoredModule `json:"modules"`
}

func (ModulesStored) Kind() Kind { return KindModulesStored }

// ModuleTransfer fires when a stored module is sent for. A ModuleArrived is
// scheduled when TransferTime is known.
type ModuleTransfer struct {
	Header
	Ship         string `json:"ship"`
	ShipID       int64  `json:"shipId"`
	StorageSlot  int64  `json:"storageSlot"`
	ServerID     int64  `json:"serverId"`
	Module       string `json:"module"`
	TransferCost int64  `json:"transferCost"`
	TransferTime *int64 `json:"transferTime,omitempty"`
}

func (ModuleTransfer) Kind() Kind { return KindModuleTransfer }

type ModuleArrived struct {
	Header
	Ship         string `json:"ship"`
	ShipID       int64  `json:"shipId"`
	StorageSlot  int64  `json:"storageSlot"`
	ServerID     int64  `json:"serverId"`
	Module       string `json:"module"`
	TransferCost int64  `json:"transferCost"`
	TransferTime *int64 `json:"transferTime,omitempty"`
	System       string `json:"system"`
	Station      string `json:"station"`
}

func (ModuleArrived) Kind() Kind { return KindModuleArrived }
