package event

type PowerJoined struct {
	Header
	Power string `json:"power"`
}

func (PowerJoined) Kind() Kind { return KindPowerJoined }

type PowerLeft struct {
	Header
	Power string `json:"power"`
}

func (PowerLeft) Kind() Kind { return KindPowerLeft }

type PowerDefected struct {
	Header
	FromPower string `json:"fromPower"`
	ToPower   string `json:"toPower"`
}

func (PowerDefected) Kind() Kind { return KindPowerDefected }

type PowerVoteCast struct {
	Header
	Power  string `json:"power"`
	System string `json:"system"`
	Votes  int64  `json:"votes"`
}

func (PowerVoteCast) Kind() Kind { return KindPowerVoteCast }

type PowerSalaryClaimed struct {
	Header
	Power  string `json:"power"`
	Amount int64  `json:"amount"`
}

func (PowerSalaryClaimed) Kind() Kind { return KindPowerSalaryClaimed }

type PowerCommodityObtained struct {
	Header
	Power     string `json:"power"`
	Commodity string `json:"commodity"`
	Amount    int64  `json:"amount"`
}

func (PowerCommodityObtained) Kind() Kind { return KindPowerCommodityObtained }

type PowerCommodityDelivered struct {
	Header
	Power     string `json:"power"`
	Commodity string `json:"commodity"`
	Amount    int64  `json:"amount"`
}

func (PowerCommodityDelivered) Kind() Kind { return KindPowerCommodityDelivered }

type PowerCommodityFastTracked struct {
	Header
	Power  string `json:"power"`
	Amount int64  `json:"amount"`
}

func (PowerCommodityFastTracked) Kind() Kind { return KindPowerCommodityFastTracked }

type PowerVoucherReceived struct {
	Header
	Power   string   `json:"power"`
	Systems []string `json:"systems"`
}

func (PowerVoucherReceived) Kind() Kind { return KindPowerVoucherReceived }

type Music struct {
	Header
	Track string `json:"track"`
}

func (Music) Kind() Kind { return KindMusic }

type Screenshot struct {
	Header
	Filename  string   `json:"filename"`
	Width     int64    `json:"width"`
	Height    int64    `json:"height"`
	System    string   `json:"system,omitempty"`
	Body      string   `json:"body,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (Screenshot) Kind() Kind { return KindScreenshot }

type DatalinkMessage struct {
	Header
	Message string `json:"message"`
}

func (DatalinkMessage) Kind() Kind { return KindDatalinkMessage }

type DataScanned struct {
	Header
	Type string `json:"type"`
}

func (DataScanned) Kind() Kind { return KindDataScanned }
