package journal

import "github.com/journal-relay/backend/internal/event"

func miscRules() map[string]rule {
	return map[string]rule{
		"PowerplayJoin": func(r *record) []event.Event {
			return one(event.PowerJoined{Header: r.header(), Power: r.Str("Power")})
		},
		"PowerplayLeave": func(r *record) []event.Event {
			return one(event.PowerLeft{Header: r.header(), Power: r.Str("Power")})
		},
		"PowerplayDefect": func(r *record) []event.Event {
			return one(event.PowerDefected{Header: r.header(), FromPower: r.Str("FromPower"), ToPower: r.Str("ToPower")})
		},
		"PowerplayVote": func(r *record) []event.Event {
			return one(event.PowerVoteCast{Header: r.header(), Power: r.Str("Power"), System: r.Str("System"), Votes: r.Int("Votes")})
		},
		"PowerplaySalary": func(r *record) []event.Event {
			return one(event.PowerSalaryClaimed{Header: r.header(), Power: r.Str("Power"), Amount: r.Int("Amount")})
		},
		"PowerplayCollect": func(r *record) []event.Event {
			return one(event.PowerCommodityObtained{
				Header:    r.header(),
				Power:     r.Str("Power"),
				Commodity: r.Localised("Type"),
				Amount:    r.Int("Count"),
			})
		},
		"PowerplayDeliver": func(r *record) []event.Event {
			return one(event.PowerCommodityDelivered{
				Header:    r.header(),
				Power:     r.Str("Power"),
				Commodity: r.Localised("Type"),
				Amount:    r.Int("Count"),
			})
		},
		"PowerplayFastTrack": func(r *record) []event.Event {
			return one(event.PowerCommodityFastTracked{Header: r.header(), Power: r.Str("Power"), Amount: r.Int("Cost")})
		},
		"PowerplayVoucher": func(r *record) []event.Event {
			return one(event.PowerVoucherReceived{Header: r.header(), Power: r.Str("Power"), Systems: r.Strings("Systems")})
		},
		"Music": func(r *record) []event.Event {
			return one(event.Music{Header: r.header(), Track: r.Str("MusicTrack")})
		},
		"Screenshot": func(r *record) []event.Event {
			return one(event.Screenshot{
				Header:    r.header(),
				Filename:  r.Str("Filename"),
				Width:     r.Int("Width"),
				Height:    r.Int("Height"),
				System:    r.Str("System"),
				Body:      r.Str("Body"),
				Latitude:  r.OptDecimal("Latitude"),
				Longitude: r.OptDecimal("Longitude"),
			})
		},
		"DatalinkScan": func(r *record) []event.Event {
			return one(event.DatalinkMessage{Header: r.header(), Message: r.Str("Message")})
		},
		"DataScanned": func(r *record) []event.Event {
			return one(event.DataScanned{Header: r.header(), Type: r.Localised("Type")})
		},
	}
}
