package journal

import (
	"strings"

	"github.com/journal-relay/backend/internal/event"
)

// Material categories as reported on full inventory listings.
var materialCategories = []struct {
	key      string
	category string
}{
	{"Raw", "Element"},
	{"Manufactured", "Manufactured"},
	{"Encoded", "Data"},
}

func materialInventory(r *record) []event.Event {
	ev := event.MaterialInventory{Header: r.header()}
	for _, c := range materialCategories {
		category := c.category
		r.Each(c.key, func(item *fields) {
			ev.Materials = append(ev.Materials, event.MaterialAmount{
				Material: item.Localised("Name"),
				Category: category,
				Amount:   item.Int("Count"),
			})
		})
	}
	return one(ev)
}

func voucherRewards(r *record) []event.FactionReward {
	var rewards []event.FactionReward
	r.Each("Factions", func(item *fields) {
		rewards = append(rewards, event.FactionReward{
			Faction: superpowerFaction(item.Str("Faction")),
			Amount:  item.Int("Amount"),
		})
	})
	return rewards
}

func redeemVoucher(r *record) []event.Event {
	rewards := voucherRewards(r)
	amount := r.Int("Amount")
	broker := r.OptDecimal("BrokerPercentage")
	switch strings.ToLower(r.Str("Type")) {
	case "bounty":
		return one(event.BountyRedeemed{Header: r.header(), Rewards: rewards, Amount: amount, BrokerPercentage: broker})
	case "combatbond":
		return one(event.BondRedeemed{Header: r.header(), Rewards: rewards, Amount: amount, BrokerPercentage: broker})
	case "trade":
		return one(event.TradeVoucherRedeemed{Header: r.header(), Rewards: rewards, Amount: amount, BrokerPercentage: broker})
	case "settlement", "scannable":
		return one(event.DataVoucherRedeemed{Header: r.header(), Rewards: rewards, Amount: amount, BrokerPercentage: broker})
	}
	return nil
}

func finePaid(legacy bool) rule {
	return func(r *record) []event.Event {
		return one(event.FinePaid{
			Header:           r.header(),
			Amount:           r.Int("Amount"),
			BrokerPercentage: r.OptDecimal("BrokerPercentage"),
			Legacy:           legacy,
		})
	}
}

func tradeRules() map[string]rule {
	return map[string]rule{
		"MarketBuy": func(r *record) []event.Event {
			return one(event.CommodityPurchased{
				Header:    r.header(),
				Commodity: r.Localised("Type"),
				Amount:    r.Int("Count"),
				Price:     r.Int("BuyPrice"),
			})
		},
		"MarketSell": func(r *record) []event.Event {
			price := r.Int("SellPrice")
			return one(event.CommoditySold{
				Header:      r.header(),
				Commodity:   r.Localised("Type"),
				Amount:      r.Int("Count"),
				Price:       price,
				Profit:      price - r.Int("AvgPricePaid"),
				Illegal:     r.BoolOr("IllegalGoods", false),
				Stolen:      r.BoolOr("StolenGoods", false),
				BlackMarket: r.BoolOr("BlackMarket", false),
			})
		},
		"CollectCargo": func(r *record) []event.Event {
			return one(event.CommodityCollected{Header: r.header(), Commodity: r.Localised("Type"), Stolen: r.Bool("Stolen")})
		},
		"EjectCargo": func(r *record) []event.Event {
			return one(event.CommodityEjected{
				Header:    r.header(),
				Commodity: r.Localised("Type"),
				Amount:    r.Int("Count"),
				Abandoned: r.Bool("Abandoned"),
			})
		},
		"MiningRefined": func(r *record) []event.Event {
			return one(event.CommodityRefined{Header: r.header(), Commodity: r.Localised("Type")})
		},
		"Cargo": func(r *record) []event.Event {
			ev := event.CargoInventory{Header: r.header(), Inventory: []event.CargoItem{}}
			r.Each("Inventory", func(item *fields) {
				ev.Inventory = append(ev.Inventory, event.CargoItem{
					Commodity: item.Localised("Name"),
					Amount:    item.Int("Count"),
				})
			})
			return one(ev)
		},
		"BuyDrones": func(r *record) []event.Event {
			return one(event.LimpetPurchased{Header: r.header(), Amount: r.Int("Count"), Price: r.Int("BuyPrice")})
		},
		"SellDrones": func(r *record) []event.Event {
			return one(event.LimpetSold{Header: r.header(), Amount: r.Int("Count"), Price: r.Int("SellPrice")})
		},
		"SearchAndRescue": func(r *record) []event.Event {
			return one(event.SearchAndRescue{
				Header:    r.header(),
				Commodity: r.Localised("Name"),
				Amount:    r.OptInt("Count"),
				Reward:    r.Int("Reward"),
			})
		},
		"BuyExplorationData": func(r *record) []event.Event {
			return one(event.ExplorationDataPurchased{Header: r.header(), System: r.Str("System"), Price: r.Int("Cost")})
		},
		"SellExplorationData": func(r *record) []event.Event {
			return one(event.ExplorationDataSold{
				Header:     r.header(),
				Systems:    r.Strings("Systems"),
				Discovered: r.Strings("Discovered"),
				Reward:     r.Int("BaseValue"),
				Bonus:      r.Int("Bonus"),
			})
		},
		"BuyTradeData": func(r *record) []event.Event {
			return one(event.TradeDataPurchased{Header: r.header(), System: r.Str("System"), Price: r.Int("Cost")})
		},
		"MaterialCollected": func(r *record) []event.Event {
			return one(event.MaterialCollected{Header: r.header(), Material: r.Localised("Name"), Amount: r.Int("Count")})
		},
		"MaterialDiscarded": func(r *record) []event.Event {
			return one(event.MaterialDiscarded{Header: r.header(), Material: r.Localised("Name"), Amount: r.Int("Count")})
		},
		"MaterialDiscovered": func(r *record) []event.Event {
			return one(event.MaterialDiscovered{Header: r.header(), Material: r.Localised("Name")})
		},
		"ScientificResearch": func(r *record) []event.Event {
			return one(event.MaterialDonated{Header: r.header(), Material: r.Localised("Name"), Amount: r.Int("Count")})
		},
		"Materials":      materialInventory,
		"RedeemVoucher":  redeemVoucher,
		"PayFines":       finePaid(false),
		"PayLegacyFines": finePaid(true),
	}
}
