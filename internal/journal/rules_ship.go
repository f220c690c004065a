package journal

import (
	"math"
	"strings"
	"time"

	"github.com/journal-relay/backend/internal/event"
)

// maxTransferSeconds is the longest transfer time a time.Duration holds.
const maxTransferSeconds = math.MaxInt64 / int64(time.Second)

// transferDelay converts a transfer time in seconds. Missing, negative and
// unrepresentable times schedule nothing.
func (r *record) transferDelay(seconds *int64) (time.Duration, bool) {
	if seconds == nil || *seconds < 0 {
		return 0, false
	}
	if *seconds > maxTransferSeconds {
		r.d.log.Debug().Int64("seconds", *seconds).Msg("Transfer time out of range; not scheduling arrival")
		return 0, false
	}
	return time.Duration(*seconds) * time.Second, true
}

// cosmeticSlots hold paint, decals and the like rather than modules.
var cosmeticSlots = []string{"PlanetaryApproachSuite", "Bobble", "Decal", "WeaponColour", "EngineColour", "ShipKit", "ShipName", "ShipID"}

func isCosmetic(slot string) bool {
	for _, prefix := range cosmeticSlots {
		if strings.HasPrefix(slot, prefix) {
			return true
		}
	}
	return false
}

func loadout(r *record) []event.Event {
	ev := event.ShipLoadout{
		Header:    r.header(),
		Ship:      r.Str("Ship"),
		ShipID:    r.Int("ShipID"),
		ShipName:  r.Str("ShipName"),
		ShipIdent: r.Str("ShipIdent"),
	}
	r.Each("Modules", func(m *fields) {
		slot := m.Str("Slot")
		switch {
		case slot == "PaintJob":
			ev.Paintjob = m.Str("Item")
			return
		case isCosmetic(slot):
			return
		}
		health := m.Decimal("Health") * 100
		if health < 5 {
			health = math.Round(health*10) / 10
		} else {
			health = math.Round(health)
		}
		ev.Modules = append(ev.Modules, event.LoadoutModule{
			Slot:     slot,
			Item:     m.Str("Item"),
			On:       m.Bool("On"),
			Priority: m.Int("Priority"),
			Health:   health,
			Value:    m.OptInt("Value"),
		})
	})
	return one(ev)
}

func shipyardTransfer(r *record) []event.Event {
	ev := event.ShipTransferInitiated{
		Header:   r.header(),
		Ship:     r.Str("ShipType"),
		ShipID:   r.Int("ShipID"),
		System:   r.Str("System"),
		Distance: r.Decimal("Distance"),
		Price:    r.OptInt("TransferPrice"),
		Time:     r.OptInt("TransferTime"),
	}
	if delay, ok := r.transferDelay(ev.Time); ok {
		r.schedule(ev, delay, func(at event.Place) event.Event {
			return event.ShipArrived{
				Header:   event.NewHeader(ev.Timestamp().Add(delay), ev.Raw()),
				Ship:     ev.Ship,
				ShipID:   ev.ShipID,
				System:   at.System,
				Station:  at.Station,
				Distance: ev.Distance,
				Price:    ev.Price,
				Time:     ev.Time,
			}
		})
	}
	return one(ev)
}

func fetchRemoteModule(r *record) []event.Event {
	ev := event.ModuleTransfer{
		Header:       r.header(),
		Ship:         r.Str("Ship"),
		ShipID:       r.Int("ShipID"),
		StorageSlot:  r.Int("StorageSlot"),
		ServerID:     r.Int("ServerId"),
		Module:       r.Localised("StoredItem"),
		TransferCost: r.Int("TransferCost"),
		TransferTime: r.OptInt("TransferTime"),
	}
	if delay, ok := r.transferDelay(ev.TransferTime); ok {
		r.schedule(ev, delay, func(at event.Place) event.Event {
			return event.ModuleArrived{
				Header:       event.NewHeader(ev.Timestamp().Add(delay), ev.Raw()),
				Ship:         ev.Ship,
				ShipID:       ev.ShipID,
				StorageSlot:  ev.StorageSlot,
				ServerID:     ev.ServerID,
				Module:       ev.Module,
				TransferCost: ev.TransferCost,
				TransferTime: ev.TransferTime,
				System:       at.System,
				Station:      at.Station,
			}
		})
	}
	return one(ev)
}

func shipRules() map[string]rule {
	return map[string]rule{
		"ShipyardBuy": func(r *record) []event.Event {
			return one(event.ShipPurchased{
				Header:       r.header(),
				Ship:         r.Str("ShipType"),
				Price:        r.Int("ShipPrice"),
				SoldShip:     r.Str("SellOldShip"),
				SoldShipID:   r.OptInt("SellShipID"),
				SoldPrice:    r.OptInt("SellPrice"),
				StoredShip:   r.Str("StoreOldShip"),
				StoredShipID: r.OptInt("StoreShipID"),
			})
		},
		"ShipyardNew": func(r *record) []event.Event {
			return one(event.ShipDelivered{Header: r.header(), Ship: r.Str("ShipType"), ShipID: r.Int("NewShipID")})
		},
		"ShipyardSell": func(r *record) []event.Event {
			return one(event.ShipSold{
				Header: r.header(),
				Ship:   r.Str("ShipType"),
				ShipID: r.Int("SellShipID"),
				Price:  r.Int("ShipPrice"),
				System: r.Str("System"),
			})
		},
		"SellShipOnRebuy": func(r *record) []event.Event {
			return one(event.ShipSoldOnRebuy{
				Header: r.header(),
				Ship:   r.Str("ShipType"),
				ShipID: r.Int("SellShipId"),
				Price:  r.Int("ShipPrice"),
				System: r.Str("System"),
			})
		},
		"ShipyardSwap": func(r *record) []event.Event {
			return one(event.ShipSwapped{
				Header:       r.header(),
				Ship:         r.Str("ShipType"),
				ShipID:       r.Int("ShipID"),
				SoldShip:     r.Str("SellOldShip"),
				SoldShipID:   r.OptInt("SellShipID"),
				StoredShip:   r.Str("StoreOldShip"),
				StoredShipID: r.OptInt("StoreShipID"),
			})
		},
		"ShipyardTransfer": shipyardTransfer,
		"ShipyardArrived": func(r *record) []event.Event {
			return one(event.ShipArrived{
				Header:   r.header(),
				Ship:     r.Str("ShipType"),
				ShipID:   r.Int("ShipID"),
				System:   r.Str("System"),
				Station:  r.Str("Station"),
				Distance: r.Decimal("Distance"),
				Price:    r.OptInt("TransferPrice"),
				Time:     r.OptInt("TransferTime"),
			})
		},
		"SetUserShipName": func(r *record) []event.Event {
			return one(event.ShipRenamed{
				Header: r.header(),
				Ship:   r.Str("Ship"),
				ShipID: r.Int("ShipID"),
				Name:   r.Str("UserShipName"),
				Ident:  r.Str("UserShipId"),
			})
		},
		"RefuelAll":     refuel,
		"RefuelPartial": refuel,
		"FuelScoop": func(r *record) []event.Event {
			return one(event.ShipRefuelled{
				Header: r.header(),
				Source: event.RefuelScoop,
				Amount: r.Decimal("Scooped"),
				Total:  r.OptDecimal("Total"),
			})
		},
		"Repair": func(r *record) []event.Event {
			return one(event.ShipRepaired{Header: r.header(), Item: r.Localised("Item"), Price: r.Int("Cost")})
		},
		"RepairAll": func(r *record) []event.Event {
			return one(event.ShipRepaired{Header: r.header(), Price: r.Int("Cost")})
		},
		"BuyAmmo":        restock,
		"RestockVehicle": restock,
		"Loadout":        loadout,
		"ModuleBuy": func(r *record) []event.Event {
			return one(event.ModulePurchased{
				Header:     r.header(),
				Ship:       r.Str("Ship"),
				ShipID:     r.Int("ShipID"),
				Slot:       r.Str("Slot"),
				Module:     r.Localised("BuyItem"),
				Price:      r.Int("BuyPrice"),
				SoldModule: r.Localised("SellItem"),
				SoldPrice:  r.OptInt("SellPrice"),
				Stored:     r.Localised("StoredItem"),
			})
		},
		"ModuleSell": func(r *record) []event.Event {
			return one(event.ModuleSold{
				Header: r.header(),
				Ship:   r.Str("Ship"),
				ShipID: r.Int("ShipID"),
				Slot:   r.Str("Slot"),
				Module: r.Localised("SellItem"),
				Price:  r.Int("SellPrice"),
			})
		},
		"ModuleSellRemote": func(r *record) []event.Event {
			return one(event.ModuleSoldFromStorage{
				Header:      r.header(),
				Ship:        r.Str("Ship"),
				ShipID:      r.Int("ShipID"),
				StorageSlot: r.Int("StorageSlot"),
				ServerID:    r.Int("ServerId"),
				Module:      r.Localised("SellItem"),
				Price:       r.Int("SellPrice"),
			})
		},
		"ModuleStore": func(r *record) []event.Event {
			return one(event.ModuleStored{
				Header:        r.header(),
				Ship:          r.Str("Ship"),
				ShipID:        r.Int("ShipID"),
				Slot:          r.Str("Slot"),
				Module:        r.Localised("StoredItem"),
				Cost:          r.OptInt("Cost"),
				Modifications: r.Str("EngineerModifications"),
				Replacement:   r.Localised("ReplacementItem"),
			})
		},
		"ModuleRetrieve": func(r *record) []event.Event {
			return one(event.ModuleRetrieved{
				Header:        r.header(),
				Ship:          r.Str("Ship"),
				ShipID:        r.Int("ShipID"),
				Slot:          r.Str("Slot"),
				Module:        r.Localised("RetrievedItem"),
				Cost:          r.OptInt("Cost"),
				Modifications: r.Str("EngineerModifications"),
				SwappedOut:    r.Localised("SwapOutItem"),
			})
		},
		"ModuleSwap": func(r *record) []event.Event {
			return one(event.ModuleSwapped{
				Header:     r.header(),
				Ship:       r.Str("Ship"),
				ShipID:     r.Int("ShipID"),
				FromSlot:   r.Str("FromSlot"),
				FromModule: r.Localised("FromItem"),
				ToSlot:     r.Str("ToSlot"),
				ToModule:   r.Localised("ToItem"),
			})
		},
		"MassModuleStore": func(r *record) []event.Event {
			ev := event.ModulesStored{Header: r.header(), Ship: r.Str("Ship"), ShipID: r.Int("ShipID")}
			r.Each("Items", func(item *fields) {
				ev.Modules = append(ev.Modules, event.StoredModule{
					Slot:     item.Str("Slot"),
					Module:   item.Localised("Name"),
					Modified: item.Str("EngineerModifications") != "",
				})
			})
			return one(ev)
		},
		"FetchRemoteModule": fetchRemoteModule,
		"ModuleArrived": func(r *record) []event.Event {
			return one(event.ModuleArrived{
				Header:       r.header(),
				Ship:         r.Str("Ship"),
				ShipID:       r.Int("ShipID"),
				StorageSlot:  r.Int("StorageSlot"),
				ServerID:     r.Int("ServerId"),
				Module:       r.Localised("StoredItem"),
				TransferCost: r.Int("TransferCost"),
				TransferTime: r.OptInt("TransferTime"),
				System:       r.Str("System"),
				Station:      r.Str("Station"),
			})
		},
	}
}

func refuel(r *record) []event.Event {
	price := r.Int("Cost")
	return one(event.ShipRefuelled{Header: r.header(), Source: event.RefuelMarket, Price: &price, Amount: r.Decimal("Amount")})
}

func restock(r *record) []event.Event {
	return one(event.ShipRestocked{Header: r.header(), Price: r.Int("Cost")})
}
