package event

// Kind discriminates event variants. Values are stable and appear in the
// event feed.
type Kind string

// Navigation.
const (
	KindDocked                   Kind = "docked"
	KindUndocked                 Kind = "undocked"
	KindLocation                 Kind = "location"
	KindJumped                   Kind = "jumped"
	KindFSDEngaged               Kind = "fsd_engaged"
	KindEnteredSupercruise       Kind = "entered_supercruise"
	KindEnteredNormalSpace       Kind = "entered_normal_space"
	KindTouchdown                Kind = "touchdown"
	KindLiftoff                  Kind = "liftoff"
	KindDockingRequested         Kind = "docking_requested"
	KindDockingGranted           Kind = "docking_granted"
	KindDockingDenied            Kind = "docking_denied"
	KindDockingCancelled         Kind = "docking_cancelled"
	KindDockingTimedOut          Kind = "docking_timed_out"
	KindSettlementApproached     Kind = "settlement_approached"
	KindSignalSourceEntered      Kind = "signal_source_entered"
	KindNavBeaconScanned         Kind = "nav_beacon_scanned"
	KindJetConeBoost             Kind = "jet_cone_boost"
	KindMarketInformationUpdated Kind = "market_information_updated"
)

// Vehicles.
const (
	KindSRVLaunched        Kind = "srv_launched"
	KindSRVDocked          Kind = "srv_docked"
	KindFighterLaunched    Kind = "fighter_launched"
	KindFighterDocked      Kind = "fighter_docked"
	KindControllingFighter Kind = "controlling_fighter"
	KindControllingShip    Kind = "controlling_ship"
	KindVehicleDestroyed   Kind = "vehicle_destroyed"
)

// Commander.
const (
	KindCommanderContinued   Kind = "commander_continued"
	KindEnteredCQC           Kind = "entered_cqc"
	KindCommanderStarted     Kind = "commander_started"
	KindCommanderReset       Kind = "commander_reset"
	KindCommanderRatings     Kind = "commander_ratings"
	KindCommanderProgress    Kind = "commander_progress"
	KindCombatPromotion      Kind = "combat_promotion"
	KindTradePromotion       Kind = "trade_promotion"
	KindExplorationPromotion Kind = "exploration_promotion"
	KindFederationPromotion  Kind = "federation_promotion"
	KindEmpirePromotion      Kind = "empire_promotion"
	KindFriends              Kind = "friends"
	KindFileHeader           Kind = "file_header"
)

// Combat and law.
const (
	KindBountyAwarded      Kind = "bounty_awarded"
	KindBondAwarded        Kind = "bond_awarded"
	KindDataVoucherAwarded Kind = "data_voucher_awarded"
	KindFineIncurred       Kind = "fine_incurred"
	KindBountyIncurred     Kind = "bounty_incurred"
	KindShipInterdicted    Kind = "ship_interdicted"
	KindShipInterdiction   Kind = "ship_interdiction"
	KindKilled             Kind = "killed"
	KindDied               Kind = "died"
	KindShipRepurchased    Kind = "ship_repurchased"
	KindShieldsUp          Kind = "shields_up"
	KindShieldsDown        Kind = "shields_down"
	KindHullDamaged        Kind = "hull_damaged"
	KindHeatWarning        Kind = "heat_warning"
	KindHeatDamage         Kind = "heat_damage"
	KindCockpitBreached    Kind = "cockpit_breached"
	KindSelfDestruct       Kind = "self_destruct"
	KindShipShutdown       Kind = "ship_shutdown"
)

// Communications.
const (
	KindMessageReceived          Kind = "message_received"
	KindMessageSent              Kind = "message_sent"
	KindNoFireZoneEntered        Kind = "no_fire_zone_entered"
	KindNoFireZoneExited         Kind = "no_fire_zone_exited"
	KindNPCInterdictionCommenced Kind = "npc_interdiction_commenced"
	KindNPCAttackCommenced       Kind = "npc_attack_commenced"
	KindNPCCargoScanCommenced    Kind = "npc_cargo_scan_commenced"
)

// Crew.
const (
	KindCrewHired             Kind = "crew_hired"
	KindCrewFired             Kind = "crew_fired"
	KindCrewAssigned          Kind = "crew_assigned"
	KindCrewJoined            Kind = "crew_joined"
	KindCrewLeft              Kind = "crew_left"
	KindCrewRoleChanged       Kind = "crew_role_changed"
	KindCrewMemberJoined      Kind = "crew_member_joined"
	KindCrewMemberLeft        Kind = "crew_member_left"
	KindCrewMemberRoleChanged Kind = "crew_member_role_changed"
	KindCrewMemberRemoved     Kind = "crew_member_removed"
	KindCrewMemberLaunched    Kind = "crew_member_launched"
)

// Ships and modules.
const (
	KindShipPurchased         Kind = "ship_purchased"
	KindShipDelivered         Kind = "ship_delivered"
	KindShipSold              Kind = "ship_sold"
	KindShipSoldOnRebuy       Kind = "ship_sold_on_rebuy"
	KindShipSwapped           Kind = "ship_swapped"
	KindShipTransferInitiated Kind = "ship_transfer_initiated"
	KindShipArrived           Kind = "ship_arrived"
	KindShipRenamed           Kind = "ship_renamed"
	KindShipRefuelled         Kind = "ship_refuelled"
	KindShipRepaired          Kind = "ship_repaired"
	KindShipRestocked         Kind = "ship_restocked"
	KindShipLoadout           Kind = "ship_loadout"
	KindModulePurchased       Kind = "module_purchased"
	KindModuleSold            Kind = "module_sold"
	KindModuleSoldFromStorage Kind = "module_sold_from_storage"
	KindModuleStored          Kind = "module_stored"
	KindModuleRetrieved       Kind = "module_retrieved"
	KindModuleSwapped         Kind = "module_swapped"
	KindModulesStored         Kind = "modules_stored"
	KindModuleTransfer        Kind = "module_transfer"
	KindModuleArrived         Kind = "module_arrived"
)

// Trade, exploration and materials.
const (
	KindCommodityPurchased       Kind = "commodity_purchased"
	KindCommoditySold            Kind = "commodity_sold"
	KindCommodityCollected       Kind = "commodity_collected"
	KindCommodityEjected         Kind = "commodity_ejected"
	KindCommodityRefined         Kind = "commodity_refined"
	KindCargoInventory           Kind = "cargo_inventory"
	KindLimpetPurchased          Kind = "limpet_purchased"
	KindLimpetSold               Kind = "limpet_sold"
	KindSearchAndRescue          Kind = "search_and_rescue"
	KindExplorationDataPurchased Kind = "exploration_data_purchased"
	KindExplorationDataSold      Kind = "exploration_data_sold"
	KindTradeDataPurchased       Kind = "trade_data_purchased"
	KindMaterialCollected        Kind = "material_collected"
	KindMaterialDiscarded        Kind = "material_discarded"
	KindMaterialDiscovered       Kind = "material_discovered"
	KindMaterialDonated          Kind = "material_donated"
	KindMaterialInventory        Kind = "material_inventory"
	KindMaterialThreshold        Kind = "material_threshold"
)

// Vouchers and fines.
const (
	KindBountyRedeemed       Kind = "bounty_redeemed"
	KindBondRedeemed         Kind = "bond_redeemed"
	KindTradeVoucherRedeemed Kind = "trade_voucher_redeemed"
	KindDataVoucherRedeemed  Kind = "data_voucher_redeemed"
	KindFinePaid             Kind = "fine_paid"
)

// Missions and engineers.
const (
	KindMissionAccepted     Kind = "mission_accepted"
	KindMissionCompleted    Kind = "mission_completed"
	KindMissionAbandoned    Kind = "mission_abandoned"
	KindMissionFailed       Kind = "mission_failed"
	KindMissionRedirected   Kind = "mission_redirected"
	KindModificationCrafted Kind = "modification_crafted"
	KindModificationApplied Kind = "modification_applied"
	KindEngineerProgressed  Kind = "engineer_progressed"
)

// Powerplay.
const (
	KindPowerJoined               Kind = "power_joined"
	KindPowerLeft                 Kind = "power_left"
	KindPowerDefected             Kind = "power_defected"
	KindPowerVoteCast             Kind = "power_vote_cast"
	KindPowerSalaryClaimed        Kind = "power_salary_claimed"
	KindPowerCommodityObtained    Kind = "power_commodity_obtained"
	KindPowerCommodityDelivered   Kind = "power_commodity_delivered"
	KindPowerCommodityFastTracked Kind = "power_commodity_fast_tracked"
	KindPowerVoucherReceived      Kind = "power_voucher_received"
)

// Miscellaneous.
const (
	KindMusic           Kind = "music"
	KindScreenshot      Kind = "screenshot"
	KindDatalinkMessage Kind = "datalink_message"
	KindDataScanned     Kind = "data_scanned"
)
