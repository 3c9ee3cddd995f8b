package schema

import "github.com/Altair29/J-GLOW-sub002/internal/domain/model"

// Optionは選択肢1件です。
type Option struct {
	Value string
	Label string
}

// SectorTableVersionは在留資格ごとの分野表の版です。制度改正で分野が変わったら更新します。
const SectorTableVersion = "2026.04"

var (
	sectorNursingCare      = Option{Value: "nursing_care", Label: "介護"}
	sectorBuildingCleaning = Option{Value: "building_cleaning", Label: "ビルクリーニング"}
	sectorIndustrial       = Option{Value: "industrial_products", Label: "工業製品製造業"}
	sectorConstruction     = Option{Value: "construction", Label: "建設"}
	sectorShipbuilding     = Option{Value: "shipbuilding", Label: "造船・舶用工業"}
	sectorAutoMaintenance  = Option{Value: "automobile_maintenance", Label: "自動車整備"}
	sectorAviation         = Option{Value: "aviation", Label: "航空"}
	sectorAccommodation    = Option{Value: "accommodation", Label: "宿泊"}
	sectorAgriculture      = Option{Value: "agriculture", Label: "農業"}
	sectorFishery          = Option{Value: "fishery", Label: "漁業"}
	sectorFoodManufacture  = Option{Value: "food_manufacturing", Label: "飲食料品製造業"}
	sectorFoodService      = Option{Value: "food_service", Label: "外食業"}
	sectorAutoTransport    = Option{Value: "automobile_transport", Label: "自動車運送業"}
	sectorRailway          = Option{Value: "railway", Label: "鉄道"}
	sectorForestry         = Option{Value: "forestry", Label: "林業"}
	sectorWoodIndustry     = Option{Value: "wood_industry", Label: "木材産業"}
)

// SectorOptionsは在留資格から選択可能な分野への対応表です。
var SectorOptions = map[model.VisaCategory][]Option{
	model.SpecifiedSkill1: {
		sectorNursingCare, sectorBuildingCleaning, sectorIndustrial, sectorConstruction,
		sectorShipbuilding, sectorAutoMaintenance, sectorAviation, sectorAccommodation,
		sectorAgriculture, sectorFishery, sectorFoodManufacture, sectorFoodService,
		sectorAutoTransport, sectorRailway, sectorForestry, sectorWoodIndustry,
	},
	// 2号は介護と2024年追加分野を含まない
	model.SpecifiedSkill2: {
		sectorBuildingCleaning, sectorIndustrial, sectorConstruction, sectorShipbuilding,
		sectorAutoMaintenance, sectorAviation, sectorAccommodation, sectorAgriculture,
		sectorFishery, sectorFoodManufacture, sectorFoodService,
	},
	model.Ikusei: {
		sectorNursingCare, sectorBuildingCleaning, sectorIndustrial, sectorConstruction,
		sectorShipbuilding, sectorAutoMaintenance, sectorAccommodation, sectorAgriculture,
		sectorFishery, sectorFoodManufacture, sectorFoodService, sectorAutoTransport,
		sectorRailway, sectorForestry, sectorWoodIndustry,
	},
}

var staticOptions = map[model.FieldKey][]Option{
	model.FieldVisaCategory: {
		{Value: string(model.SpecifiedSkill1), Label: model.SpecifiedSkill1.Label()},
		{Value: string(model.SpecifiedSkill2), Label: model.SpecifiedSkill2.Label()},
		{Value: string(model.Ikusei), Label: model.Ikusei.Label()},
	},
	model.FieldContractType: {
		{Value: string(model.FixedTerm), Label: model.FixedTerm.Label()},
		{Value: string(model.Indefinite), Label: model.Indefinite.Label()},
	},
	model.FieldRenewalPolicy: {
		{Value: string(model.RenewalAutomatic), Label: "自動的に更新する"},
		{Value: string(model.RenewalPossible), Label: "更新する場合があり得る"},
		{Value: string(model.RenewalNone), Label: "契約の更新はしない"},
	},
	model.FieldWorkScheduleType: {
		{Value: string(model.FixedSchedule), Label: model.FixedSchedule.Label()},
		{Value: string(model.ShiftSchedule), Label: model.ShiftSchedule.Label()},
	},
	model.FieldRestDays: weekdayOptions(),
	model.FieldWageType: {
		{Value: string(model.MonthlyWage), Label: model.MonthlyWage.Label()},
		{Value: string(model.DailyWage), Label: model.DailyWage.Label()},
		{Value: string(model.HourlyWage), Label: model.HourlyWage.Label()},
	},
	model.FieldOutputLanguage: languageOptions(),
}

func weekdayOptions() []Option {
	out := make([]Option, 0, len(model.Weekdays))
	for _, d := range model.Weekdays {
		out = append(out, Option{Value: string(d), Label: d.Label()})
	}
	return out
}

func languageOptions() []Option {
	out := make([]Option, 0, len(model.Languages))
	for _, l := range model.Languages {
		out = append(out, Option{Value: string(l), Label: l.Label()})
	}
	return out
}

// OptionsForは選択項目の選択肢を返します。分野は在留資格に応じて変わります。
// 選択肢を持たない項目ではnilを返します。
func OptionsFor(key model.FieldKey, visa model.VisaCategory) []Option {
	if key == model.FieldSector {
		return append([]Option(nil), SectorOptions[visa]...)
	}
	opts, ok := staticOptions[key]
	if !ok {
		return nil
	}
	return append([]Option(nil), opts...)
}

// OptionLabelは値に対応する表示名を返します。見つからない場合は値をそのまま返します。
func OptionLabel(key model.FieldKey, value string) string {
	if key == model.FieldSector {
		for _, opts := range SectorOptions {
			for _, o := range opts {
				if o.Value == value {
					return o.Label
				}
			}
		}
		return value
	}
	for _, o := range staticOptions[key] {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
