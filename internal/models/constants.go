package models

const (
	DistrictDowntown    = "downtown"
	DistrictResidential = "residential"
	DistrictIndustrial  = "industrial"
	DistrictSuburban    = "suburban"

	SignalStateRed    = "red"
	SignalStateYellow = "yellow"
	SignalStateGreen  = "green"

	ConditionClear     = "clear"
	ConditionCloudy    = "cloudy"
	ConditionRain      = "rain"
	ConditionHeavyRain = "heavy_rain"
	ConditionSnow      = "snow"
	ConditionFog       = "fog"
)

var (
	Districts = []string{
		DistrictDowntown,
		DistrictResidential,
		DistrictIndustrial,
		DistrictSuburban,
	}

	SignalStates = []string{
		SignalStateRed,
		SignalStateYellow,
		SignalStateGreen,
	}

	WeatherConditions = []string{
		ConditionClear,
		ConditionCloudy,
		ConditionRain,
		ConditionHeavyRain,
		ConditionSnow,
		ConditionFog,
	}
)
