package simulator

import "github.com/smartcitydata/trafficdatasim/internal/models"

type Range struct {
	Min float64
	Max float64
}

// TimeOfDayPattern is one band of the daily traffic curve. The bands are
// non-overlapping and cover all 24 hours.
type TimeOfDayPattern struct {
	Name       string
	StartHour  int // inclusive
	EndHour    int // exclusive
	Multiplier float64
}

var TimeOfDayPatterns = []TimeOfDayPattern{
	{Name: "night", StartHour: 0, EndHour: 6, Multiplier: 0.2},
	{Name: "morning_rush", StartHour: 6, EndHour: 9, Multiplier: 1.5},
	{Name: "midday", StartHour: 9, EndHour: 16, Multiplier: 0.8},
	{Name: "evening_rush", StartHour: 16, EndHour: 19, Multiplier: 1.6},
	{Name: "evening", StartHour: 19, EndHour: 24, Multiplier: 0.6},
}

// DistrictProfile carries the per-district constants used by both the grid
// builder and the traffic model.
type DistrictProfile struct {
	TrafficMultiplier float64
	CameraProbability float64
}

var DistrictProfiles = map[string]DistrictProfile{
	models.DistrictDowntown:    {TrafficMultiplier: 1.5, CameraProbability: 0.8},
	models.DistrictResidential: {TrafficMultiplier: 0.7, CameraProbability: 0.3},
	models.DistrictIndustrial:  {TrafficMultiplier: 1.2, CameraProbability: 0.5},
	models.DistrictSuburban:    {TrafficMultiplier: 0.5, CameraProbability: 0.2},
}

// TrafficWeatherImpact maps a weather condition to its effect on traffic
// volume. The traffic model draws from this table independently per reading;
// it is deliberately not coupled to the weather model's state so the traffic
// model stays stateless.
type TrafficWeatherImpact struct {
	Condition  string
	Multiplier float64
	Weight     float64
}

var TrafficWeatherImpacts = []TrafficWeatherImpact{
	{Condition: models.ConditionClear, Multiplier: 1.0, Weight: 0.6},
	{Condition: models.ConditionRain, Multiplier: 0.7, Weight: 0.2},
	{Condition: models.ConditionHeavyRain, Multiplier: 0.5, Weight: 0.05},
	{Condition: models.ConditionSnow, Multiplier: 0.4, Weight: 0.05},
	{Condition: models.ConditionFog, Multiplier: 0.6, Weight: 0.1},
}

// ConditionProfile holds the sampling bands for one weather condition.
type ConditionProfile struct {
	Weight            float64
	Temperature       Range // degrees Fahrenheit
	Humidity          Range
	BasePrecipitation float64 // inches per hour
	BaseVisibility    float64 // miles
}

var ConditionProfiles = map[string]ConditionProfile{
	models.ConditionClear: {
		Weight:         0.4,
		Temperature:    Range{65, 85},
		Humidity:       Range{0.3, 0.5},
		BaseVisibility: 10,
	},
	models.ConditionCloudy: {
		Weight:         0.3,
		Temperature:    Range{60, 75},
		Humidity:       Range{0.5, 0.7},
		BaseVisibility: 10,
	},
	models.ConditionRain: {
		Weight:            0.15,
		Temperature:       Range{55, 70},
		Humidity:          Range{0.7, 0.9},
		BasePrecipitation: 0.1,
		BaseVisibility:    5,
	},
	models.ConditionHeavyRain: {
		Weight:            0.05,
		Temperature:       Range{50, 65},
		Humidity:          Range{0.85, 0.95},
		BasePrecipitation: 0.5,
		BaseVisibility:    2,
	},
	models.ConditionSnow: {
		Weight:            0.05,
		Temperature:       Range{20, 35},
		Humidity:          Range{0.7, 0.9},
		BasePrecipitation: 0.2,
		BaseVisibility:    3,
	},
	models.ConditionFog: {
		Weight:         0.05,
		Temperature:    Range{55, 65},
		Humidity:       Range{0.9, 1.0},
		BaseVisibility: 0.5,
	},
}
