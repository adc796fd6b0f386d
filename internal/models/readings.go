package models

// VehicleTypeCounts breaks a reading's vehicle count down by vehicle class.
// The four counts always sum to the reading's VehicleCount.
type VehicleTypeCounts struct {
	Car        int `json:"car" parquet:"name=car,type=INT32"`
	Truck      int `json:"truck" parquet:"name=truck,type=INT32"`
	Motorcycle int `json:"motorcycle" parquet:"name=motorcycle,type=INT32"`
	Bus        int `json:"bus" parquet:"name=bus,type=INT32"`
}

func (v VehicleTypeCounts) Total() int {
	return v.Car + v.Truck + v.Motorcycle + v.Bus
}

// TrafficReading is one sensor observation for one intersection at one tick.
type TrafficReading struct {
	SensorID        string            `json:"sensor_id" parquet:"name=sensor_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	IntersectionID  string            `json:"intersection_id" parquet:"name=intersection_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp       string            `json:"timestamp" parquet:"name=timestamp,type=BYTE_ARRAY,convertedtype=UTF8"`
	VehicleCount    int               `json:"vehicle_count" parquet:"name=vehicle_count,type=INT32"`
	AverageSpeed    float64           `json:"average_speed" parquet:"name=average_speed,type=DOUBLE"`
	OccupancyRate   float64           `json:"occupancy_rate" parquet:"name=occupancy_rate,type=DOUBLE"`
	VehicleTypes    VehicleTypeCounts `json:"vehicle_types" parquet:"name=vehicle_types"`
	WaitTimeSeconds float64           `json:"wait_time_seconds" parquet:"name=wait_time_seconds,type=DOUBLE"`
	QueueLength     int               `json:"queue_length" parquet:"name=queue_length,type=INT32"`
	SignalState     string            `json:"signal_state" parquet:"name=signal_state,type=BYTE_ARRAY,convertedtype=UTF8"`
	Latitude        float64           `json:"latitude" parquet:"name=latitude,type=DOUBLE"`
	Longitude       float64           `json:"longitude" parquet:"name=longitude,type=DOUBLE"`
	District        string            `json:"district" parquet:"name=district,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// WeatherReading is one observation from the city weather station.
type WeatherReading struct {
	StationID         string  `json:"station_id" parquet:"name=station_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp         string  `json:"timestamp" parquet:"name=timestamp,type=BYTE_ARRAY,convertedtype=UTF8"`
	TemperatureF      float64 `json:"temperature_f" parquet:"name=temperature_f,type=DOUBLE"`
	Humidity          float64 `json:"humidity" parquet:"name=humidity,type=DOUBLE"`
	PrecipitationRate float64 `json:"precipitation_rate" parquet:"name=precipitation_rate,type=DOUBLE"`
	VisibilityMiles   float64 `json:"visibility_miles" parquet:"name=visibility_miles,type=DOUBLE"`
	WindSpeedMPH      float64 `json:"wind_speed_mph" parquet:"name=wind_speed_mph,type=DOUBLE"`
	Condition         string  `json:"condition" parquet:"name=condition,type=BYTE_ARRAY,convertedtype=UTF8"`
	Latitude          float64 `json:"latitude" parquet:"name=latitude,type=DOUBLE"`
	Longitude         float64 `json:"longitude" parquet:"name=longitude,type=DOUBLE"`
}
