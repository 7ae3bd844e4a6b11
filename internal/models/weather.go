package models

import "time"

// Coordinates — географические координаты населённого пункта.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentWeather — текущие погодные условия.
type CurrentWeather struct {
	TempC       float64   `json:"temp_c"`
	FeelsLikeC  float64   `json:"feels_like_c"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Description string    `json:"description"`
	ObservedAt  time.Time `json:"observed_at"`
}

// ForecastEntry — один шаг прогноза.
type ForecastEntry struct {
	Time                     time.Time `json:"time"`
	TempC                    float64   `json:"temp_c"`
	Humidity                 int       `json:"humidity"`
	Description              string    `json:"description"`
	PrecipitationProbability float64   `json:"precipitation_probability"`
}

// WeatherReport — снимок погоды по городу, который хранится в кэше.
type WeatherReport struct {
	City        string          `json:"city"`
	Coordinates Coordinates     `json:"coordinates"`
	Current     CurrentWeather  `json:"current"`
	Forecast    []ForecastEntry `json:"forecast"`
	FetchedAt   time.Time       `json:"fetched_at"`
}

// WeatherResult — результат запроса сводки по одному городу при пакетном обновлении.
type WeatherResult struct {
	City   string
	Report *WeatherReport
	Err    error
}
