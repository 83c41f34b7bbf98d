package types

import "time"

// BarUnit is the aggregation unit for OHLCV history.
type BarUnit int

const (
	UnitSecond BarUnit = 1
	UnitMinute BarUnit = 2
	UnitHour   BarUnit = 3
	UnitDay    BarUnit = 4
	UnitWeek   BarUnit = 5
	UnitMonth  BarUnit = 6
	UnitYear   BarUnit = 7
)

func (u BarUnit) String() string {
	switch u {
	case UnitSecond:
		return "Second"
	case UnitMinute:
		return "Minute"
	case UnitHour:
		return "Hour"
	case UnitDay:
		return "Day"
	case UnitWeek:
		return "Week"
	case UnitMonth:
		return "Month"
	case UnitYear:
		return "Year"
	}
	return "Unknown"
}

// Bar is one OHLCV candle. The gateway uses single-letter field names.
type Bar struct {
	Timestamp time.Time `json:"t"`
	Open      float64   `json:"o"`
	High      float64   `json:"h"`
	Low       float64   `json:"l"`
	Close     float64   `json:"c"`
	Volume    float64   `json:"v"`
}

// RetrieveBarsRequest fetches OHLCV candles for a contract. Unit and
// UnitNumber together define the bar interval, e.g. Hour/4 for 4h bars.
type RetrieveBarsRequest struct {
	ContractID        string    `json:"contractId"`
	Live              bool      `json:"live"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	Unit              BarUnit   `json:"unit"`
	UnitNumber        int       `json:"unitNumber"`
	Limit             int       `json:"limit"`
	IncludePartialBar bool      `json:"includePartialBar"`
}

type RetrieveBarsResponse struct {
	Envelope
	Bars []Bar `json:"bars"`
}
