package core

import "time"

// Scheme is one entry of the provider's scheme catalog
type Scheme struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FundMetadata holds descriptive fields of a scheme. Values are passed
// through unchanged from the provider.
type FundMetadata struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	FundHouse string `json:"fund_house"`
	Category  string `json:"category"`
	Type      string `json:"type"`
}

// IsValid checks if the metadata has the fields a report needs
func (m FundMetadata) IsValid() bool {
	return m.Name != ""
}

// RawPoint is a NAV observation as served by a provider, not yet validated
type RawPoint struct {
	Date string `json:"date"`
	NAV  string `json:"nav"`
}

// Observation is a validated NAV on a given date
type Observation struct {
	Date  time.Time
	Value float64
}

// Series is a NAV history sorted ascending by date with unique dates
type Series []Observation

// Latest returns the most recent observation. The series must not be empty.
func (s Series) Latest() Observation {
	return s[len(s)-1]
}

// Values returns the NAVs in date order
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, o := range s {
		values[i] = o.Value
	}
	return values
}
