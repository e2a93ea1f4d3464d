package models

// AppState is the single persisted state blob. Insertion order of Cities is
// display order. UseGeolocation starts true, flips to false once geolocation
// fails or is declined, and is reset to true when the last city is removed.
type AppState struct {
	Cities         []City `json:"cities"`
	UseGeolocation bool   `json:"useGeolocation"`
}

func DefaultAppState() *AppState {
	return &AppState{
		Cities:         []City{},
		UseGeolocation: true,
	}
}

// Clone returns a deep copy safe to hand across the single-writer boundary.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Cities:         make([]City, len(s.Cities)),
		UseGeolocation: s.UseGeolocation,
	}
	for i, c := range s.Cities {
		out.Cities[i] = c
		if c.Weather != nil {
			w := Weather{
				Current: c.Weather.Current,
				Daily:   make([]DailyForecast, len(c.Weather.Daily)),
			}
			for j, d := range c.Weather.Daily {
				w.Daily[j] = d
				if d.PrecipProbPct != nil {
					p := *d.PrecipProbPct
					w.Daily[j].PrecipProbPct = &p
				}
			}
			out.Cities[i].Weather = &w
		}
	}
	return out
}
