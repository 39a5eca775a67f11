package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"barbershop-web/cache"
	"barbershop-web/utils/sl"
)

// Weather is the navbar's current-conditions snapshot.
type Weather struct {
	City      string  `json:"city"`
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
}

type WeatherService struct {
	baseURL string
	apiKey  string
	city    string
	ttl     time.Duration
	cache   cache.Cache
	http    *http.Client
	log     *slog.Logger
}

func NewWeatherService(baseURL, apiKey, city string, ttl time.Duration, c cache.Cache, log *slog.Logger) *WeatherService {
	return &WeatherService{
		baseURL: baseURL,
		apiKey:  apiKey,
		city:    city,
		ttl:     ttl,
		cache:   c,
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

// failureTTL bounds how long a provider failure hides the widget before the
// next attempt.
const failureTTL = time.Minute

// weatherEntry is what the cache holds; a nil Weather records a recent failure.
type weatherEntry struct {
	Weather *Weather `json:"weather"`
}

// Current returns the cached or freshly fetched weather, or nil when no key
// is configured or the provider fails. The navbar renders without it.
func (s *WeatherService) Current(ctx context.Context) *Weather {
	if s == nil || s.apiKey == "" {
		return nil
	}
	key := "weather:" + s.city

	var cached weatherEntry
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn("weather cache read failed", sl.Err(err))
	} else if ok {
		return cached.Weather
	}

	w, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn("weather fetch failed", slog.String("city", s.city), sl.Err(err))
		s.store(ctx, key, weatherEntry{}, min(s.ttl, failureTTL))
		return nil
	}
	s.store(ctx, key, weatherEntry{Weather: &w}, s.ttl)
	return &w
}

func (s *WeatherService) store(ctx context.Context, key string, e weatherEntry, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, e, ttl); err != nil {
		s.log.Warn("weather cache write failed", sl.Err(err))
	}
}

func (s *WeatherService) fetch(ctx context.Context) (Weather, error) {
	const op = "services.WeatherService.fetch"

	q := url.Values{}
	q.Set("key", s.apiKey)
	q.Set("q", s.city)
	q.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/current.json?"+q.Encode(), nil)
	if err != nil {
		return Weather{}, fmt.Errorf("%s: %w", op, err)
	}
	started := time.Now()
	resp, err := s.http.Do(req)
	observe("weather.current", http.MethodGet, statusText(resp), started)
	if err != nil {
		return Weather{}, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("%s: provider responded %d", op, resp.StatusCode)
	}

	var payload struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current *struct {
			TempC     float64 `json:"temp_c"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Weather{}, fmt.Errorf("%s: decode: %w", op, err)
	}
	if payload.Current == nil {
		return Weather{}, fmt.Errorf("%s: response has no current conditions", op)
	}

	city := payload.Location.Name
	if city == "" {
		city = s.city
	}
	return Weather{City: city, TempC: payload.Current.TempC, Condition: payload.Current.Condition.Text}, nil
}
