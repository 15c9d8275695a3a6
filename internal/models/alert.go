package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlertKind tags each aggregated alert at the aggregation boundary, so
// consumers never have to probe the shape of an entry.
type AlertKind string

const (
	AlertKindAdmin      AlertKind = "admin"
	AlertKindEarthquake AlertKind = "earthquake"
	AlertKindTyphoon    AlertKind = "typhoon"
)

// AdminAlert is a disaster alert issued by a portal administrator
type AdminAlert struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	DisasterType string             `bson:"disaster_type" json:"disaster_type"`
	Severity     string             `bson:"severity" json:"severity"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	StartsAt     time.Time          `bson:"starts_at" json:"starts_at"`
	EndsAt       time.Time          `bson:"ends_at" json:"ends_at"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// AdminAlertRequest is the body for issuing or updating an admin alert
type AdminAlertRequest struct {
	Title        string    `json:"title" binding:"required"`
	DisasterType string    `json:"disaster_type" binding:"required"`
	Severity     string    `json:"severity" binding:"required"`
	Instructions string    `json:"instructions"`
	StartsAt     time.Time `json:"starts_at" binding:"required"`
	EndsAt       time.Time `json:"ends_at" binding:"required"`
}

// Validate checks the alert time window
func (r *AdminAlertRequest) Validate() error {
	if !r.EndsAt.After(r.StartsAt) {
		return ErrInvalidWindow
	}
	return nil
}

// BeforeCreate stamps a new admin alert
func (a *AdminAlert) BeforeCreate() {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
}

// BeforeUpdate refreshes the update timestamp
func (a *AdminAlert) BeforeUpdate() {
	a.UpdatedAt = time.Now()
}

// EarthquakeAlert is one event from the USGS GeoJSON feed after filtering
type EarthquakeAlert struct {
	EventID   string    `json:"event_id"`
	Magnitude float64   `json:"magnitude"`
	Place     string    `json:"place"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	DepthKm   float64   `json:"depth_km"`
	Time      time.Time `json:"time"`
	DetailURL string    `json:"detail_url,omitempty"`
}

// TyphoonAlert is one entry from the typhoon proxy feed
type TyphoonAlert struct {
	Name          string    `json:"name"`
	SignalLevel   int       `json:"signal_level"`
	WindSpeedKph  float64   `json:"wind_speed_kph"`
	Movement      string    `json:"movement,omitempty"`
	ForecastStart time.Time `json:"forecast_start"`
	ForecastEnd   time.Time `json:"forecast_end"`
}

// Alert is the tagged union returned by the aggregator. Exactly one of the
// payload pointers is set, matching Kind.
type Alert struct {
	Kind       AlertKind        `json:"kind"`
	Active     bool             `json:"active"`
	Admin      *AdminAlert      `json:"admin,omitempty"`
	Earthquake *EarthquakeAlert `json:"earthquake,omitempty"`
	Typhoon    *TyphoonAlert    `json:"typhoon,omitempty"`
}

// IsActiveWindow reports whether now falls inside [start, end]. Computed at
// request time, never cached, so the ACTIVE label tracks wall-clock time.
func IsActiveWindow(now, start, end time.Time) bool {
	return !now.Before(start) && !now.After(end)
}
