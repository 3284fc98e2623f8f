package domain

import (
	"errors"
	"time"
)

// ShipmentStatus mirrors the status strings the tracking backend emits.
type ShipmentStatus string

const (
	StatusPending    ShipmentStatus = "pending"
	StatusDispatched ShipmentStatus = "dispatched"
	StatusDelivered  ShipmentStatus = "delivered"
	StatusDelayed    ShipmentStatus = "delayed"
	StatusMissing    ShipmentStatus = "missing"
)

var ErrShipmentNotFound = errors.New("shipment not found")
var ErrScanCooldown = errors.New("scan cooldown active")

// Shipment is a tracking record consumed verbatim from the backend.
// Coordinates are optional; zero lat/lng means the shipment has not been
// geolocated and must not be plotted.
type Shipment struct {
	ID            int64          `json:"id"`
	AidItemID     int64          `json:"aid_item_id,omitempty"`
	ItemType      string         `json:"item_type,omitempty"`
	ItemName      string         `json:"item_name,omitempty"`
	QuantityKg    float64        `json:"quantity_kg,omitempty"`
	OriginID      int64          `json:"origin_id,omitempty"`
	DestinationID int64          `json:"destination_id,omitempty"`
	DistributorID int64          `json:"distributor_id,omitempty"`
	Status        ShipmentStatus `json:"status"`
	PriorityLevel string         `json:"priority_level,omitempty"`
	Timestamp     time.Time      `json:"timestamp,omitempty"`
	Latitude      float64        `json:"latitude,omitempty"`
	Longitude     float64        `json:"longitude,omitempty"`
}

// HasLocation reports whether the shipment carries plottable coordinates.
func (s Shipment) HasLocation() bool {
	return s.Latitude != 0 || s.Longitude != 0
}

// MapMarker is the minimal projection the map views plot.
type MapMarker struct {
	ShipmentID int64          `json:"shipment_id"`
	Status     ShipmentStatus `json:"status"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
}
