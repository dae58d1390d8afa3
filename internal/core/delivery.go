package core

// Delivery represents one delivery point with its parcel and service window.
// Instances are immutable once constructed.
type Delivery struct {
	ID       DeliveryID
	Pos      Pos
	Weight   float64    // Parcel weight in kg
	Priority int        // 1 (lowest) to 5 (most urgent)
	Window   TimeWindow // On-time service interval in minutes
}

// NewDelivery creates a delivery point.
func NewDelivery(id DeliveryID, pos Pos, weight float64, priority int, window TimeWindow) *Delivery {
	return &Delivery{
		ID:       id,
		Pos:      pos,
		Weight:   weight,
		Priority: priority,
		Window:   window,
	}
}

// NewDeliveryAnytime creates a delivery with a window covering the whole
// planning horizon, for scenarios where timing does not bind.
func NewDeliveryAnytime(id DeliveryID, pos Pos, weight float64, priority int) *Delivery {
	return NewDelivery(id, pos, weight, priority, TimeWindow{Start: 0, End: 1e9})
}

// OnTime checks whether an arrival at t minutes falls inside the window.
func (d *Delivery) OnTime(t float64) bool {
	return d.Window.Contains(t)
}
