package core

// LocationRelay broadcasts live position updates from delivery agents to
// observing admin connections. No rooms, no history, no acknowledgement.
//
// The platform's previous behavior relayed coordinates to every connection
// except the sender, which let any customer observe any courier. Updates now
// go to admin connections only.
type LocationRelay struct {
	registry *Registry
}

// NewLocationRelay constructs a location relay over the registry.
func NewLocationRelay(reg *Registry) *LocationRelay {
	return &LocationRelay{registry: reg}
}

// Relay delivers upd to every admin connection other than the sender.
func (l *LocationRelay) Relay(sender *Client, upd LocationUpdate) {
	l.broadcast(sender, &Event{Kind: EventLocation, Location: upd})
}

// StartTracking announces that a stream of Relay calls for an order is
// beginning. Same fan-out as Relay, no registry mutation.
func (l *LocationRelay) StartTracking(sender *Client, notice TrackingNotice) {
	l.broadcast(sender, &Event{Kind: EventTrackingStarted, Tracking: notice})
}

// StopTracking announces that a location stream has ended.
func (l *LocationRelay) StopTracking(sender *Client, notice TrackingNotice) {
	l.broadcast(sender, &Event{Kind: EventTrackingEnded, Tracking: notice})
}

func (l *LocationRelay) broadcast(exclude *Client, ev *Event) {
	for _, c := range l.registry.ClientsByKind(KindAdmin) {
		if c == exclude {
			continue
		}
		c.send(ev)
	}
}
