package booking

// ItemSpec is the part of an item a booking decision depends on.
type ItemSpec struct {
	ID        int64
	OwnerID   int64
	Available bool
}

type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	period   Period
	status   Status
}

// NewBooking rejects self-booking before looking at availability.
func NewBooking(item ItemSpec, bookerID int64, period Period) (*Booking, error) {
	if item.OwnerID == bookerID {
		return nil, ErrOwnItem
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}
	return &Booking{
		itemID:   item.ID,
		bookerID: bookerID,
		period:   period,
		status:   StatusWaiting,
	}, nil
}

func ReconstructBooking(id, itemID, bookerID int64, period Period, status Status) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		period:   period,
		status:   status,
	}
}

// Decide moves the booking to APPROVED or REJECTED.
func (b *Booking) Decide(approved bool) error {
	next := StatusRejected
	if approved {
		next = StatusApproved
	}
	if !b.status.CanTransitionTo(next) {
		return ErrAlreadyApproved
	}
	b.status = next
	return nil
}

func (b *Booking) ID() int64         { return b.id }
func (b *Booking) ItemID() int64     { return b.itemID }
func (b *Booking) BookerID() int64   { return b.bookerID }
func (b *Booking) Period() Period    { return b.period }
func (b *Booking) Status() Status    { return b.status }
func (b *Booking) AssignID(id int64) { b.id = id }
