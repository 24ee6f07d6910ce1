package catalog

import (
	"errors"
	"slices"
)

var ErrUnknownCategory = errors.New("unknown room category")

// Catalog holds the hotel seed data. It is read-only once the service has
// started; RestoreRooms is only called during start-up.
type Catalog struct {
	hotels []Hotel
}

func New(hotels []Hotel) *Catalog {
	c := &Catalog{hotels: make([]Hotel, 0, len(hotels))}

	for _, h := range hotels {
		h = cloneHotel(h)
		for i := range h.Rooms {
			h.Rooms[i].HotelID = h.ID
		}

		c.hotels = append(c.hotels, h)
	}

	return c
}

func (c *Catalog) ListHotels() []Hotel {
	out := make([]Hotel, 0, len(c.hotels))
	for _, h := range c.hotels {
		out = append(out, cloneHotel(h))
	}

	return out
}

func (c *Catalog) FindHotel(id string) (Hotel, bool) {
	for _, h := range c.hotels {
		if h.ID == id {
			return cloneHotel(h), true
		}
	}

	return Hotel{}, false
}

// ListRooms flattens rooms across hotels. An empty category returns all rooms.
func (c *Catalog) ListRooms(category Category) []Room {
	var out []Room

	for _, h := range c.hotels {
		for _, r := range h.Rooms {
			if category != "" && r.Category != category {
				continue
			}

			out = append(out, cloneRoom(r))
		}
	}

	return out
}

func (c *Catalog) FindRoom(id string) (Room, bool) {
	for _, h := range c.hotels {
		for _, r := range h.Rooms {
			if r.ID == id {
				return cloneRoom(r), true
			}
		}
	}

	return Room{}, false
}

func (c *Catalog) Rooms() []Room {
	return c.ListRooms("")
}

// RestoreRooms replaces each hotel's rooms with the persisted rooms that name
// it. Rooms without a hotel id belong to the first hotel; rooms naming an
// unknown hotel are dropped. Hotels absent from the input keep their rooms.
func (c *Catalog) RestoreRooms(rooms []Room) int {
	if len(c.hotels) == 0 {
		return 0
	}

	byHotel := make(map[string][]Room)

	for _, r := range rooms {
		if r.HotelID == "" {
			r.HotelID = c.hotels[0].ID
		}

		byHotel[r.HotelID] = append(byHotel[r.HotelID], cloneRoom(r))
	}

	var restored int

	for i := range c.hotels {
		rs, ok := byHotel[c.hotels[i].ID]
		if !ok {
			continue
		}

		c.hotels[i].Rooms = rs
		restored += len(rs)
	}

	return restored
}

func cloneHotel(h Hotel) Hotel {
	rooms := make([]Room, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		rooms = append(rooms, cloneRoom(r))
	}

	h.Rooms = rooms

	return h
}

func cloneRoom(r Room) Room {
	r.Amenities = slices.Clone(r.Amenities)

	return r
}
