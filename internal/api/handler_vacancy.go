package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-portal-backend/internal/occupancy"
)

// Healthz is a liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// roomVacancy is one room's bed states in the vacancy response.
type roomVacancy struct {
	RoomNumber string `json:"room_number"`
	Beds       []bool `json:"beds"`
}

// vacancyResponse is the per-floor room grid.
type vacancyResponse struct {
	Hostel      string        `json:"hostel"`
	Floor       string        `json:"floor"`
	BedCapacity int           `json:"bed_capacity"`
	Rooms       []roomVacancy `json:"rooms"`
}

// GetVacancy handles GET /api/vacancy?hostel=&floor=[&pending=1].
// The default view counts confirmed allocations only; pending=1 also
// blocks beds held by undecided requests, which is what the selection
// grid uses so two students cannot pick the same bed mid-flow.
func (h *Handler) GetVacancy(c *gin.Context) {
	hostel := c.Query("hostel")
	if !h.knownHostel(hostel) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown hostel"})
		return
	}

	floor, ok := occupancy.NormalizeFloor(c.Query("floor"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "floor does not match any known floor"})
		return
	}

	includePending := c.Query("pending") == "1"
	ix, err := h.snapshot.Index(c.Request.Context(), includePending)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load occupancy"})
		return
	}

	rooms := make([]roomVacancy, 0, h.hostel.RoomsPerFloor)
	for _, roomNo := range floorRooms(floor, h.hostel.RoomsPerFloor) {
		key, _ := occupancy.NewRoomKey(hostel, floor, roomNo)
		rooms = append(rooms, roomVacancy{
			RoomNumber: roomNo,
			Beds:       ix.Beds(key),
		})
	}

	c.JSON(http.StatusOK, vacancyResponse{
		Hostel:      hostel,
		Floor:       floor,
		BedCapacity: ix.Capacity(),
		Rooms:       rooms,
	})
}

func (h *Handler) knownHostel(name string) bool {
	for _, hostel := range h.hostel.Hostels {
		if hostel == name {
			return true
		}
	}
	return false
}

// floorRooms generates the room numbers of a floor: 1..n on the ground
// floor, 101.., 201.., 301.. above it.
func floorRooms(floor string, perFloor int) []string {
	start := 1
	switch floor {
	case occupancy.FloorFirst:
		start = 101
	case occupancy.FloorSecond:
		start = 201
	case occupancy.FloorThird:
		start = 301
	}
	rooms := make([]string, perFloor)
	for i := 0; i < perFloor; i++ {
		rooms[i] = fmt.Sprintf("%d", start+i)
	}
	return rooms
}
