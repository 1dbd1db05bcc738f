package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/noah-isme/spacesync-api/internal/models"
	"github.com/noah-isme/spacesync-api/pkg/config"
)

// timeSlot is one of the fixed daily teaching blocks.
type timeSlot struct {
	start string
	end   string
}

var (
	weekdays = []int{1, 2, 3, 4, 5} // Monday through Friday

	slots = []timeSlot{
		{"08:00", "09:30"},
		{"10:00", "11:30"},
		{"13:00", "14:30"},
		{"15:00", "16:30"},
	}

	courses = []string{
		"Data Structures",
		"Web Dev",
		"Calculus",
		"Physics",
		"History",
		"Ethics",
		"Networking",
	}
)

// Building generates the deterministic demo layout the dashboard ships with:
// a fixed grid of rooms per floor, weekly schedules filling roughly 60% of
// the weekday teaching slots, and two starter lost-and-found entries. The
// same SeedConfig always yields the same layout.
func Building(cfg config.SeedConfig, now time.Time) ([]models.Room, []models.ClassSchedule, []models.LostItem) {
	rng := rand.New(rand.NewSource(cfg.Rand))

	floors := cfg.Floors
	if floors <= 0 {
		floors = 6
	}
	perFloor := cfg.RoomsPerFloor
	if perFloor <= 0 {
		perFloor = 12
	}

	rooms := make([]models.Room, 0, floors*perFloor)
	for floor := 1; floor <= floors; floor++ {
		for n := 1; n <= perFloor; n++ {
			rooms = append(rooms, models.Room{
				ID:       fmt.Sprintf("f%d-r%d", floor, n),
				Name:     fmt.Sprintf("MB-%d%02d", floor, n),
				Floor:    floor,
				Capacity: 30 + rng.Intn(20),
			})
		}
	}

	var schedules []models.ClassSchedule
	for _, room := range rooms {
		for _, day := range weekdays {
			for _, slot := range slots {
				if rng.Float64() <= 0.4 {
					continue
				}
				schedules = append(schedules, models.ClassSchedule{
					ID:         fmt.Sprintf("%s-%d-%s", room.ID, day, slot.start),
					RoomID:     room.ID,
					CourseName: courses[rng.Intn(len(courses))],
					Instructor: "Dr. Smith",
					DayOfWeek:  day,
					StartTime:  slot.start,
					EndTime:    slot.end,
				})
			}
		}
	}

	items := []models.LostItem{
		{
			ID:          "li-1",
			Kind:        models.KindFound,
			ItemName:    "Blue Umbrella",
			Description: "Found under a chair near the back.",
			Location:    "MB-102",
			ContactInfo: "Turned over to guard",
			Status:      models.ItemOpen,
			ReportedAt:  now,
		},
		{
			ID:          "li-2",
			Kind:        models.KindLost,
			ItemName:    "Calculus Textbook",
			Description: "Hardcover, slightly worn.",
			Location:    "3rd Floor Hallway",
			ContactInfo: "student@dlsl.edu.ph",
			Status:      models.ItemOpen,
			ReportedAt:  now.Add(-24 * time.Hour),
		},
	}

	return rooms, schedules, items
}
