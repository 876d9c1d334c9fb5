package order

import (
	"errors"
	"math"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Assignment binds an order to exactly one fulfillment agent: a human
// driver or a drone mission. It never changes once set.
type Assignment struct {
	mode          TransportMode
	driverID      *kernel.UUID
	driverContact Contact
	missionID     string
	distanceKm    float64
	etaSeconds    int
	assignedAt    time.Time
}

// DroneMission is what the drone service returns for a scheduled flight.
type DroneMission struct {
	MissionID  string
	DistanceKm float64
	ETASeconds int
}

func (m DroneMission) Validate() error {
	var missionErr, distanceErr, etaErr error
	if strings.TrimSpace(m.MissionID) == "" {
		missionErr = errs.NewValueIsRequiredError("mission id")
	}
	if m.DistanceKm < 0 || math.IsNaN(m.DistanceKm) {
		distanceErr = errs.NewValueIsOutOfRangeError("distance km", m.DistanceKm, 0, "unbounded")
	}
	if m.ETASeconds < 0 {
		etaErr = errs.NewValueIsOutOfRangeError("eta seconds", m.ETASeconds, 0, "unbounded")
	}
	return errors.Join(missionErr, distanceErr, etaErr)
}

func newDriverAssignment(driverID kernel.UUID, contact Contact, at time.Time) (Assignment, error) {
	if err := driverID.Validate(); err != nil {
		return Assignment{}, err
	}
	return Assignment{mode: Human, driverID: &driverID, driverContact: contact, assignedAt: at}, nil
}

func newDroneAssignment(mission DroneMission, at time.Time) (Assignment, error) {
	if err := mission.Validate(); err != nil {
		return Assignment{}, err
	}
	return Assignment{
		mode:       Drone,
		missionID:  strings.TrimSpace(mission.MissionID),
		distanceKm: mission.DistanceKm,
		etaSeconds: mission.ETASeconds,
		assignedAt: at,
	}, nil
}

// RestoreDriverAssignment rebuilds a stored human assignment.
func RestoreDriverAssignment(driverID kernel.UUID, contact Contact, assignedAt time.Time) (Assignment, error) {
	return newDriverAssignment(driverID, contact, assignedAt)
}

// RestoreDroneAssignment rebuilds a stored drone assignment.
func RestoreDroneAssignment(mission DroneMission, assignedAt time.Time) (Assignment, error) {
	return newDroneAssignment(mission, assignedAt)
}

func (a Assignment) Mode() TransportMode {
	return a.mode
}

// DriverID is nil for drone assignments.
func (a Assignment) DriverID() *kernel.UUID {
	if a.driverID == nil {
		return nil
	}
	id := *a.driverID
	return &id
}

func (a Assignment) DriverContact() Contact {
	return a.driverContact
}

func (a Assignment) MissionID() string {
	return a.missionID
}

func (a Assignment) DistanceKm() float64 {
	return a.distanceKm
}

func (a Assignment) ETASeconds() int {
	return a.etaSeconds
}

func (a Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// IsDriver reports whether driverID is the assigned human driver.
func (a Assignment) IsDriver(driverID kernel.UUID) bool {
	return a.mode == Human && a.driverID != nil && a.driverID.IsEqual(driverID)
}
