package models

// WorkerRole is the trade a worker performs.
type WorkerRole string

const (
	RoleCutter             WorkerRole = "Cutter"
	RoleInstaller          WorkerRole = "Installer"
	RolePolisher           WorkerRole = "Polisher"
	RoleHelper             WorkerRole = "Helper"
	RoleAluminumFabricator WorkerRole = "Aluminum Fabricator"
)

// WorkerStatus is a worker's availability.
type WorkerStatus string

const (
	WorkerAvailable WorkerStatus = "Available"
	WorkerOnDuty    WorkerStatus = "On Duty"
	WorkerOff       WorkerStatus = "Off"
)

// Valid reports whether s is a known availability state.
func (s WorkerStatus) Valid() bool {
	return s == WorkerAvailable || s == WorkerOnDuty || s == WorkerOff
}

// Worker is a member of the workshop crew.
type Worker struct {
	ID     string       `json:"id"`
	Name   string       `json:"name" validate:"required"`
	Phone  string       `json:"phone"`
	Role   WorkerRole   `json:"role" validate:"required,oneof=Cutter Installer Polisher Helper 'Aluminum Fabricator'"`
	Status WorkerStatus `json:"status"`
}
